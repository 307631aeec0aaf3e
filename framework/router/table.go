package router

import (
	"errors"
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

// ErrNotFound is wrapped by every lookup that matches neither a path nor an
// alias. Check it with errors.Is or IsNotFound.
var ErrNotFound = errors.New("route not found")

// RouteEntry binds a canonical path and its aliases to a page component.
// The component is owned by the UI layer and never inspected here.
type RouteEntry struct {
	Path      string
	Aliases   []string
	Name      string
	Component templ.Component
}

func (e RouteEntry) clone() RouteEntry {
	if e.Aliases != nil {
		e.Aliases = append([]string(nil), e.Aliases...)
	}
	return e
}

// Match is a successful lookup. ViaAlias reports that RequestPath hit one of
// the entry's aliases rather than its canonical Path.
type Match struct {
	Entry       RouteEntry
	RequestPath string
	ViaAlias    bool
}

// Table is an immutable path -> entry lookup built once at start-up.
// It is safe for concurrent use without locking.
type Table struct {
	entries []RouteEntry
	byPath  map[string]int
	byAlias map[string]int
	byName  map[string]int
}

// NewTable validates entries and indexes them. It fails when a name is empty,
// padded with whitespace or repeated, when a component is missing, or when any
// path or alias is malformed or claimed twice across the table.
func NewTable(entries []RouteEntry) (*Table, error) {
	if len(entries) == 0 {
		return nil, errors.New("route table cannot be empty")
	}

	table := &Table{
		entries: make([]RouteEntry, 0, len(entries)),
		byPath:  make(map[string]int, len(entries)),
		byAlias: make(map[string]int),
		byName:  make(map[string]int, len(entries)),
	}
	claimed := make(map[string]string, len(entries))

	for _, entry := range entries {
		entry = entry.clone()
		idx := len(table.entries)

		name := entry.Name
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("route %q: name cannot be empty", entry.Path)
		}
		if strings.TrimSpace(name) != name {
			return nil, fmt.Errorf("route %q: name %q has surrounding whitespace", entry.Path, name)
		}
		if _, ok := table.byName[name]; ok {
			return nil, fmt.Errorf("route name conflict: %q declared twice", name)
		}
		if entry.Component == nil {
			return nil, fmt.Errorf("route %q: component is required", name)
		}

		if err := validatePath(entry.Path); err != nil {
			return nil, fmt.Errorf("route %q: %w", name, err)
		}
		if owner, ok := claimed[entry.Path]; ok {
			return nil, fmt.Errorf("route path conflict: %q claimed by %q and %q", entry.Path, owner, name)
		}
		claimed[entry.Path] = name
		table.byPath[entry.Path] = idx

		for _, alias := range entry.Aliases {
			if err := validatePath(alias); err != nil {
				return nil, fmt.Errorf("route %q alias: %w", name, err)
			}
			if owner, ok := claimed[alias]; ok {
				return nil, fmt.Errorf("route path conflict: %q claimed by %q and %q", alias, owner, name)
			}
			claimed[alias] = name
			table.byAlias[alias] = idx
		}

		table.byName[name] = idx
		table.entries = append(table.entries, entry)
	}

	return table, nil
}

// MustNewTable is NewTable for literal tables declared at start-up; it panics
// on an invalid declaration.
func MustNewTable(entries []RouteEntry) *Table {
	table, err := NewTable(entries)
	if err != nil {
		panic(err)
	}
	return table
}

func validatePath(path string) error {
	if path == "" {
		return errors.New("path cannot be empty")
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path %q must start with /", path)
	}
	if strings.ContainsAny(path, "?#") {
		return fmt.Errorf("path %q cannot carry a query or fragment", path)
	}
	return nil
}

// Resolve returns the entry for requestedPath, checking canonical paths
// before aliases.
func (t *Table) Resolve(requestedPath string) (RouteEntry, error) {
	match, err := t.Match(requestedPath)
	if err != nil {
		return RouteEntry{}, err
	}
	return match.Entry, nil
}

// Match is Resolve with the lookup details kept. The error wraps ErrNotFound.
func (t *Table) Match(requestedPath string) (Match, error) {
	if idx, ok := t.byPath[requestedPath]; ok {
		return Match{Entry: t.entries[idx].clone(), RequestPath: requestedPath}, nil
	}
	if idx, ok := t.byAlias[requestedPath]; ok {
		return Match{Entry: t.entries[idx].clone(), RequestPath: requestedPath, ViaAlias: true}, nil
	}
	return Match{}, fmt.Errorf("resolve %q: %w", requestedPath, ErrNotFound)
}

// Lookup returns the entry declared under name.
func (t *Table) Lookup(name string) (RouteEntry, bool) {
	idx, ok := t.byName[name]
	if !ok {
		return RouteEntry{}, false
	}
	return t.entries[idx].clone(), true
}

// Entries returns the entries in declaration order.
func (t *Table) Entries() []RouteEntry {
	out := make([]RouteEntry, len(t.entries))
	for idx, entry := range t.entries {
		out[idx] = entry.clone()
	}
	return out
}

// Len is the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

package router

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// LatestRevision selects the highest registered revision.
const LatestRevision = "latest"

// ErrUnknownRevision is wrapped by Select when no registered revision matches.
var ErrUnknownRevision = errors.New("unknown route revision")

// Revisions holds complete, independently built route tables keyed by a
// semver identifier such as "v1" or "v2.1.0". A revision replaces the table
// wholesale; tables are never patched.
type Revisions struct {
	versions []string
	tables   map[string]*Table
}

// NewRevisions registers each table under its semver key. Keys that compare
// equal, such as "v2" and "v2.0.0", are rejected as duplicates.
func NewRevisions(tables map[string]*Table) (*Revisions, error) {
	if len(tables) == 0 {
		return nil, errors.New("at least one route revision is required")
	}

	revisions := &Revisions{
		versions: make([]string, 0, len(tables)),
		tables:   make(map[string]*Table, len(tables)),
	}
	canonical := make(map[string]string, len(tables))

	for version, table := range tables {
		if !semver.IsValid(version) {
			return nil, fmt.Errorf("revision %q: not a semver identifier", version)
		}
		if table == nil {
			return nil, fmt.Errorf("revision %q: table is required", version)
		}

		key := semver.Canonical(version)
		if existing, ok := canonical[key]; ok {
			return nil, fmt.Errorf("revision conflict: %q and %q", existing, version)
		}
		canonical[key] = version

		revisions.versions = append(revisions.versions, version)
		revisions.tables[version] = table
	}

	sort.Slice(revisions.versions, func(i int, j int) bool {
		return semver.Compare(revisions.versions[i], revisions.versions[j]) < 0
	})

	return revisions, nil
}

// Versions returns the revision identifiers, oldest first.
func (r *Revisions) Versions() []string {
	return append([]string(nil), r.versions...)
}

// Latest returns the highest revision and its table.
func (r *Revisions) Latest() (string, *Table) {
	version := r.versions[len(r.versions)-1]
	return version, r.tables[version]
}

// Select returns the table for version. An empty version or "latest" picks
// the highest revision; otherwise versions compare by semver precedence, so
// "v2" selects a table registered as "v2.0.0".
func (r *Revisions) Select(version string) (string, *Table, error) {
	version = strings.TrimSpace(version)
	if version == "" || strings.EqualFold(version, LatestRevision) {
		selected, table := r.Latest()
		return selected, table, nil
	}

	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return "", nil, fmt.Errorf("select revision %q: %w", version, ErrUnknownRevision)
	}

	for _, candidate := range r.versions {
		if semver.Compare(candidate, version) == 0 {
			return candidate, r.tables[candidate], nil
		}
	}

	return "", nil, fmt.Errorf("select revision %q: %w", version, ErrUnknownRevision)
}

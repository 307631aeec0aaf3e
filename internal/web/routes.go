package web

import (
	"fmt"

	"corenet/framework/router"
	"github.com/a-h/templ"
)

// Pages holds the component rendered for each console page.
type Pages struct {
	Home       templ.Component
	Events     templ.Component
	Executions templ.Component
}

func DefaultPages() Pages {
	catalog := Catalog()
	return Pages{
		Home:       PageComponent(catalog[PageHome]),
		Events:     PageComponent(catalog[PageEvents]),
		Executions: PageComponent(catalog[PageExecutions]),
	}
}

// RoutesV1 is the first console layout: the events list doubles as the
// landing page.
func RoutesV1(pages Pages) []router.RouteEntry {
	return []router.RouteEntry{
		{Path: "/events", Aliases: []string{"/"}, Name: PageEvents, Component: pages.Events},
		{Path: "/executions", Name: PageExecutions, Component: pages.Executions},
	}
}

// RoutesV2 adds a dedicated home page at "/"; events lose the root alias.
func RoutesV2(pages Pages) []router.RouteEntry {
	return []router.RouteEntry{
		{Path: "/", Aliases: []string{"/home"}, Name: PageHome, Component: pages.Home},
		{Path: "/events", Name: PageEvents, Component: pages.Events},
		{Path: "/executions", Name: PageExecutions, Component: pages.Executions},
	}
}

func Revisions(pages Pages) (*router.Revisions, error) {
	v1, err := router.NewTable(RoutesV1(pages))
	if err != nil {
		return nil, fmt.Errorf("build routes v1: %w", err)
	}
	v2, err := router.NewTable(RoutesV2(pages))
	if err != nil {
		return nil, fmt.Errorf("build routes v2: %w", err)
	}

	return router.NewRevisions(map[string]*router.Table{
		"v1": v1,
		"v2": v2,
	})
}

// NavLinks lists every entry of table as a navigation link.
func NavLinks(table *router.Table) []NavLink {
	entries := table.Entries()
	links := make([]NavLink, 0, len(entries))
	for _, entry := range entries {
		links = append(links, NavLink{Name: entry.Name, Href: entry.Path})
	}
	return links
}

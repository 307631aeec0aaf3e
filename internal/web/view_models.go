package web

import (
	"html/template"
	"strings"

	"corenet/framework"
	"corenet/internal/markdown"
)

const descriptionMaxChars = 160

// PageCopy is the static copy shown on a page shell.
type PageCopy struct {
	Name    string
	Title   string
	Summary string
}

type PageView struct {
	Name   string
	Anchor string
	Title  string
	Body   template.HTML
}

type NavLink struct {
	Name    string
	Href    string
	Current bool
}

type LayoutView struct {
	Title       string
	Description string
	Revision    string
	Links       []NavLink
}

func newPageView(page PageCopy) PageView {
	return PageView{
		Name:   page.Name,
		Anchor: "page-" + strings.ToLower(page.Name),
		Title:  page.Title,
		Body:   markdown.ToHTML(page.Summary),
	}
}

func newLayoutView(nav framework.Navigation, catalog map[string]PageCopy) LayoutView {
	current := nav.Current.Entry.Name
	view := LayoutView{
		Title:    current,
		Revision: nav.Revision,
		Links:    make([]NavLink, 0, len(nav.Entries)),
	}
	if page, ok := catalog[current]; ok {
		view.Title = page.Title
		view.Description = markdown.Excerpt(page.Summary, descriptionMaxChars)
	}

	for _, entry := range nav.Entries {
		view.Links = append(view.Links, NavLink{
			Name:    entry.Name,
			Href:    entry.Path,
			Current: entry.Name == current,
		})
	}
	return view
}

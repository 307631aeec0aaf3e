package web

import (
	"corenet/framework"
	"github.com/a-h/templ"
)

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.1001 generate -path ../..

const (
	siteName        = "CoreNet"
	stylesheetPath  = "/static/console.css"
	chromaStylePath = "/static/chroma.css"
)

// Layout wraps a page in the console document with navigation generated
// from the active route table.
func Layout(catalog map[string]PageCopy) framework.LayoutRenderer {
	return func(nav framework.Navigation, child templ.Component) templ.Component {
		return document(newLayoutView(nav, catalog), child)
	}
}

func documentTitle(title string) string {
	if title == "" || title == siteName {
		return siteName
	}
	return title + " · " + siteName
}

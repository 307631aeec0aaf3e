package framework

import (
	"net/http"

	"corenet/framework/router"
	"github.com/a-h/templ"
)

// Navigation describes the table a page was resolved from, for layouts that
// render links to every declared page.
type Navigation struct {
	Revision string
	Entries  []router.RouteEntry
	Current  router.Match
}

type LayoutRenderer func(nav Navigation, child templ.Component) templ.Component

type NotFoundContext struct {
	RequestPath string
	Revision    string
}

type RuntimeContext interface {
	IsPartialRequest(r *http.Request) bool
	RenderPage(r *http.Request, w http.ResponseWriter, component templ.Component) error
	RespondNotFound(w http.ResponseWriter, r *http.Request, notFoundContext NotFoundContext)
	RespondServerError(w http.ResponseWriter, err error)
}

func ApplyLayouts(layouts []LayoutRenderer, nav Navigation, child templ.Component) templ.Component {
	wrapped := child
	for idx := len(layouts) - 1; idx >= 0; idx-- {
		wrapped = layouts[idx](nav, wrapped)
	}
	return wrapped
}

package web

import (
	"corenet/framework"
	"github.com/a-h/templ"
)

// NotFoundPage renders the fallback for paths the active route table does
// not declare, linking back to every declared page.
func NotFoundPage(links []NavLink) func(framework.NotFoundContext) templ.Component {
	return func(notFoundContext framework.NotFoundContext) templ.Component {
		path := notFoundContext.RequestPath
		if path == "" {
			path = "/"
		}
		return document(LayoutView{
			Title:    "404 Not Found",
			Revision: notFoundContext.Revision,
			Links:    links,
		}, notFoundBody(path, links))
	}
}

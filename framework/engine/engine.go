package engine

import (
	"errors"
	"fmt"
	"net/http"

	"corenet/framework"
	"corenet/framework/router"
	"github.com/a-h/templ"
)

type Config struct {
	Table    *router.Table
	Revision string
	Layouts  []framework.LayoutRenderer

	IsPartialRequest func(r *http.Request) bool
	RenderPage       func(r *http.Request, w http.ResponseWriter, component templ.Component) error

	HandleNotFound    func(w http.ResponseWriter, r *http.Request, notFoundContext framework.NotFoundContext)
	HandleServerError func(w http.ResponseWriter, err error)
}

// Engine resolves request paths through a single route table and renders
// the matched page component.
type Engine struct {
	table    *router.Table
	revision string
	layouts  []framework.LayoutRenderer

	isPartial   func(r *http.Request) bool
	renderPage  func(r *http.Request, w http.ResponseWriter, component templ.Component) error
	notFound    func(w http.ResponseWriter, r *http.Request, notFoundContext framework.NotFoundContext)
	serverError func(w http.ResponseWriter, err error)
}

func New(cfg Config) (*Engine, error) {
	if cfg.Table == nil {
		return nil, errors.New("route table is required")
	}
	if cfg.RenderPage == nil {
		return nil, errors.New("render page callback is required")
	}

	isPartial := cfg.IsPartialRequest
	if isPartial == nil {
		isPartial = func(*http.Request) bool { return false }
	}

	notFound := cfg.HandleNotFound
	if notFound == nil {
		notFound = func(w http.ResponseWriter, r *http.Request, _ framework.NotFoundContext) {
			http.NotFound(w, r)
		}
	}

	serverError := cfg.HandleServerError
	if serverError == nil {
		serverError = func(w http.ResponseWriter, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}

	return &Engine{
		table:       cfg.Table,
		revision:    cfg.Revision,
		layouts:     cfg.Layouts,
		isPartial:   isPartial,
		renderPage:  cfg.RenderPage,
		notFound:    notFound,
		serverError: serverError,
	}, nil
}

// ServeRoute renders the page for r.URL.Path and reports whether the table
// had an entry for it. Unmatched paths are left to the caller.
func (engine *Engine) ServeRoute(w http.ResponseWriter, r *http.Request) bool {
	match, err := engine.table.Match(r.URL.Path)
	if err != nil {
		if router.IsNotFound(err) {
			return false
		}
		engine.serverError(w, fmt.Errorf("match route: %w", err))
		return true
	}

	if match.ViaAlias {
		w.Header().Set("Link", "<"+match.Entry.Path+`>; rel="canonical"`)
	}

	component := match.Entry.Component
	if !engine.isPartial(r) {
		component = framework.ApplyLayouts(engine.layouts, engine.navigation(match), component)
	}
	if err := engine.renderPage(r, w, component); err != nil {
		engine.serverError(w, fmt.Errorf("render route %q: %w", match.Entry.Name, err))
	}
	return true
}

func (engine *Engine) navigation(match router.Match) framework.Navigation {
	return framework.Navigation{
		Revision: engine.revision,
		Entries:  engine.table.Entries(),
		Current:  match,
	}
}

func (engine *Engine) Table() *router.Table {
	return engine.table
}

func (engine *Engine) Revision() string {
	return engine.revision
}

func (engine *Engine) IsPartialRequest(r *http.Request) bool {
	return engine.isPartial(r)
}

func (engine *Engine) RenderPage(
	r *http.Request,
	w http.ResponseWriter,
	component templ.Component,
) error {
	return engine.renderPage(r, w, component)
}

func (engine *Engine) RespondNotFound(
	w http.ResponseWriter,
	r *http.Request,
	notFoundContext framework.NotFoundContext,
) {
	engine.notFound(w, r, notFoundContext)
}

func (engine *Engine) RespondServerError(w http.ResponseWriter, err error) {
	engine.serverError(w, err)
}

var _ framework.RuntimeContext = (*Engine)(nil)

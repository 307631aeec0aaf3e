package httpserver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"corenet/framework"
	"corenet/framework/engine"
	"corenet/framework/middleware"
	"corenet/framework/router"
	"github.com/a-h/templ"
)

const defaultCacheControlPolicy = "public, max-age=3600, s-maxage=3600"
const defaultErrorCachePolicy = "no-store"
const defaultHealthPath = "/healthz"
const defaultHealthBody = "ok"
const defaultStaticPrefix = "/static/"
const partialRequestHeader = "HX-Request"

type StaticMount struct {
	URLPrefix string
	Dir       string
}

// Mount registers an extra handler on the mux ahead of page resolution.
type Mount struct {
	Pattern string
	Handler http.Handler
}

type CachePolicies struct {
	HTML    string
	Partial string
	Static  string
	Health  string
	Error   string
}

func DefaultCachePolicies() CachePolicies {
	return CachePolicies{
		HTML:    defaultCacheControlPolicy,
		Partial: defaultCacheControlPolicy,
		Static:  defaultCacheControlPolicy,
		Health:  defaultCacheControlPolicy,
		Error:   defaultErrorCachePolicy,
	}
}

type Config struct {
	Table    *router.Table
	Revision string
	Layouts  []framework.LayoutRenderer

	Static StaticMount
	Mounts []Mount

	CachePolicies CachePolicies

	NotFoundPage func(notFoundContext framework.NotFoundContext) templ.Component
	Logger       *slog.Logger

	HealthPath string
	HealthBody string
}

type server struct {
	cachePolicies CachePolicies
	notFoundPage  func(notFoundContext framework.NotFoundContext) templ.Component
	logger        *slog.Logger
	healthPath    string
	healthBody    string
	revision      string

	routeEngine *engine.Engine
}

func New(cfg Config) (http.Handler, error) {
	if cfg.Table == nil {
		return nil, errors.New("route table is required")
	}

	cachePolicies := withDefaultPolicies(cfg.CachePolicies)
	healthPath := normalizeHealthPath(cfg.HealthPath)
	healthBody := strings.TrimSpace(cfg.HealthBody)
	if healthBody == "" {
		healthBody = defaultHealthBody
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	srv := &server{
		cachePolicies: cachePolicies,
		notFoundPage:  cfg.NotFoundPage,
		logger:        logger,
		healthPath:    healthPath,
		healthBody:    healthBody,
		revision:      cfg.Revision,
	}

	routeEngine, err := engine.New(engine.Config{
		Table:             cfg.Table,
		Revision:          cfg.Revision,
		Layouts:           cfg.Layouts,
		IsPartialRequest:  isPartialRequest,
		RenderPage:        srv.renderPage,
		HandleNotFound:    srv.handleNotFound,
		HandleServerError: srv.handleServerError,
	})
	if err != nil {
		return nil, fmt.Errorf("create route engine: %w", err)
	}
	srv.routeEngine = routeEngine

	mux := http.NewServeMux()
	staticPrefix := ""
	if strings.TrimSpace(cfg.Static.Dir) != "" {
		staticPrefix = normalizeStaticPrefix(cfg.Static.URLPrefix)
		fs := http.FileServer(http.Dir(cfg.Static.Dir))
		mux.Handle(staticPrefix, withCachePolicy(cachePolicies.Static, http.StripPrefix(staticPrefix, fs)))
	}
	for _, mount := range cfg.Mounts {
		if strings.TrimSpace(mount.Pattern) == "" || mount.Handler == nil {
			return nil, fmt.Errorf("invalid mount %q", mount.Pattern)
		}
		mux.Handle(mount.Pattern, withCachePolicy(cachePolicies.Static, mount.Handler))
	}

	mux.HandleFunc("/", srv.handleRoute)

	var handler http.Handler = mux
	handler = middleware.TrimSlash(staticPrefix)(handler)
	handler = middleware.RequestLog(logger)(handler)
	return handler, nil
}

func (s *server) handleRoute(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == s.healthPath {
		s.handleHealth(w)
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		if _, err := s.routeEngine.Table().Match(r.URL.Path); err != nil {
			s.respondNotFound(w, r)
			return
		}
		w.Header().Set("Allow", "GET, HEAD")
		setCachePolicy(w, s.cachePolicies.Error)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if s.routeEngine.ServeRoute(w, r) {
		return
	}
	s.respondNotFound(w, r)
}

func (s *server) respondNotFound(w http.ResponseWriter, r *http.Request) {
	s.routeEngine.RespondNotFound(w, r, framework.NotFoundContext{
		RequestPath: r.URL.Path,
		Revision:    s.revision,
	})
}

func isPartialRequest(r *http.Request) bool {
	return r != nil && strings.EqualFold(strings.TrimSpace(r.Header.Get(partialRequestHeader)), "true")
}

func (s *server) renderPage(r *http.Request, w http.ResponseWriter, component templ.Component) error {
	policy := s.cachePolicies.HTML
	if isPartialRequest(r) {
		policy = s.cachePolicies.Partial
	}
	return s.renderPageWithStatus(r, w, component, http.StatusOK, policy, partialRequestHeader)
}

// renderPageWithStatus renders into a buffer first so a failing component
// leaves the response untouched for the server error handler.
func (s *server) renderPageWithStatus(
	r *http.Request,
	w http.ResponseWriter,
	component templ.Component,
	statusCode int,
	cachePolicy string,
	vary ...string,
) error {
	var body bytes.Buffer
	if err := component.Render(r.Context(), &body); err != nil {
		return err
	}

	for _, header := range vary {
		w.Header().Add("Vary", header)
	}
	setCachePolicy(w, cachePolicy)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if r.Method == http.MethodHead {
		return nil
	}
	if _, err := body.WriteTo(w); err != nil {
		s.logger.Debug("write page", "path", r.URL.Path, "error", err)
	}
	return nil
}

func (s *server) handleNotFound(
	w http.ResponseWriter,
	r *http.Request,
	notFoundContext framework.NotFoundContext,
) {
	if s.notFoundPage == nil {
		setCachePolicy(w, s.cachePolicies.Error)
		http.NotFound(w, r)
		return
	}

	component := s.notFoundPage(notFoundContext)
	if component == nil {
		setCachePolicy(w, s.cachePolicies.Error)
		http.NotFound(w, r)
		return
	}
	if err := s.renderPageWithStatus(r, w, component, http.StatusNotFound, s.cachePolicies.Error); err != nil {
		s.logger.Error("render not found page", "path", notFoundContext.RequestPath, "error", err)
		setCachePolicy(w, s.cachePolicies.Error)
		http.NotFound(w, r)
	}
}

func (s *server) handleServerError(w http.ResponseWriter, err error) {
	setCachePolicy(w, s.cachePolicies.Error)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	s.logger.Error("server error", "revision", s.revision, "error", err)
}

func (s *server) handleHealth(w http.ResponseWriter) {
	setCachePolicy(w, s.cachePolicies.Health)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.healthBody))
}

func normalizeStaticPrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return defaultStaticPrefix
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

func normalizeHealthPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return defaultHealthPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func withDefaultPolicies(policies CachePolicies) CachePolicies {
	defaults := DefaultCachePolicies()
	if strings.TrimSpace(policies.HTML) == "" {
		policies.HTML = defaults.HTML
	}
	if strings.TrimSpace(policies.Partial) == "" {
		policies.Partial = defaults.Partial
	}
	if strings.TrimSpace(policies.Static) == "" {
		policies.Static = defaults.Static
	}
	if strings.TrimSpace(policies.Health) == "" {
		policies.Health = defaults.Health
	}
	if strings.TrimSpace(policies.Error) == "" {
		policies.Error = defaults.Error
	}
	return policies
}

func setCachePolicy(w http.ResponseWriter, policy string) {
	policy = strings.TrimSpace(policy)
	if policy == "" {
		return
	}
	w.Header().Set("Cache-Control", policy)
}

func withCachePolicy(policy string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setCachePolicy(w, policy)
		next.ServeHTTP(w, r)
	})
}

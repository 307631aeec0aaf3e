package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"corenet/framework"
	"corenet/framework/httpserver"
	"corenet/internal/config"
)

// NewHandler builds the console handler for the configured route revision
// and reports which revision was selected.
func NewHandler(cfg config.Config, log *slog.Logger) (http.Handler, string, error) {
	revisions, err := Revisions(DefaultPages())
	if err != nil {
		return nil, "", fmt.Errorf("build route revisions: %w", err)
	}
	revision, table, err := revisions.Select(cfg.RouteRevision)
	if err != nil {
		return nil, "", fmt.Errorf("invalid route_revision: %w", err)
	}

	handler, err := httpserver.New(httpserver.Config{
		Table:         table,
		Revision:      revision,
		Layouts:       []framework.LayoutRenderer{Layout(Catalog())},
		Static:        httpserver.StaticMount{URLPrefix: "/static/", Dir: cfg.StaticDir},
		Mounts:        AssetMounts(),
		CachePolicies: cachePolicies(cfg.Cache),
		NotFoundPage:  NotFoundPage(NavLinks(table)),
		Logger:        log,
	})
	if err != nil {
		return nil, "", fmt.Errorf("create http server: %w", err)
	}
	return handler, revision, nil
}

func cachePolicies(cfg config.CacheConfig) httpserver.CachePolicies {
	policies := httpserver.DefaultCachePolicies()
	if cfg.HTML != "" {
		policies.HTML = cfg.HTML
		policies.Partial = cfg.HTML
	}
	if cfg.Error != "" {
		policies.Error = cfg.Error
	}
	return policies
}

package middleware

import (
	"net/http"
	"strings"
)

// TrimSlash redirects paths with a trailing slash to their canonical form.
// The root path "/" and any path under one of the exempt prefixes pass through.
// Leading slashes are collapsed so the Location header is always a path on
// this host, never a scheme-relative URL.
func TrimSlash(exemptPrefixes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if len(path) > 1 && strings.HasSuffix(path, "/") && !hasAnyPrefix(path, exemptPrefixes) {
				target := "/" + strings.TrimLeft(strings.TrimRight(path, "/"), `/\`)
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				http.Redirect(w, r, target, http.StatusMovedPermanently)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

package web

import (
	"net/http"

	"corenet/framework/httpserver"
	"corenet/internal/markdown"
)

// AssetMounts returns the generated assets served alongside the static dir.
func AssetMounts() []httpserver.Mount {
	return []httpserver.Mount{{
		Pattern: chromaStylePath,
		Handler: http.HandlerFunc(serveChromaCSS),
	}}
}

func serveChromaCSS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write([]byte(markdown.ChromaCSS()))
}

package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// handleSPA serves files from the static dir and falls back to index.html so
// client-side routes resolve. Unknown API paths stay JSON 404s.
func (a *API) handleSPA(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		respondError(w, http.StatusNotFound, errRouteNotFound)
		return
	}
	if a.staticDir == "" {
		a.handleWelcome(w, r)
		return
	}

	clean := path.Clean("/" + r.URL.Path)
	if clean != "/" {
		candidate := filepath.Join(a.staticDir, filepath.FromSlash(clean))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			http.ServeFile(w, r, candidate)
			return
		}
	}

	index := filepath.Join(a.staticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		a.handleWelcome(w, r)
		return
	}
	http.ServeFile(w, r, index)
}

func (a *API) handleWelcome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondError(w, http.StatusNotFound, errRouteNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to " + a.appName + " API",
		"docs":    "/api",
	})
}

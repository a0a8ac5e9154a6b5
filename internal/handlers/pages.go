package handlers

import "net/http"

// Home serves the pre-rendered API reference.
func Home(page []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// NotFound answers every unmatched route and method.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, messageResponse{Message: "Page not found"})
}

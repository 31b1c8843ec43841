package server

import (
	"net/http"

	"microsvc/internal/handler"
)

// LinkRoutes mounts the URL shortener API.
func LinkRoutes(h *handler.LinkHandler) Routes {
	return func(mux *http.ServeMux) {
		mux.HandleFunc("GET /{$}", h.Home)
		mux.HandleFunc("GET /api/health", h.Health)
		mux.HandleFunc("POST /api/shorten", h.Shorten)
		mux.HandleFunc("GET /api/stats/{code}", h.Stats)
		mux.HandleFunc("GET /{code}", h.Redirect)
	}
}

// UserRoutes mounts the user management API.
func UserRoutes(h *handler.UserHandler) Routes {
	return func(mux *http.ServeMux) {
		mux.HandleFunc("GET /{$}", h.Home)
		mux.HandleFunc("GET /users", h.List)
		mux.HandleFunc("POST /users", h.Create)
		mux.HandleFunc("GET /user/{id}", h.Get)
		mux.HandleFunc("PUT /user/{id}", h.Update)
		mux.HandleFunc("DELETE /user/{id}", h.Delete)
		mux.HandleFunc("GET /search", h.Search)
		mux.HandleFunc("POST /login", h.Login)
	}
}

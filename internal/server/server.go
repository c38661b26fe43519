// Package server maps the blog's URLs onto handlers and wraps them in the middleware stack.
package server

import (
	"net/http"

	"blogicum/internal/config"
	handlers "blogicum/internal/handler"
	"blogicum/internal/middleware"
	"blogicum/internal/service"

	"github.com/gorilla/mux"
)

const (
	postPath    = "/posts/{post_id:[0-9]+}"
	commentPath = "/{comment_id:[0-9]+}/"
)

func NewRouter(h *handlers.Handlers, authService service.AuthService, cfg *config.Config) http.Handler {
	r := mux.NewRouter()

	requireAuth := middleware.RequireAuth(cfg.LoginURL)
	protected := func(f http.HandlerFunc) http.Handler {
		return middleware.Chain(f, requireAuth)
	}

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	r.HandleFunc("/auth/registration/", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login/", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh-token/", h.RefreshToken).Methods(http.MethodPost)

	// public pages
	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc(postPath+"/", h.PostDetail).Methods(http.MethodGet)
	r.HandleFunc("/category/{category_slug:[-a-zA-Z0-9_]+}/", h.CategoryPosts).Methods(http.MethodGet)

	// edit must win over a user literally named "edit"
	r.Handle("/profile/edit/", protected(h.GetCurrentUser)).Methods(http.MethodGet)
	r.Handle("/profile/edit/", protected(h.UpdateUser)).Methods(http.MethodPost)
	r.HandleFunc("/profile/{username}/", h.Profile).Methods(http.MethodGet)

	r.Handle("/posts/create/", protected(h.CreatePost)).Methods(http.MethodPost)
	r.Handle(postPath+"/edit/", protected(h.PostForEdit)).Methods(http.MethodGet)
	r.Handle(postPath+"/edit/", protected(h.EditPost)).Methods(http.MethodPost)
	r.Handle(postPath+"/delete/", protected(h.PostForEdit)).Methods(http.MethodGet)
	r.Handle(postPath+"/delete/", protected(h.DeletePost)).Methods(http.MethodPost)
	r.Handle(postPath+"/image/", protected(h.UploadImage)).Methods(http.MethodPost)
	r.Handle(postPath+"/image/", protected(h.DeleteImage)).Methods(http.MethodDelete)

	r.Handle(postPath+"/comment/", protected(h.AddComment)).Methods(http.MethodPost)
	r.Handle(postPath+"/edit_comment"+commentPath, protected(h.CommentForEdit)).Methods(http.MethodGet)
	r.Handle(postPath+"/edit_comment"+commentPath, protected(h.EditComment)).Methods(http.MethodPost)
	r.Handle(postPath+"/delete_comment"+commentPath, protected(h.CommentForEdit)).Methods(http.MethodGet)
	r.Handle(postPath+"/delete_comment"+commentPath, protected(h.DeleteComment)).Methods(http.MethodPost)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(mux.MiddlewareFunc(requireAuth), middleware.StaffOnly)
	admin.HandleFunc("/categories/", h.ListCategories).Methods(http.MethodGet)
	admin.HandleFunc("/categories/", h.CreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{category_id:[0-9]+}/", h.UpdateCategory).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{category_id:[0-9]+}/", h.DeleteCategory).Methods(http.MethodDelete)
	admin.HandleFunc("/locations/", h.ListLocations).Methods(http.MethodGet)
	admin.HandleFunc("/locations/", h.CreateLocation).Methods(http.MethodPost)
	admin.HandleFunc("/locations/{location_id:[0-9]+}/", h.UpdateLocation).Methods(http.MethodPut)
	admin.HandleFunc("/locations/{location_id:[0-9]+}/", h.DeleteLocation).Methods(http.MethodDelete)
	admin.HandleFunc("/posts/", h.SearchPosts).Methods(http.MethodGet)

	return middleware.Chain(
		r,
		middleware.AuthMiddleware(authService),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)
}

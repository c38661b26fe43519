package middleware

import (
	"log"
	"net/http"
	"time"

	"blogicum/internal/access"
	handlers "blogicum/internal/handler"
	"blogicum/internal/service"
)

type Middleware func(http.Handler) http.Handler

// AuthMiddleware puts the viewer behind a valid bearer token into the context.
// Requests without a token go on as anonymous; a bad token is rejected.
func AuthMiddleware(authService service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, ok := handlers.BearerToken(r)
			if !ok {
				handlers.WriteError(w, "Неверный формат токена", http.StatusUnauthorized)
				return
			}

			viewer, err := authService.ViewerFromToken(tokenString)
			if err != nil {
				handlers.WriteError(w, "Недействительный токен", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(access.WithViewer(r.Context(), viewer)))
		})
	}
}

// RequireAuth sends anonymous viewers to the login flow.
func RequireAuth(loginURL string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if access.ViewerFrom(r.Context()).IsAnonymous() {
				handlers.RedirectToLogin(w, r, loginURL)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// StaffOnly guards the admin tooling. It runs after RequireAuth.
func StaffOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !access.ViewerFrom(r.Context()).IsStaff {
			handlers.WriteError(w, "Доступ запрещен", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		w.Header().Set("Access-Control-Expose-Headers", "Location")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Printf("%s %s %d %s %s", r.Method, r.RequestURI, rec.status, time.Since(start), r.RemoteAddr)
	})
}

// Chain wraps h so that the first middleware listed runs innermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}

package routes

import (
	"net/http"

	"github.com/voblako/voblako/internal/app"
	"github.com/voblako/voblako/internal/handler"
	"github.com/voblako/voblako/internal/middleware"
	"github.com/voblako/voblako/internal/proxy"
)

func SetupRoutes(a *app.App) http.Handler {
	// Remote mode: every API request is forwarded verbatim, the mock
	// implementation below is never consulted
	if a.Cfg.IsRemote() {
		mux := http.NewServeMux()
		mux.Handle("/api/", proxy.New(a.Cfg.RemoteBaseURL))
		return middleware.Chain(
			mux,
			middleware.Config(a.Cfg),
			middleware.RequestLogging,
		)
	}

	// Handlers
	auth := handler.NewAuthHandler(a.AuthService)
	files := handler.NewFilesHandler(a.FileService)
	storage := handler.NewStorageHandler(a.StorageService)

	mux := http.NewServeMux()

	// Auth (credential endpoints rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("GET /api/auth/check", auth.Check)
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /api/auth/signup", rateLimiter(auth.Signup))
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)

	// Storage listing
	mux.HandleFunc("GET /api/storage", storage.Listing)

	// Files
	mux.HandleFunc("POST /api/files", files.Upload)
	mux.HandleFunc("POST /api/files/list", files.List)
	mux.HandleFunc("GET /api/files/{id}", files.Download)
	mux.HandleFunc("POST /api/files/{id}", files.Replace)
	mux.HandleFunc("DELETE /api/files/{id}", files.Delete)
	mux.HandleFunc("GET /api/files/{id}/meta", files.Meta)
	mux.HandleFunc("POST /api/files/{id}/name", files.Rename)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Config(a.Cfg),
		middleware.RequestLogging,
		middleware.Session(a.AuthService),
	)
}

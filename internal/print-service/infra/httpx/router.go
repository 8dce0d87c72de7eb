package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/timlee789/pos-system/internal/print-service/infra/httpx/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachRequestMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The POS and kiosk are browser apps served from another origin.
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  func(r *http.Request, origin string) bool { return true },
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", middlewares.HeaderXIdempotencyKey},
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	r.Post("/print", handler.Print)
	r.Post("/open-drawer", handler.OpenDrawer)
	r.Get("/jobs/{requestID}", handler.ListJobs)
	r.Get("/ping", handler.Ping)
	return r
}

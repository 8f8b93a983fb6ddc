package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/quietcheck/mood-server/internal/config"
)

// NewRouter assembles the HTTP surface. The health endpoint is public;
// everything under /api/v1 requires the bearer token.
func NewRouter(cfg *config.Config, h *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(cfg))
		r.Use(JSONContentType)
		r.Use(RateLimitMiddleware(NewRateLimiter(60, time.Minute)))

		r.Get("/entries", h.ListEntries)
		r.Post("/entries", h.CreateEntry)
		r.Put("/entries/{id}", h.UpdateEntry)
		r.Delete("/entries/{id}", h.DeleteEntry)

		r.Get("/stats", h.Stats)
		r.Get("/insights", h.Insights)
		r.Get("/report", h.Report)

		r.Post("/practices", h.Practices)
		r.Get("/weekly-insight", h.WeeklyInsight)
		r.Get("/patterns", h.Patterns)

		r.Post("/chat", h.Chat)
		r.Get("/chat/{chatID}", h.ChatHistory)

		r.Get("/narratives", h.Narratives)
		r.Get("/quick-help/{state}", h.QuickHelp)

		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.PutSettings)

		r.Post("/reset", h.Reset)
	})

	return r
}

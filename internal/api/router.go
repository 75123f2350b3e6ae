package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/eventtracker/server/internal/api/handlers"
	"github.com/eventtracker/server/internal/api/httpx"
	"github.com/eventtracker/server/internal/auth"
	"github.com/eventtracker/server/internal/config"
	"github.com/eventtracker/server/internal/metrics"
	"github.com/eventtracker/server/internal/middleware"
	"github.com/eventtracker/server/internal/services"
)

type RouterDeps struct {
	Cfg      config.Config
	TM       *auth.TokenManager
	UserSvc  *services.UserService
	EventSvc *services.EventService
	ShareSvc *services.ShareService
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	authH := handlers.NewAuthHandler(d.UserSvc, d.TM)
	eventsH := handlers.NewEventsHandler(d.EventSvc, d.ShareSvc, d.Cfg.PublicBaseURL)
	publicH := handlers.NewPublicHandler(d.ShareSvc)
	dashH := handlers.NewDashboardHandler(d.EventSvc)
	authMW := middleware.NewAuthMiddleware(d.TM)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/refresh", authH.Refresh)

		// token-gated public read path, no session involved
		r.Get("/public/events/{token}", publicH.Event)

		r.Group(func(r chi.Router) {
			r.Use(authMW.Auth)

			r.Get("/auth/profile", authH.Profile)

			r.Route("/events", func(r chi.Router) {
				r.Get("/", eventsH.List)
				r.Post("/", eventsH.Create)
				r.Get("/upcoming", eventsH.Upcoming)
				r.Get("/past", eventsH.Past)
				r.Get("/{id}", eventsH.Get)
				r.Put("/{id}", eventsH.Update)
				r.Delete("/{id}", eventsH.Delete)
				r.Post("/{id}/share", eventsH.Share)
			})

			r.Get("/dashboard/stats", dashH.Stats)
		})
	})

	return r
}

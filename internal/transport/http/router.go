package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/waitlist-api/internal/application/waitlist"
	"github.com/waitlist-api/internal/config"
	"github.com/waitlist-api/internal/transport/http/handler"
	appmiddleware "github.com/waitlist-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to the public submit POST.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	var verifier waitlist.CaptchaVerifier
	if deps.Verifier != nil {
		verifier = deps.Verifier
	}
	waitlistSvc := waitlist.NewService(deps.WaitlistRepo, verifier)

	var probe StoreProbe
	if deps.Diag != nil {
		probe = deps.Diag
	}
	healthH := handler.NewHealthHandler(cfg, probe)
	waitlistH := handler.NewWaitlistHandler(waitlistSvc)

	r.Get("/", healthH.Root)
	r.Get("/api/hello", healthH.Hello)
	r.Get("/test", healthH.Test)
	r.Get("/waitlist/count", waitlistH.Count)
	r.With(sensitiveRL.Limit).Post("/waitlist/submit", waitlistH.Submit)

	return r
}

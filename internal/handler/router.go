package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zhouzirui/z-timer/backend/internal/handler/session"
	applog "github.com/zhouzirui/z-timer/backend/internal/log"
	middlewarePkg "github.com/zhouzirui/z-timer/backend/internal/middleware"
	sessionService "github.com/zhouzirui/z-timer/backend/internal/service/session"
	"github.com/zhouzirui/z-timer/backend/pkg/utils"
)

// Options tunes the router's ambient behavior.
type Options struct {
	Collection     string
	AllowedOrigin  string
	WriteRateLimit int // requests per minute per IP on writes; 0 disables
	MetricsEnabled bool
}

// NewRouter wires HTTP routes to core services.
func NewRouter(sessionSvc *sessionService.Service, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(applog.WithComponent("http")))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(opts.AllowedOrigin))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	sessionHandler := session.New(sessionSvc, opts.Collection)

	r.Route("/api", func(api chi.Router) {
		api.Group(func(g chi.Router) {
			g.Use(writeLimited(opts.WriteRateLimit))
			sessionHandler.RegisterRoutes(g)
		})
	})

	return r
}

// writeLimited applies the rate limit to POST requests only.
func writeLimited(perMinute int) func(http.Handler) http.Handler {
	limit := middlewarePkg.RateLimit(perMinute, time.Minute)
	return func(next http.Handler) http.Handler {
		limited := limit(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Package api exposes the aggregation engine over a small JSON HTTP API
// consumed by the dashboard frontend.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spiffcs/ghdash/config"
	"github.com/spiffcs/ghdash/internal/model"
	"github.com/spiffcs/ghdash/internal/window"
)

const (
	serverReadTimeout  = 10 * time.Second
	serverWriteTimeout = 120 * time.Second
	serverIdleTimeout  = 60 * time.Second
)

// ContributionService aggregates one actor's activity.
type ContributionService interface {
	ContributionsBy(ctx context.Context, actor string, w window.Window, owner, repo string) (*model.Contributions, error)
}

// EngagementService computes team-wide engagement.
type EngagementService interface {
	TeamEngagement(ctx context.Context, w window.Window, roster model.Roster, owner, repo string) (*model.TeamEngagement, error)
}

// Server wires the services into HTTP handlers.
type Server struct {
	cfg           *config.Config
	contributions ContributionService
	engagement    EngagementService
}

// NewServer creates a Server.
func NewServer(cfg *config.Config, contributions ContributionService, engagement EngagementService) *Server {
	return &Server{
		cfg:           cfg,
		contributions: contributions,
		engagement:    engagement,
	}
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(recoverJSON)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/metrics", s.handleMetrics)
		r.Get("/team-engagement", s.handleTeamEngagement)
	})

	return r
}

// HTTPServer builds an http.Server bound to the configured address. The
// long write timeout accommodates multi-page upstream walks; the core
// itself enforces no deadline.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.Router(),
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}
}

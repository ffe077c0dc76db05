package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rscf/care-fund-portal/internal/service/member"
	"github.com/rscf/care-fund-portal/internal/service/session"
	"go.uber.org/zap"
)

// Pinger reports backing-store liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	cookieName    string
	logger        *zap.Logger
	templates     *template.Template
	sessions      *session.Store
	registration  *member.RegistrationService
	auth          *member.AuthService
	contributions *member.ContributionCache
	health        Pinger

	httpServer *http.Server
}

type Config struct {
	Host       string
	Port       int
	CookieName string
}

type Dependencies struct {
	Logger        *zap.Logger
	Sessions      *session.Store
	Registration  *member.RegistrationService
	Auth          *member.AuthService
	Contributions *member.ContributionCache
	Health        Pinger
}

func New(cfg Config, deps Dependencies) (*Server, error) {
	if deps.Sessions == nil || deps.Registration == nil || deps.Auth == nil || deps.Contributions == nil {
		return nil, fmt.Errorf("server dependencies not fully initialized")
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		cookieName:    cfg.CookieName,
		logger:        deps.Logger,
		templates:     tmpl,
		sessions:      deps.Sessions,
		registration:  deps.Registration,
		auth:          deps.Auth,
		contributions: deps.Contributions,
		health:        deps.Health,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Group(func(g chi.Router) {
		g.Use(s.withSession)

		g.Get("/", s.handleIndex)
		g.Get("/login", s.handleLoginPage)
		g.Post("/login", s.handleLogin)
		g.Get("/signup", s.handleSignupPage)
		g.Post("/signup", s.handleSignup)
		g.Get("/dashboard", s.handleDashboard)
		g.Post("/logout", s.handleLogout)
	})

	return r
}

func (s *Server) Start() error {
	s.logger.Info("HTTP server listening",
		zap.String("addr", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

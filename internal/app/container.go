package app

import (
	"context"
	"fmt"

	"github.com/rscf/care-fund-portal/internal/config"
	"github.com/rscf/care-fund-portal/internal/server"
	"github.com/rscf/care-fund-portal/internal/service/cache"
	"github.com/rscf/care-fund-portal/internal/service/member"
	"github.com/rscf/care-fund-portal/internal/service/session"
	"github.com/rscf/care-fund-portal/internal/service/sheets"
	"go.uber.org/zap"
)

// Container bundles assembled services for constructing the portal server.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	server  *server.Server
	closers []func()
}

// Server returns the fully wired HTTP server.
func (c *Container) Server() (*server.Server, error) {
	if c == nil || c.server == nil {
		return nil, fmt.Errorf("server not initialized")
	}
	return c.server, nil
}

// Close tears down infrastructure services in reverse assembly order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build assembles all infrastructure services and returns a container
// holding the wired server. Heavy-weight initialization (redis, store
// adapter, templates) happens here so the handlers stay focused on flow
// logic.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	cacheSvc, err := cache.NewCacheService(cache.CacheConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache service: %w", err)
	}
	closers = append(closers, func() {
		_ = cacheSvc.Close()
	})

	storeSvc, err := sheets.NewStoreService(sheets.StoreConfig{
		SpreadsheetID:   cfg.Sheets.SpreadsheetID,
		WorksheetName:   cfg.Sheets.WorksheetName,
		CredentialsFile: cfg.Sheets.CredentialsFile,
		CredentialsJSON: cfg.Sheets.CredentialsJSON,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create record store adapter: %w", err)
	}

	sessionStore := session.NewStore(cacheSvc, cfg.Session.TTL, logger)
	registrationSvc := member.NewRegistrationService(storeSvc, logger)
	authSvc := member.NewAuthService(storeSvc, logger)
	contributionCache := member.NewContributionCache(storeSvc, cfg.Cache.ContributionTTL, logger)

	srv, err := server.New(server.Config{
		Host:       cfg.Server.Host,
		Port:       cfg.Server.Port,
		CookieName: cfg.Session.CookieName,
	}, server.Dependencies{
		Logger:        logger,
		Sessions:      sessionStore,
		Registration:  registrationSvc,
		Auth:          authSvc,
		Contributions: contributionCache,
		Health:        cacheSvc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("Portal services assembled",
		zap.String("worksheet", cfg.Sheets.WorksheetName),
		zap.Duration("contribution_ttl", cfg.Cache.ContributionTTL),
		zap.Duration("session_ttl", cfg.Session.TTL))

	return &Container{
		Config:  cfg,
		Logger:  logger,
		server:  srv,
		closers: closers,
	}, nil
}

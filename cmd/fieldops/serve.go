package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"example.com/fieldops/internal/config"
	domsession "example.com/fieldops/internal/domain/session"
	"example.com/fieldops/internal/infra/backend"
	"example.com/fieldops/internal/infra/persistence/memory"
	mysqlrepo "example.com/fieldops/internal/infra/persistence/mysql"
	pgrepo "example.com/fieldops/internal/infra/persistence/postgres"
	"example.com/fieldops/internal/infra/security"
	httpapi "example.com/fieldops/internal/interface/http"
	authuc "example.com/fieldops/internal/usecase/auth"
	"example.com/fieldops/internal/usecase/listing"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, a.cfg.Session)
	if err != nil {
		return err
	}
	defer closeStore()

	bc, err := backend.NewClient(a.cfg.Backend.BaseURL, a.cfg.Backend.Timeout, a.log.Named("backend"))
	if err != nil {
		return err
	}
	authSvc := authuc.NewService(
		store,
		bc,
		security.NewTokenInspector(a.cfg.Backend.JWTSecret),
		security.NewSessionKeys(a.cfg.Session.Secret),
		a.cfg.Session.TTL,
	)

	views := listing.NewRegistry(ctx)
	defer views.Close()

	api := httpapi.NewAPI(httpapi.Dependencies{
		AuthService: authSvc,
		Backend:     bc,
		Views:       views,
		Logger:      a.log.Named("http"),
		Settings: httpapi.Settings{
			CookieName:   a.cfg.Session.CookieName,
			SecureCookie: a.cfg.Session.SecureCookie,
			CacheTTL:     a.cfg.Listing.CacheTTL,
			WaitTimeout:  a.cfg.Listing.WaitTimeout,
			PageWindow:   a.cfg.Listing.PageWindow,
		},
	})

	srv := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           api.Router(),
		ReadTimeout:       a.cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: a.cfg.HTTP.ReadTimeout,
		WriteTimeout:      a.cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("backend", a.cfg.Backend.BaseURL),
			zap.String("session_store", a.cfg.Session.Store),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		housekeeping(gctx, a.log, authSvc, views, a.cfg.Listing.IdleTimeout)
		return nil
	})
	return g.Wait()
}

// housekeeping drops idle list views and expired sessions until ctx ends.
func housekeeping(ctx context.Context, log *zap.Logger, authSvc *authuc.Service, views *listing.Registry, idle time.Duration) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if n := views.Sweep(idle); n > 0 {
			log.Debug("dropped idle views", zap.Int("sessions", n))
		}
		n, err := authSvc.Purge(ctx)
		if err != nil {
			log.Warn("purge sessions", zap.Error(err))
			continue
		}
		if n > 0 {
			log.Debug("purged expired sessions", zap.Int64("count", n))
		}
	}
}

// schemaStore is a session store backed by a database.
type schemaStore interface {
	domsession.Repository
	EnsureSchema(ctx context.Context) error
}

// openStore returns the configured session store and a func releasing it.
func openStore(ctx context.Context, cfg config.SessionConfig) (domsession.Repository, func(), error) {
	switch cfg.Store {
	case config.StoreMySQL:
		db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql: %w", err)
		}
		return mysqlrepo.NewSessionRepository(db), func() { _ = db.Close() }, nil
	case config.StorePostgres:
		pool, err := pgrepo.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		return pgrepo.NewSessionRepository(pool), pool.Close, nil
	default:
		return memory.NewSessionRepository(), func() {}, nil
	}
}

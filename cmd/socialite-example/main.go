// Command socialite-example serves social login for the configured drivers:
//
//	GET /auth/{driver}           redirect to the provider
//	GET /auth/{driver}/callback  complete the login and print the user
//
// Configuration is read from the environment (and .env). Provider
// credentials come from PROVIDERS_FILE or from GOOGLE_* / GITHUB_*
// variables.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/socialite/pkg/authhttp"
	"github.com/dmitrymomot/socialite/pkg/config"
	"github.com/dmitrymomot/socialite/pkg/logger"
	"github.com/dmitrymomot/socialite/pkg/sessionstore"
	"github.com/dmitrymomot/socialite/pkg/socialite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	logOpts, err := cfg.loggerOptions()
	if err != nil {
		return err
	}
	log := logger.New(logOpts...)

	app, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	return serve(ctx, cfg.HTTP, app.router(), log)
}

type app struct {
	cfg      appConfig
	log      *slog.Logger
	manager  *socialite.Manager
	sessions authhttp.SessionSource
	checks   []func(context.Context) error
	closers  []io.Closer
}

func newApp(ctx context.Context, cfg appConfig, log *slog.Logger) (*app, error) {
	table, err := cfg.providerTable()
	if err != nil {
		return nil, err
	}

	manager := socialite.NewManager(
		socialite.WithDefaultDriver(table.Default),
		socialite.WithManagerLogger(log),
	)
	if err := config.RegisterProviders(manager, table); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, manager: manager}
	if err := a.initSessions(ctx); err != nil {
		a.Close()
		return nil, err
	}

	log.InfoContext(ctx, "social login ready",
		slog.Any("drivers", manager.Drivers()),
		slog.String("sessions", cfg.SessionDriver),
	)
	return a, nil
}

func (a *app) initSessions(ctx context.Context) error {
	switch a.cfg.SessionDriver {
	case sessionMemory:
		store := sessionstore.NewMemoryStore(a.cfg.SessionTTL, a.cfg.SessionTTL)
		a.closers = append(a.closers, store)
		a.sessions = a.storeSessions(store)

	case sessionRedis:
		client, err := sessionstore.Connect(ctx, a.cfg.Redis)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, client)
		a.checks = append(a.checks, sessionstore.Healthcheck(client))
		a.sessions = a.storeSessions(sessionstore.NewRedisStore(client, sessionstore.WithTTL(a.cfg.SessionTTL)))

	case sessionCookie:
		codec, err := sessionstore.NewCookieCodec(a.cfg.SessionSecrets,
			sessionstore.WithCookieSecure(a.cfg.SecureCookies),
			sessionstore.WithCookieMaxAge(int(a.cfg.SessionTTL.Seconds())),
		)
		if err != nil {
			return err
		}
		a.sessions = authhttp.CookieSessions(codec)

	default:
		return fmt.Errorf("unknown session driver %q", a.cfg.SessionDriver)
	}
	return nil
}

func (a *app) storeSessions(store sessionstore.Store) authhttp.SessionSource {
	return authhttp.StoreSessions(store,
		authhttp.WithSecureSessionCookie(a.cfg.SecureCookies),
		authhttp.WithSessionMaxAge(int(a.cfg.SessionTTL.Seconds())),
	)
}

func (a *app) router() http.Handler {
	r := chi.NewRouter()
	r.Use(authhttp.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", healthHandler(a.log))
	r.Get("/health/ready", healthHandler(a.log, a.checks...))
	r.Mount("/auth", authhttp.New(a.manager, a.sessions, authhttp.WithLogger(a.log)).Routes())
	return r
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.Error("close resource", logger.Error(err))
		}
	}
}

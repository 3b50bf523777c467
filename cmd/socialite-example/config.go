package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/socialite/pkg/authhttp"
	"github.com/dmitrymomot/socialite/pkg/config"
	"github.com/dmitrymomot/socialite/pkg/logger"
	"github.com/dmitrymomot/socialite/pkg/sessionstore"
	"github.com/dmitrymomot/socialite/pkg/socialite"
)

// Session backends.
const (
	sessionMemory = "memory"
	sessionRedis  = "redis"
	sessionCookie = "cookie"
)

type appConfig struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"APP_NAME" envDefault:"socialite-example"`
	Version string `env:"APP_VERSION" envDefault:"dev"`

	// LogLevel overrides the level implied by Env, e.g. "debug" or "warn".
	LogLevel string `env:"LOG_LEVEL"`

	HTTP serverConfig

	// ProvidersFile is a YAML driver table. When empty, drivers are read
	// from GOOGLE_* and GITHUB_* variables instead.
	ProvidersFile string   `env:"PROVIDERS_FILE"`
	Drivers       []string `env:"SOCIALITE_DRIVERS" envSeparator:"," envDefault:"google,github"`
	DefaultDriver string   `env:"SOCIALITE_DEFAULT_DRIVER"`

	SessionDriver  string        `env:"SESSION_DRIVER" envDefault:"memory"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"10m"`
	SessionSecrets []string      `env:"SESSION_SECRETS" envSeparator:","`
	SecureCookies  bool          `env:"SECURE_COOKIES" envDefault:"false"`

	Redis sessionstore.RedisConfig
}

type serverConfig struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// loggerOptions builds the logger setup for the environment.
func (c appConfig) loggerOptions() ([]logger.Option, error) {
	opts := []logger.Option{
		logger.WithEnvironment(c.Env, c.Service),
		logger.WithAttr(slog.String("version", c.Version)),
		logger.WithContextExtractor(authhttp.RequestIDExtractor()),
	}
	if c.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
			return nil, fmt.Errorf("parse LOG_LEVEL: %w", err)
		}
		opts = append(opts, logger.WithLevel(level))
	}
	return opts, nil
}

// providerTable returns the drivers to register, from the YAML file when
// configured and from prefixed env variables otherwise.
func (c appConfig) providerTable() (config.ProviderTable, error) {
	if c.ProvidersFile != "" {
		table, err := config.LoadProviders(c.ProvidersFile)
		if err != nil {
			return config.ProviderTable{}, err
		}
		if c.DefaultDriver != "" {
			table.Default = c.DefaultDriver
		}
		return table, nil
	}

	table := config.ProviderTable{
		Default:   c.DefaultDriver,
		Providers: make(map[string]config.ProviderEntry, len(c.Drivers)),
	}
	for _, name := range c.Drivers {
		kind, err := socialite.ParseKind(name)
		if err != nil {
			return config.ProviderTable{}, err
		}
		var cfg socialite.ProviderConfig
		if err := config.Load(&cfg, config.WithPrefix(envPrefix(kind))); err != nil {
			return config.ProviderTable{}, fmt.Errorf("load %s config: %w", kind, err)
		}
		table.Providers[string(kind)] = config.ProviderEntry{Kind: string(kind), ProviderConfig: cfg}
	}
	return table, nil
}

func envPrefix(kind socialite.Kind) string {
	switch kind {
	case socialite.KindGitHub:
		return "GITHUB_"
	default:
		return "GOOGLE_"
	}
}

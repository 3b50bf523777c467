package socialite

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/socialite/pkg/logger"
)

// Kind identifies a built-in provider.
type Kind string

// Built-in provider kinds.
const (
	KindGoogle Kind = "google"
	KindGitHub Kind = "github"
)

// ParseKind maps a provider name to a Kind, ignoring case.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case KindGoogle, KindGitHub:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, name)
	}
}

func (k Kind) descriptor() (Descriptor, bool) {
	switch k {
	case KindGoogle:
		return GoogleDescriptor(), true
	case KindGitHub:
		return GitHubDescriptor(), true
	default:
		return Descriptor{}, false
	}
}

// Constructor builds a statically registered driver.
type Constructor func() (Provider, error)

// Factory builds a driver registered through Extend.
type Factory func(m *Manager) (Provider, error)

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithDefaultDriver sets the driver used when Provider is called with an
// empty name.
func WithDefaultDriver(name string) ManagerOption {
	return func(m *Manager) {
		m.defaultDriver = name
	}
}

// WithManagerHTTPClient sets the client given to providers built by
// BuildProvider.
func WithManagerHTTPClient(d Doer) ManagerOption {
	return func(m *Manager) {
		m.httpClient = d
	}
}

// WithManagerLogger sets the logger given to providers built by
// BuildProvider.
func WithManagerLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// Manager resolves providers by driver name. It is safe for concurrent use.
//
// Every resolution constructs a new provider, so the per-instance user
// cache never outlives the request that asked for it.
type Manager struct {
	defaultDriver string
	httpClient    Doer
	logger        *slog.Logger

	mu         sync.RWMutex
	drivers    map[string]Constructor
	extensions map[string]Factory
}

// NewManager creates an empty Manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		logger:     logger.Discard(),
		drivers:    make(map[string]Constructor),
		extensions: make(map[string]Factory),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterDriver registers a constructor under name. A later registration
// for the same name replaces the earlier one.
func (m *Manager) RegisterDriver(name string, ctor Constructor) error {
	key := normalizeDriver(name)
	if key == "" {
		return fmt.Errorf("%w: driver name is empty", ErrInvalidArgument)
	}
	if ctor == nil {
		return fmt.Errorf("%w: constructor is nil", ErrInvalidArgument)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[key] = ctor
	return nil
}

// RegisterConfig validates cfg now and registers a driver that builds a
// provider of the given kind from it on every resolution.
func (m *Manager) RegisterConfig(name string, kind Kind, cfg ProviderConfig) error {
	if _, ok := kind.descriptor(); !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedProvider, kind)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.clone()
	return m.RegisterDriver(name, func() (Provider, error) {
		return m.BuildProvider(kind, cfg)
	})
}

// Extend registers a factory under name. Extensions take precedence over
// drivers of the same name; the last Extend for a name wins.
func (m *Manager) Extend(name string, factory Factory) error {
	key := normalizeDriver(name)
	if key == "" {
		return fmt.Errorf("%w: driver name is empty", ErrInvalidArgument)
	}
	if factory == nil {
		return fmt.Errorf("%w: factory is nil", ErrInvalidArgument)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.extensions[key] = factory
	return nil
}

// Provider resolves name, or the default driver when name is empty.
func (m *Manager) Provider(name string) (Provider, error) {
	if name == "" {
		name = m.defaultDriver
	}
	key := normalizeDriver(name)
	if key == "" {
		return nil, ErrNoDriver
	}

	m.mu.RLock()
	factory, isExtension := m.extensions[key]
	ctor, isDriver := m.drivers[key]
	m.mu.RUnlock()

	var (
		p   Provider
		err error
	)
	switch {
	case isExtension:
		p, err = factory(m)
	case isDriver:
		p, err = ctor()
	default:
		return nil, fmt.Errorf("%w: %q", ErrDriverNotSupported, name)
	}

	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w: %q", ErrDriverResolution, name), err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %q returned no provider", ErrDriverResolution, name)
	}
	return p, nil
}

// BuildProvider constructs a built-in provider directly from cfg, without
// going through the registry. Scopes (when set), stateless mode, PKCE and
// parameters are applied through the Provider methods.
func (m *Manager) BuildProvider(kind Kind, cfg ProviderConfig) (Provider, error) {
	desc, ok := kind.descriptor()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, kind)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := New(desc, ProviderConfig{
		ClientID:       cfg.ClientID,
		ClientSecret:   cfg.ClientSecret,
		RedirectURL:    cfg.RedirectURL,
		ScopeSeparator: cfg.ScopeSeparator,
	}, WithHTTPClient(m.httpClient), WithLogger(m.logger))
	if err != nil {
		return nil, err
	}

	var p Provider = base
	if len(cfg.Scopes) > 0 {
		p = p.SetScopes(cfg.Scopes...)
	}
	if cfg.Stateless {
		p = p.Stateless()
	}
	if cfg.UsesPKCE {
		p = p.WithPKCE()
	}
	if len(cfg.Parameters) > 0 {
		p = p.With(cfg.Parameters)
	}
	return p, nil
}

// Drivers lists registered driver and extension names, sorted.
func (m *Manager) Drivers() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make(map[string]struct{}, len(m.drivers)+len(m.extensions))
	for k := range m.drivers {
		names[k] = struct{}{}
	}
	for k := range m.extensions {
		names[k] = struct{}{}
	}
	return slices.Sorted(maps.Keys(names))
}

func normalizeDriver(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

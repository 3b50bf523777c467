package socialite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/url"
	"slices"
	"sync"

	"github.com/dmitrymomot/socialite/pkg/logger"
)

// Provider drives the OAuth2 authorization code flow against one identity
// provider.
//
// The With*, SetScopes, Stateless and WithPKCE methods return a configured
// copy and leave the receiver untouched. A copy starts with an empty user
// cache, so a long-lived base provider can be specialized per request.
type Provider interface {
	// Name returns the descriptor name, e.g. "google".
	Name() string

	// Redirect stores the state and PKCE verifier in sess and returns the
	// authorization URL to send the browser to.
	Redirect(ctx context.Context, sess Session) (string, error)

	// User completes the login from the callback query. The result is
	// cached: later calls on the same instance return it without network
	// calls.
	User(ctx context.Context, sess Session, query url.Values) (*User, error)

	// UserFromToken resolves the user behind an existing access token.
	UserFromToken(ctx context.Context, token string) (*User, error)

	// RefreshToken exchanges a refresh token for a new token.
	RefreshToken(ctx context.Context, refreshToken string) (*Token, error)

	Scopes() []string
	WithScopes(scopes ...string) Provider
	SetScopes(scopes ...string) Provider
	WithRedirectURL(redirectURL string) (Provider, error)
	Stateless() Provider
	WithPKCE() Provider
	With(params map[string]string) Provider
}

// Option configures an OAuth2Provider during construction.
type Option func(*OAuth2Provider)

// WithHTTPClient sets the client used for token and user-info calls.
func WithHTTPClient(d Doer) Option {
	return func(p *OAuth2Provider) {
		if d != nil {
			p.client = NewAPIClient(d)
		}
	}
}

// WithLogger sets the logger used to report degraded user enrichment.
func WithLogger(l *slog.Logger) Option {
	return func(p *OAuth2Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// OAuth2Provider is the descriptor-driven Provider implementation.
type OAuth2Provider struct {
	desc         Descriptor
	client       *APIClient
	logger       *slog.Logger
	clientID     string
	clientSecret string
	redirectURL  string
	scopes       []string
	separator    string
	params       map[string]string
	stateless    bool
	usesPKCE     bool

	mu           sync.Mutex
	codeVerifier string
	cachedUser   *User
}

var _ Provider = (*OAuth2Provider)(nil)

// New builds a provider from a descriptor and config. The config is
// validated and copied; scopes, separator, parameters, stateless and PKCE
// settings are taken from it, falling back to the descriptor defaults.
func New(desc Descriptor, cfg ProviderConfig, opts ...Option) (*OAuth2Provider, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.clone()

	p := &OAuth2Provider{
		desc:         desc,
		logger:       logger.Discard(),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURL:  cfg.RedirectURL,
		scopes:       slices.Clone(desc.DefaultScopes),
		separator:    desc.ScopeSeparator,
		params:       map[string]string{},
	}
	if cfg.ScopeSeparator != "" {
		p.separator = cfg.ScopeSeparator
	}
	if len(cfg.Scopes) > 0 {
		p.scopes = nonEmpty(cfg.Scopes)
	}
	for k, v := range cfg.Parameters {
		if v != "" {
			p.params[k] = v
		}
	}
	p.stateless = cfg.Stateless
	p.usesPKCE = cfg.UsesPKCE

	for _, opt := range opts {
		opt(p)
	}
	if p.client == nil {
		p.client = NewAPIClient(nil)
	}
	return p, nil
}

// Name returns the descriptor name.
func (p *OAuth2Provider) Name() string { return p.desc.Name }

// Scopes returns a copy of the requested scopes in order.
func (p *OAuth2Provider) Scopes() []string { return slices.Clone(p.scopes) }

// WithScopes returns a copy with scopes appended, skipping empty and
// already present ones.
func (p *OAuth2Provider) WithScopes(scopes ...string) Provider {
	c := p.clone()
	for _, s := range scopes {
		if s != "" && !slices.Contains(c.scopes, s) {
			c.scopes = append(c.scopes, s)
		}
	}
	return c
}

// SetScopes returns a copy whose scopes are replaced by scopes.
func (p *OAuth2Provider) SetScopes(scopes ...string) Provider {
	c := p.clone()
	c.scopes = nonEmpty(scopes)
	return c
}

// WithRedirectURL returns a copy with a different callback URL.
func (p *OAuth2Provider) WithRedirectURL(redirectURL string) (Provider, error) {
	if redirectURL == "" {
		return nil, fmt.Errorf("%w: redirect url is empty", ErrInvalidArgument)
	}
	c := p.clone()
	c.redirectURL = redirectURL
	return c, nil
}

// Stateless returns a copy that neither stores nor checks the state
// parameter. This removes CSRF protection from the flow.
func (p *OAuth2Provider) Stateless() Provider {
	c := p.clone()
	c.stateless = true
	return c
}

// WithPKCE returns a copy that sends an S256 code challenge.
func (p *OAuth2Provider) WithPKCE() Provider {
	c := p.clone()
	c.usesPKCE = true
	return c
}

// With returns a copy with extra request parameters. Empty values are
// skipped; existing keys are overwritten.
func (p *OAuth2Provider) With(params map[string]string) Provider {
	c := p.clone()
	if c.params == nil {
		c.params = make(map[string]string, len(params))
	}
	for k, v := range params {
		if v != "" {
			c.params[k] = v
		}
	}
	return c
}

// Redirect implements Provider.
func (p *OAuth2Provider) Redirect(ctx context.Context, sess Session) (string, error) {
	if sess == nil && (!p.stateless || p.usesPKCE) {
		return "", fmt.Errorf("%w: session is required", ErrInvalidArgument)
	}

	var state string
	if !p.stateless {
		var err error
		if state, err = GenerateState(); err != nil {
			return "", err
		}
		if err := sess.Set(ctx, KeyState, []byte(state)); err != nil {
			return "", fmt.Errorf("store state: %w", err)
		}
	}

	var challenge string
	if p.usesPKCE {
		verifier, err := GenerateCodeVerifier()
		if err != nil {
			return "", err
		}
		if err := sess.Set(ctx, KeyCodeVerifier, []byte(verifier)); err != nil {
			return "", fmt.Errorf("store code verifier: %w", err)
		}
		p.mu.Lock()
		p.codeVerifier = verifier
		p.mu.Unlock()
		challenge = DeriveCodeChallenge(verifier)
	}

	return appendQuery(p.desc.Endpoint.AuthURL, encodeQuery(p.codeFields(state, challenge))), nil
}

// codeFields builds the authorization request parameters. Custom
// parameters are applied last and win over the built-in ones.
func (p *OAuth2Provider) codeFields(state, challenge string) map[string]string {
	fields := map[string]string{
		"client_id":     p.clientID,
		"redirect_uri":  p.redirectURL,
		"scope":         FormatScopes(p.scopes, p.separator),
		"response_type": "code",
	}
	if !p.stateless && state != "" {
		fields["state"] = state
	}
	if p.usesPKCE && challenge != "" {
		fields["code_challenge"] = challenge
		fields["code_challenge_method"] = CodeChallengeMethod
	}
	return mergeParams(fields, p.params)
}

// User implements Provider.
func (p *OAuth2Provider) User(ctx context.Context, sess Session, query url.Values) (*User, error) {
	p.mu.Lock()
	cached := p.cachedUser
	p.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	if sess == nil && (!p.stateless || p.usesPKCE) {
		return nil, fmt.Errorf("%w: session is required", ErrInvalidArgument)
	}

	invalid, err := p.hasInvalidState(ctx, sess, query.Get("state"))
	if err != nil {
		return nil, err
	}
	if invalid {
		return nil, ErrInvalidState
	}

	code := query.Get("code")
	if code == "" {
		return nil, ErrCodeNotFound
	}

	verifier, err := p.verifier(ctx, sess)
	if err != nil {
		return nil, err
	}

	token, err := p.exchangeCode(ctx, code, verifier)
	if err != nil {
		return nil, err
	}

	user, err := p.resolveUser(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}
	user.setToken(token)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cachedUser != nil {
		return p.cachedUser, nil
	}
	p.cachedUser = user
	return user, nil
}

// verifier returns the PKCE verifier to send with the code exchange. The
// session copy wins; the in-memory one only covers sessions that lost it.
func (p *OAuth2Provider) verifier(ctx context.Context, sess Session) (string, error) {
	if !p.usesPKCE {
		return "", nil
	}
	if sess != nil {
		v, ok, err := sess.Get(ctx, KeyCodeVerifier)
		if err != nil {
			return "", fmt.Errorf("read session code verifier: %w", err)
		}
		if ok && len(v) > 0 {
			return string(v), nil
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.codeVerifier, nil
}

// UserFromToken implements Provider. Only the Token field is set on the
// result; expiry, refresh token and scopes are unknown in this flow.
func (p *OAuth2Provider) UserFromToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is empty", ErrInvalidArgument)
	}
	user, err := p.resolveUser(ctx, token)
	if err != nil {
		return nil, err
	}
	user.Token = token
	user.ApprovedScopes = []string{}
	return user, nil
}

func (p *OAuth2Provider) resolveUser(ctx context.Context, token string) (*User, error) {
	raw, err := p.desc.resolver()(ctx, UserRequest{
		Client:     p.client,
		Logger:     p.logger,
		Descriptor: p.desc,
		Token:      token,
		Scopes:     slices.Clone(p.scopes),
	})
	if err != nil {
		return nil, errors.Join(ErrUserResolution, err)
	}

	user := MapRawToUser(raw, p.desc.Mapping)
	if user.ID == "" {
		return nil, fmt.Errorf("%w: %s user info has no id", ErrUserResolution, p.desc.Name)
	}
	return user, nil
}

// clone copies the configuration. The user cache and in-memory verifier
// belong to one authorization cycle and are not copied.
func (p *OAuth2Provider) clone() *OAuth2Provider {
	return &OAuth2Provider{
		desc:         p.desc,
		client:       p.client,
		logger:       p.logger,
		clientID:     p.clientID,
		clientSecret: p.clientSecret,
		redirectURL:  p.redirectURL,
		scopes:       slices.Clone(p.scopes),
		separator:    p.separator,
		params:       maps.Clone(p.params),
		stateless:    p.stateless,
		usesPKCE:     p.usesPKCE,
	}
}

func nonEmpty(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

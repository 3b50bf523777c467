// Package socialite implements the client side of OAuth2 "social login":
// it builds the authorization redirect, checks the returned state, trades
// the authorization code for a token and turns the provider's user payload
// into a common User.
//
// # Flow
//
// A Provider is obtained from a Manager (or built directly with New) and
// driven in two steps, one per HTTP request:
//
//	m := socialite.NewManager(socialite.WithDefaultDriver("google"))
//	_ = m.RegisterConfig("google", socialite.KindGoogle, socialite.ProviderConfig{
//		ClientID:     "client-id",
//		ClientSecret: "client-secret",
//		RedirectURL:  "https://app.example.com/auth/google/callback",
//	})
//
//	// GET /auth/google
//	p, err := m.Provider("google")
//	url, err := p.Redirect(ctx, sess) // stores state (and PKCE verifier) in sess
//	http.Redirect(w, r, url, http.StatusFound)
//
//	// GET /auth/google/callback
//	p, err := m.Provider("google")
//	user, err := p.User(ctx, sess, r.URL.Query())
//
// The session is anything that satisfies Session; package sessionstore
// provides in-memory, Redis and cookie implementations.
//
// # Providers
//
// Built-in descriptors exist for Google and GitHub. Other providers are a
// Descriptor value: endpoints, default scopes, a FieldMapping and, when the
// user-info call needs more than a bearer GET, a UserResolver.
//
// Provider configuration methods (WithScopes, Stateless, WithPKCE, With,
// WithRedirectURL) return a modified copy. A copy never shares the cached
// user of its origin, so configure a base provider once and derive
// per-request variants from it.
//
// # Errors
//
// Errors match one of ErrInvalidConfig, ErrInvalidArgument,
// ErrInvalidState, ErrAuthentication or ErrUnsupportedDriver with
// errors.Is. Authentication errors are the only ones raised after a
// network call and carry the underlying cause.
//
//	user, err := p.User(ctx, sess, r.URL.Query())
//	switch {
//	case errors.Is(err, socialite.ErrInvalidState):
//		// possible CSRF, restart the login
//	case errors.Is(err, socialite.ErrAuthentication):
//		// provider rejected the code or was unreachable
//	}
//
// # Stateless mode
//
// Stateless providers do not store or verify the state parameter. This
// turns off CSRF protection and should only be used where no session
// storage is shared between the redirect and the callback.
package socialite

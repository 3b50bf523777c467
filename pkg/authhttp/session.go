package authhttp

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/socialite/pkg/sessionstore"
	"github.com/dmitrymomot/socialite/pkg/socialite"
)

// SessionSource returns the session of the current request. It may set
// cookies on w.
type SessionSource func(w http.ResponseWriter, r *http.Request) socialite.Session

// DefaultSessionCookie is the cookie StoreSessions keeps the session id in.
const DefaultSessionCookie = "socialite_sid"

// StoreSessionOption configures StoreSessions.
type StoreSessionOption func(*storeSessions)

// WithSessionCookie overrides the id cookie name.
func WithSessionCookie(name string) StoreSessionOption {
	return func(s *storeSessions) {
		if name != "" {
			s.cookie.Name = name
		}
	}
}

// WithSecureSessionCookie marks the id cookie Secure.
func WithSecureSessionCookie(secure bool) StoreSessionOption {
	return func(s *storeSessions) {
		s.cookie.Secure = secure
	}
}

// WithSessionMaxAge sets the id cookie lifetime in seconds.
func WithSessionMaxAge(seconds int) StoreSessionOption {
	return func(s *storeSessions) {
		s.cookie.MaxAge = seconds
	}
}

type storeSessions struct {
	store  sessionstore.Store
	cookie http.Cookie
}

// StoreSessions binds every request to a session in store. The session id
// lives in a cookie; a request without a valid one gets a fresh UUID.
func StoreSessions(store sessionstore.Store, opts ...StoreSessionOption) SessionSource {
	s := &storeSessions{
		store: store,
		cookie: http.Cookie{
			Name:     DefaultSessionCookie,
			Path:     "/",
			MaxAge:   600,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	return func(w http.ResponseWriter, r *http.Request) socialite.Session {
		if c, err := r.Cookie(s.cookie.Name); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				return sessionstore.Bind(s.store, c.Value)
			}
		}

		sid := uuid.NewString()
		c := s.cookie
		c.Value = sid
		http.SetCookie(w, &c)
		return sessionstore.Bind(s.store, sid)
	}
}

// CookieSessions keeps session values in encrypted cookies.
func CookieSessions(codec *sessionstore.CookieCodec) SessionSource {
	return func(w http.ResponseWriter, r *http.Request) socialite.Session {
		return codec.Session(w, r)
	}
}

package authhttp

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/socialite/pkg/logger"
	"github.com/dmitrymomot/socialite/pkg/sessionstore"
	"github.com/dmitrymomot/socialite/pkg/socialite"
)

// SuccessHandler receives the user after a completed login. It owns the
// response.
type SuccessHandler func(w http.ResponseWriter, r *http.Request, driver string, user *socialite.User)

// Option configures a Handler.
type Option func(*Handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithSuccessHandler replaces the default success response, which renders
// the user profile as JSON.
func WithSuccessHandler(fn SuccessHandler) Option {
	return func(h *Handler) {
		if fn != nil {
			h.onSuccess = fn
		}
	}
}

// WithErrorHandler replaces WriteError as the failure response.
func WithErrorHandler(fn func(w http.ResponseWriter, r *http.Request, err error)) Option {
	return func(h *Handler) {
		if fn != nil {
			h.onError = fn
		}
	}
}

// Handler serves the redirect and callback endpoints for every driver of a
// manager.
type Handler struct {
	manager   *socialite.Manager
	sessions  SessionSource
	logger    *slog.Logger
	onSuccess SuccessHandler
	onError   func(w http.ResponseWriter, r *http.Request, err error)
}

// New creates a Handler.
func New(m *socialite.Manager, sessions SessionSource, opts ...Option) *Handler {
	h := &Handler{
		manager:   m,
		sessions:  sessions,
		logger:    logger.Discard(),
		onSuccess: writeUser,
		onError: func(w http.ResponseWriter, _ *http.Request, err error) {
			WriteError(w, err)
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns a router with the driver routes, ready to be mounted.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{driver}", h.Redirect)
	r.Get("/{driver}/callback", h.Callback)
	return r
}

// Redirect sends the browser to the provider's consent screen.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	driver := chi.URLParam(r, "driver")
	ctx := r.Context()

	p, err := h.manager.Provider(driver)
	if err != nil {
		h.fail(w, r, driver, err)
		return
	}

	target, err := p.Redirect(ctx, h.sessions(w, r))
	if err != nil {
		h.fail(w, r, driver, err)
		return
	}

	h.logger.DebugContext(ctx, "redirecting to provider", logger.Driver(driver), logger.Provider(p.Name()))
	http.Redirect(w, r, target, http.StatusFound)
}

// Callback completes the login from the provider's redirect.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	driver := chi.URLParam(r, "driver")
	ctx := r.Context()
	query := r.URL.Query()
	start := time.Now()

	if code := query.Get("error"); code != "" {
		err := fmt.Errorf("%w: %s", ErrProviderDenied, code)
		if desc := query.Get("error_description"); desc != "" {
			err = fmt.Errorf("%w: %s: %s", ErrProviderDenied, code, desc)
		}
		h.fail(w, r, driver, err)
		return
	}

	p, err := h.manager.Provider(driver)
	if err != nil {
		h.fail(w, r, driver, err)
		return
	}

	sess := h.sessions(w, r)
	user, err := p.User(ctx, sess, query)
	if err != nil {
		h.fail(w, r, driver, err)
		return
	}

	// State and verifier are single use.
	if c, ok := sess.(sessionstore.Clearer); ok {
		if err := c.Clear(ctx, socialite.KeyState, socialite.KeyCodeVerifier); err != nil {
			h.fail(w, r, driver, fmt.Errorf("clear session: %w", err))
			return
		}
	}

	h.logger.InfoContext(ctx, "user logged in",
		logger.Driver(driver),
		logger.Provider(p.Name()),
		logger.UserID(user.ID),
		logger.Duration(time.Since(start)),
	)
	h.onSuccess(w, r, driver, user)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, driver string, err error) {
	status, code := StatusCode(err)
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "social login failed",
		logger.Driver(driver),
		slog.String("code", code),
		logger.Error(err),
	)
	h.onError(w, r, err)
}

// UserResponse is the JSON form of a user rendered by the default success
// handler. Tokens are not included.
type UserResponse struct {
	Driver         string   `json:"driver"`
	ID             string   `json:"id"`
	Nickname       *string  `json:"nickname,omitempty"`
	Name           *string  `json:"name,omitempty"`
	Email          *string  `json:"email,omitempty"`
	Avatar         *string  `json:"avatar,omitempty"`
	ProfileURL     *string  `json:"profile_url,omitempty"`
	ExpiresIn      int      `json:"expires_in,omitempty"`
	ApprovedScopes []string `json:"approved_scopes"`
}

// NewUserResponse builds the JSON form of user.
func NewUserResponse(driver string, user *socialite.User) UserResponse {
	scopes := user.ApprovedScopes
	if scopes == nil {
		scopes = []string{}
	}
	return UserResponse{
		Driver:         driver,
		ID:             user.ID,
		Nickname:       user.Nickname,
		Name:           user.Name,
		Email:          user.Email,
		Avatar:         user.Avatar,
		ProfileURL:     user.ProfileURL,
		ExpiresIn:      user.ExpiresIn,
		ApprovedScopes: scopes,
	}
}

func writeUser(w http.ResponseWriter, _ *http.Request, driver string, user *socialite.User) {
	writeJSON(w, http.StatusOK, Response{Data: NewUserResponse(driver, user)})
}

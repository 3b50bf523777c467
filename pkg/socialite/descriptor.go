package socialite

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"golang.org/x/oauth2"
)

// Descriptor is the static, per-provider part of a provider: endpoints,
// default scopes and the user field mapping.
type Descriptor struct {
	Name           string
	Endpoint       oauth2.Endpoint
	UserInfoURL    string
	DefaultScopes  []string
	ScopeSeparator string
	Mapping        FieldMapping

	// Resolve fetches the raw user payload. Nil means FetchUserInfo.
	Resolve UserResolver
}

// Validate reports descriptors that cannot drive a flow.
func (d Descriptor) Validate() error {
	switch {
	case d.Name == "":
		return errors.Join(ErrInvalidConfig, errors.New("descriptor name is required"))
	case d.Endpoint.AuthURL == "" || d.Endpoint.TokenURL == "":
		return errors.Join(ErrInvalidConfig, errors.New("descriptor endpoints are required"))
	case d.UserInfoURL == "":
		return errors.Join(ErrInvalidConfig, errors.New("descriptor user info url is required"))
	}
	return nil
}

func (d Descriptor) resolver() UserResolver {
	if d.Resolve != nil {
		return d.Resolve
	}
	return FetchUserInfo
}

// UserRequest carries what a UserResolver needs to fetch a user.
type UserRequest struct {
	Client     *APIClient
	Logger     *slog.Logger
	Descriptor Descriptor
	Token      string
	Scopes     []string
}

// HasScope reports whether scope was requested.
func (r UserRequest) HasScope(scope string) bool {
	return slices.Contains(r.Scopes, scope)
}

// UserResolver returns the raw user payload for an access token. Failures
// of the primary call must be returned; failures of optional enrichment
// calls should be logged and skipped.
type UserResolver func(ctx context.Context, req UserRequest) (map[string]any, error)

// FetchUserInfo GETs the descriptor's user-info URL with a bearer token.
func FetchUserInfo(ctx context.Context, req UserRequest) (map[string]any, error) {
	var raw map[string]any
	if err := req.Client.GetJSON(ctx, req.Descriptor.UserInfoURL, BearerHeader(req.Token), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

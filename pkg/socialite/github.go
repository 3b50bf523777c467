package socialite

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2/github"

	"github.com/dmitrymomot/socialite/pkg/logger"
)

const (
	githubUserURL    = "https://api.github.com/user"
	githubEmailScope = "user:email"
	githubMediaType  = "application/vnd.github.v3+json"
)

// GitHubDescriptor describes GitHub's OAuth App flow. When the user:email
// scope is requested the primary verified address from /user/emails is
// added to the payload.
func GitHubDescriptor() Descriptor {
	return Descriptor{
		Name:           "github",
		Endpoint:       github.Endpoint,
		UserInfoURL:    githubUserURL,
		DefaultScopes:  []string{githubEmailScope},
		ScopeSeparator: " ",
		Mapping: FieldMapping{
			{Key: "id", Set: ToID},
			{Key: "login", Set: ToNickname},
			{Key: "name", Set: ToName},
			{Key: "email", Set: ToEmail},
			{Key: "avatar_url", Set: ToAvatar},
		},
		Resolve: resolveGitHubUser,
	}
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func githubHeader(token string) http.Header {
	h := BearerHeader(token)
	h.Set("Accept", githubMediaType)
	return h
}

func resolveGitHubUser(ctx context.Context, req UserRequest) (map[string]any, error) {
	var user map[string]any
	if err := req.Client.GetJSON(ctx, req.Descriptor.UserInfoURL, githubHeader(req.Token), &user); err != nil {
		return nil, err
	}
	if user == nil {
		user = map[string]any{}
	}

	if !req.HasScope(githubEmailScope) {
		return user, nil
	}

	email, err := fetchGitHubEmail(ctx, req)
	if err != nil {
		req.Logger.WarnContext(ctx, "github email lookup failed, continuing without email",
			logger.Provider(req.Descriptor.Name),
			logger.Component("socialite"),
			logger.Error(err),
		)
		return user, nil
	}
	if email != "" {
		user["email"] = email
	}
	return user, nil
}

// fetchGitHubEmail returns the address that is both primary and verified,
// or "" when there is none. A verified but non-primary address is never
// used.
func fetchGitHubEmail(ctx context.Context, req UserRequest) (string, error) {
	var emails []githubEmail
	if err := req.Client.GetJSON(ctx, req.Descriptor.UserInfoURL+"/emails", githubHeader(req.Token), &emails); err != nil {
		return "", fmt.Errorf("fetch github emails: %w", err)
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	return "", nil
}

package socialite

import (
	"fmt"
	"slices"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

// Token is the normalized result of a token endpoint call.
type Token struct {
	AccessToken    string
	RefreshToken   string // empty when the provider issued none
	ExpiresIn      int    // seconds, 0 when the provider did not say
	ApprovedScopes []string
}

// NewToken validates and builds a Token. The access token is required and
// ApprovedScopes is never nil.
func NewToken(accessToken, refreshToken string, expiresIn int, scopes []string) (*Token, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("%w: access token is empty", ErrInvalidArgument)
	}
	if scopes == nil {
		scopes = []string{}
	}
	return &Token{
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
		ExpiresIn:      expiresIn,
		ApprovedScopes: slices.Clone(scopes),
	}, nil
}

// OAuth2 converts the token into an *oauth2.Token so it can back an
// oauth2.TokenSource. Expiry is computed from now.
func (t *Token) OAuth2() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: t.RefreshToken,
	}
	if t.ExpiresIn > 0 {
		tok.Expiry = time.Now().Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return tok
}

// tokenResponse is a parsed token endpoint body.
type tokenResponse struct {
	body gjson.Result
}

func parseTokenResponse(body []byte) (tokenResponse, error) {
	if !gjson.ValidBytes(body) {
		return tokenResponse{}, fmt.Errorf("token response is not valid JSON")
	}
	res := gjson.ParseBytes(body)
	if !res.IsObject() {
		return tokenResponse{}, fmt.Errorf("token response is not a JSON object")
	}
	return tokenResponse{body: res}, nil
}

// accessToken returns ErrAccessTokenNotFound when the field is absent,
// null or empty.
func (r tokenResponse) accessToken() (string, error) {
	v := r.body.Get("access_token")
	if !v.Exists() || v.Type == gjson.Null || v.String() == "" {
		return "", ErrAccessTokenNotFound
	}
	return v.String(), nil
}

func (r tokenResponse) optionalString(field string) string {
	v := r.body.Get(field)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

// expiresIn is lenient: anything but a JSON integer counts as "not
// reported" and yields 0.
func (r tokenResponse) expiresIn() int {
	v := r.body.Get("expires_in")
	if v.Type != gjson.Number || v.Num != float64(int64(v.Num)) {
		return 0
	}
	return int(v.Int())
}

// token builds a Token from the response; fallbackRefresh is used when the
// provider omits refresh_token.
func (r tokenResponse) token(sep, fallbackRefresh string) (*Token, error) {
	access, err := r.accessToken()
	if err != nil {
		return nil, err
	}
	refresh := r.optionalString("refresh_token")
	if refresh == "" {
		refresh = fallbackRefresh
	}
	return NewToken(access, refresh, r.expiresIn(), splitScopes(r.optionalString("scope"), sep))
}

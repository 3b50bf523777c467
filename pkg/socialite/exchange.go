package socialite

import (
	"context"
	"errors"
	"fmt"
)

// exchangeCode trades an authorization code for a token.
func (p *OAuth2Provider) exchangeCode(ctx context.Context, code, verifier string) (*Token, error) {
	fields := map[string]string{
		"grant_type":    "authorization_code",
		"client_id":     p.clientID,
		"client_secret": p.clientSecret,
		"code":          code,
		"redirect_uri":  p.redirectURL,
	}
	if p.usesPKCE && verifier != "" {
		fields["code_verifier"] = verifier
	}
	fields = mergeParams(fields, p.params)

	resp, err := p.postToken(ctx, fields)
	if err != nil {
		return nil, err
	}
	return resp.token(p.separator, "")
}

// RefreshToken implements Provider. Custom parameters are not sent; when
// the provider omits refresh_token the one passed in is kept.
func (p *OAuth2Provider) RefreshToken(ctx context.Context, refreshToken string) (*Token, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token is empty", ErrInvalidArgument)
	}

	resp, err := p.postToken(ctx, map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": refreshToken,
		"client_id":     p.clientID,
		"client_secret": p.clientSecret,
	})
	if err != nil {
		return nil, err
	}
	return resp.token(p.separator, refreshToken)
}

// postToken calls the token endpoint. Transport failures, non-2xx
// responses, cancellation and unparseable bodies all surface as
// ErrTokenExchange.
func (p *OAuth2Provider) postToken(ctx context.Context, fields map[string]string) (tokenResponse, error) {
	body, err := p.client.PostForm(ctx, p.desc.Endpoint.TokenURL, fields)
	if err != nil {
		return tokenResponse{}, errors.Join(ErrTokenExchange, err)
	}
	resp, err := parseTokenResponse(body)
	if err != nil {
		return tokenResponse{}, errors.Join(ErrTokenExchange, err)
	}
	return resp, nil
}

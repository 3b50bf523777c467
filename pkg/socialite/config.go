package socialite

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

// ProviderConfig is the caller-supplied configuration a provider is built
// from. It is copied on construction; later changes have no effect on an
// existing provider.
type ProviderConfig struct {
	ClientID     string `env:"CLIENT_ID" yaml:"client_id"`
	ClientSecret string `env:"CLIENT_SECRET" yaml:"client_secret"`
	RedirectURL  string `env:"REDIRECT_URL" yaml:"redirect_url"`

	// Scopes replace the provider defaults when non-empty. Order is kept.
	Scopes []string `env:"SCOPES" envSeparator:"," yaml:"scopes"`
	// ScopeSeparator overrides the provider default when non-empty.
	ScopeSeparator string `env:"SCOPE_SEPARATOR" yaml:"scope_separator"`
	// Parameters are added to the authorization and code exchange requests.
	Parameters map[string]string `env:"PARAMETERS" yaml:"parameters"`

	Stateless bool `env:"STATELESS" yaml:"stateless"`
	UsesPKCE  bool `env:"PKCE" yaml:"pkce"`
}

// Validate checks the required fields.
func (c ProviderConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.ClientID) == "" {
		errs = append(errs, errors.New("client id is required"))
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		errs = append(errs, errors.New("client secret is required"))
	}
	if strings.TrimSpace(c.RedirectURL) == "" {
		errs = append(errs, errors.New("redirect url is required"))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

func (c ProviderConfig) clone() ProviderConfig {
	c.Scopes = slices.Clone(c.Scopes)
	c.Parameters = maps.Clone(c.Parameters)
	return c
}

package socialite

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

const stateBytes = 16

// GenerateState returns an unpredictable 128-bit anti-CSRF token as
// lowercase hex.
func GenerateState() (string, error) {
	b := make([]byte, stateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hasInvalidState compares the state stored at redirect time against the
// one returned on the callback.
//
// In stateless mode no check is performed at all. That disables CSRF
// protection for the flow and is only meant for deployments that cannot
// share session storage between the redirect and the callback.
func (p *OAuth2Provider) hasInvalidState(ctx context.Context, sess Session, queryState string) (bool, error) {
	if p.stateless {
		return false, nil
	}
	if sess == nil {
		return true, nil
	}

	stored, ok, err := sess.Get(ctx, KeyState)
	if err != nil {
		return false, fmt.Errorf("read session state: %w", err)
	}
	if !ok || len(stored) == 0 || queryState == "" {
		return true, nil
	}

	return subtle.ConstantTimeCompare(stored, []byte(queryState)) != 1, nil
}

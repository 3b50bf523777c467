package socialite

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2"
)

// CodeChallengeMethod is the only PKCE method this package emits.
const CodeChallengeMethod = "S256"

const codeVerifierBytes = 64

// GenerateCodeVerifier returns a PKCE code verifier built from 64 random
// bytes, base64url-encoded without padding.
func GenerateCodeVerifier() (string, error) {
	b := make([]byte, codeVerifierBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate code verifier: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DeriveCodeChallenge returns the S256 challenge for verifier:
// base64url(SHA-256(verifier)) without padding.
func DeriveCodeChallenge(verifier string) string {
	return oauth2.S256ChallengeFromVerifier(verifier)
}

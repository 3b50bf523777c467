package socialite

import "context"

// SessionKey names a value the provider keeps in the caller's session
// between the redirect and the callback.
type SessionKey string

const (
	// KeyState holds the anti-CSRF state sent with the authorization request.
	KeyState SessionKey = "socialite:state"
	// KeyCodeVerifier holds the PKCE code verifier.
	KeyCodeVerifier SessionKey = "socialite:code_verifier"
)

// Session is the narrow view of the hosting application's session storage
// the provider needs. Values are UTF-8 text stored as raw bytes.
//
// Get reports ok=false when the key is absent; an error is reserved for
// backend failures.
type Session interface {
	Get(ctx context.Context, key SessionKey) (value []byte, ok bool, err error)
	Set(ctx context.Context, key SessionKey, value []byte) error
}

package socialite

import (
	"errors"
	"fmt"
)

// Top-level error kinds. Every error raised by this package matches
// exactly one of them with errors.Is; session errors are passed through.
var (
	ErrInvalidConfig     = errors.New("socialite: invalid provider config")
	ErrInvalidArgument   = errors.New("socialite: invalid argument")
	ErrInvalidState      = errors.New("socialite: invalid state")
	ErrAuthentication    = errors.New("socialite: authentication failed")
	ErrUnsupportedDriver = errors.New("socialite: unsupported driver")
)

// Authentication failures. These are the only errors that can occur after
// a network call was attempted, so callers may treat them as retryable.
var (
	ErrCodeNotFound        = fmt.Errorf("%w: authorization code not found in the request", ErrAuthentication)
	ErrAccessTokenNotFound = fmt.Errorf("%w: access token not found in the response", ErrAuthentication)
	ErrTokenExchange       = fmt.Errorf("%w: failed to get access token", ErrAuthentication)
	ErrUserResolution      = fmt.Errorf("%w: failed to retrieve user information", ErrAuthentication)
)

// Driver resolution failures.
var (
	ErrNoDriver            = fmt.Errorf("%w: no driver was specified", ErrUnsupportedDriver)
	ErrDriverNotSupported  = fmt.Errorf("%w: driver not registered", ErrUnsupportedDriver)
	ErrDriverResolution    = fmt.Errorf("%w: could not construct driver", ErrUnsupportedDriver)
	ErrUnsupportedProvider = fmt.Errorf("%w: unknown provider kind", ErrUnsupportedDriver)
)

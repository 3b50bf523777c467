package authhttp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/socialite/pkg/sessionstore"
	"github.com/dmitrymomot/socialite/pkg/socialite"
)

// ErrProviderDenied is returned when the provider redirects back with an
// error instead of a code, e.g. when the user cancels the consent screen.
var ErrProviderDenied = errors.New("authhttp: provider returned an error")

// Response is the JSON envelope of every handler response.
type Response struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// StatusCode maps a socialite error kind to an HTTP status and a stable
// error code. Session cookies that cannot be decrypted count as an invalid
// state.
func StatusCode(err error) (int, string) {
	switch {
	case errors.Is(err, socialite.ErrInvalidState),
		errors.Is(err, sessionstore.ErrDecryptionFailed),
		errors.Is(err, sessionstore.ErrInvalidFormat):
		return http.StatusForbidden, "invalid_state"
	case errors.Is(err, ErrProviderDenied):
		return http.StatusUnauthorized, "access_denied"
	case errors.Is(err, socialite.ErrCodeNotFound):
		return http.StatusBadRequest, "code_not_found"
	case errors.Is(err, socialite.ErrAuthentication):
		return http.StatusUnauthorized, "authentication_failed"
	case errors.Is(err, socialite.ErrUnsupportedDriver):
		return http.StatusNotFound, "unsupported_driver"
	case errors.Is(err, socialite.ErrInvalidArgument):
		return http.StatusBadRequest, "bad_request"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// WriteError renders err as a JSON error response. Internal errors are
// reported without their message.
func WriteError(w http.ResponseWriter, err error) {
	status, code := StatusCode(err)
	detail := &ErrorDetail{Code: code}
	if status != http.StatusInternalServerError {
		detail.Message = err.Error()
	}
	writeJSON(w, status, Response{Error: detail})
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

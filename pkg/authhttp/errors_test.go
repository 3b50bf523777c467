package authhttp_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialite/pkg/authhttp"
	"github.com/dmitrymomot/socialite/pkg/sessionstore"
	"github.com/dmitrymomot/socialite/pkg/socialite"
)

func TestStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err    error
		status int
		code   string
	}{
		{err: socialite.ErrInvalidState, status: http.StatusForbidden, code: "invalid_state"},
		{err: fmt.Errorf("read session state: %w", sessionstore.ErrDecryptionFailed), status: http.StatusForbidden, code: "invalid_state"},
		{err: sessionstore.ErrInvalidFormat, status: http.StatusForbidden, code: "invalid_state"},
		{err: socialite.ErrCodeNotFound, status: http.StatusBadRequest, code: "code_not_found"},
		{err: errors.Join(socialite.ErrTokenExchange, errors.New("eof")), status: http.StatusUnauthorized, code: "authentication_failed"},
		{err: socialite.ErrUserResolution, status: http.StatusUnauthorized, code: "authentication_failed"},
		{err: fmt.Errorf("%w: %q", socialite.ErrDriverNotSupported, "x"), status: http.StatusNotFound, code: "unsupported_driver"},
		{err: socialite.ErrNoDriver, status: http.StatusNotFound, code: "unsupported_driver"},
		{err: socialite.ErrInvalidArgument, status: http.StatusBadRequest, code: "bad_request"},
		{err: authhttp.ErrProviderDenied, status: http.StatusUnauthorized, code: "access_denied"},
		{err: errors.New("boom"), status: http.StatusInternalServerError, code: "internal_error"},
	}

	for _, tt := range tests {
		status, code := authhttp.StatusCode(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, code, tt.err.Error())
	}
}

func TestWriteError_HidesInternalMessages(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	authhttp.WriteError(rec, errors.New("redis: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body authhttp.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "internal_error", body.Error.Code)
	assert.Empty(t, body.Error.Message)
}

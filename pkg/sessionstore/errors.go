package sessionstore

import "errors"

var (
	ErrEmptySessionID = errors.New("sessionstore.empty_session_id")
	ErrStoreClosed    = errors.New("sessionstore.closed")

	ErrNoSecret         = errors.New("sessionstore.no_secret")
	ErrSecretTooShort   = errors.New("sessionstore.secret_too_short")
	ErrInvalidFormat    = errors.New("sessionstore.invalid_format")
	ErrDecryptionFailed = errors.New("sessionstore.decryption_failed")

	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
)

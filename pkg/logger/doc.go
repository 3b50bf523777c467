// Package logger builds the slog.Logger used by socialite services and
// provides attribute helpers so the same keys are used everywhere.
//
//	log := logger.New(
//		logger.WithEnvironment("development", "auth-web"),
//		logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	log.WarnContext(ctx, "github email lookup failed",
//		logger.Provider("github"),
//		logger.Error(err),
//	)
//
// New defaults to JSON at INFO level on stdout. Attribute helpers return an
// empty slog.Attr for nil input, which slog drops, so callers do not need
// nil checks.
package logger

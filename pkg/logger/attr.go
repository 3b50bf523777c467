package logger

import "log/slog"

// Error records err under "error". A nil err yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Provider records the identity provider name under "provider".
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

// Driver records the manager driver name under "driver".
func Driver(name string) slog.Attr {
	return slog.String("driver", name)
}

// Component records the emitting component under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// UserID records the provider subject under "user_id". A nil id yields an
// empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// RequestID records the request id under "request_id". A nil id yields an
// empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Duration records d under "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

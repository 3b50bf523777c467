package sessionstore

import (
	"context"

	"github.com/dmitrymomot/socialite/pkg/socialite"
)

// Store keeps per-session key/value pairs on the server side.
type Store interface {
	// Load returns the value of key in session sid. A missing session or
	// key is reported with ok == false and no error.
	Load(ctx context.Context, sid, key string) (value []byte, ok bool, err error)
	// Save writes key in session sid, creating the session if needed.
	Save(ctx context.Context, sid, key string, value []byte) error
	// Delete drops the given keys of session sid, or the whole session
	// when no keys are given.
	Delete(ctx context.Context, sid string, keys ...string) error
}

// Clearer is implemented by sessions that can forget values once they
// have been used.
type Clearer interface {
	Clear(ctx context.Context, keys ...socialite.SessionKey) error
}

// Bind returns a socialite.Session that reads and writes session sid of
// store.
func Bind(store Store, sid string) socialite.Session {
	return &boundSession{store: store, sid: sid}
}

var _ Clearer = (*boundSession)(nil)

type boundSession struct {
	store Store
	sid   string
}

func (s *boundSession) Get(ctx context.Context, key socialite.SessionKey) ([]byte, bool, error) {
	if s.sid == "" {
		return nil, false, ErrEmptySessionID
	}
	return s.store.Load(ctx, s.sid, string(key))
}

func (s *boundSession) Set(ctx context.Context, key socialite.SessionKey, value []byte) error {
	if s.sid == "" {
		return ErrEmptySessionID
	}
	return s.store.Save(ctx, s.sid, string(key), value)
}

// Clear removes keys from the bound session.
func (s *boundSession) Clear(ctx context.Context, keys ...socialite.SessionKey) error {
	if s.sid == "" {
		return ErrEmptySessionID
	}
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	return s.store.Delete(ctx, s.sid, names...)
}

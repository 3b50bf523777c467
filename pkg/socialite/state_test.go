package socialite_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialite/pkg/socialite"
)

func TestGenerateState(t *testing.T) {
	t.Parallel()

	s, err := socialite.GenerateState()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), s)

	other, err := socialite.GenerateState()
	require.NoError(t, err)
	assert.NotEqual(t, s, other)
}

func TestStateValidation(t *testing.T) {
	t.Parallel()

	idp := newFakeIdP(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		stateless bool
		// stored is written to the session after Redirect; nil keeps what
		// Redirect stored.
		stored     *string
		queryState func(stored string) string
		wantErr    error
	}{
		{
			name:       "matching state",
			queryState: func(s string) string { return s },
		},
		{
			name:       "mismatched state",
			queryState: func(string) string { return "forged" },
			wantErr:    socialite.ErrInvalidState,
		},
		{
			name:       "missing query state",
			queryState: func(string) string { return "" },
			wantErr:    socialite.ErrInvalidState,
		},
		{
			name:       "empty stored state",
			stored:     new(string),
			queryState: func(string) string { return "" },
			wantErr:    socialite.ErrInvalidState,
		},
		{
			name:       "stateless accepts anything",
			stateless:  true,
			queryState: func(string) string { return "whatever" },
		},
		{
			name:       "stateless accepts absent state",
			stateless:  true,
			queryState: func(string) string { return "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p socialite.Provider = newProvider(t, idp.google())
			if tt.stateless {
				p = p.Stateless()
			}

			sess := newMemSession()
			_, err := p.Redirect(ctx, sess)
			require.NoError(t, err)
			if tt.stored != nil {
				require.NoError(t, sess.Set(ctx, socialite.KeyState, []byte(*tt.stored)))
			}

			before := idp.tokenCalls.Load()
			user, err := p.User(ctx, sess, callback("code", tt.queryState(sess.value(socialite.KeyState))))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Equal(t, before, idp.tokenCalls.Load(), "no token call on invalid state")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "42", user.ID)
		})
	}
}

func TestStateValidation_NoStoredState(t *testing.T) {
	t.Parallel()

	idp := newFakeIdP(t)
	p := newProvider(t, idp.google())

	_, err := p.User(context.Background(), newMemSession(), callback("code", "abc"))
	require.ErrorIs(t, err, socialite.ErrInvalidState)
	assert.Zero(t, idp.tokenCalls.Load())
}

func TestStateValidation_SessionError(t *testing.T) {
	t.Parallel()

	idp := newFakeIdP(t)
	p := newProvider(t, idp.google())
	boom := errors.New("store unavailable")

	sess := new(MockSession)
	sess.On("Get", mock.Anything, socialite.KeyState).Return(nil, false, boom)

	_, err := p.User(context.Background(), sess, callback("code", "abc"))
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, socialite.ErrInvalidState)
	assert.Zero(t, idp.tokenCalls.Load())
	sess.AssertExpectations(t)
}

package socialite_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/socialite/pkg/socialite"
)

// memSession is a map-backed socialite.Session.
type memSession struct {
	mu     sync.Mutex
	values map[socialite.SessionKey][]byte
}

func newMemSession() *memSession {
	return &memSession{values: make(map[socialite.SessionKey][]byte)}
}

func (s *memSession) Get(_ context.Context, key socialite.SessionKey) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memSession) Set(_ context.Context, key socialite.SessionKey, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *memSession) value(key socialite.SessionKey) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.values[key])
}

// MockSession is a mock implementation of socialite.Session.
type MockSession struct {
	mock.Mock
}

func (m *MockSession) Get(ctx context.Context, key socialite.SessionKey) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockSession) Set(ctx context.Context, key socialite.SessionKey, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// fakeIdP is an httptest identity provider with a token endpoint and a
// user-info endpoint.
type fakeIdP struct {
	srv *httptest.Server

	mu            sync.Mutex
	tokenStatus   int
	tokenBody     string
	userStatus    int
	userBody      string
	emailsStatus  int
	emailsBody    string
	tokenForms    []url.Values
	userAuthz     []string
	userAccepts   []string
	tokenCalls    atomic.Int32
	userCalls     atomic.Int32
	emailsCalls   atomic.Int32
	userAgentSeen string
}

func newFakeIdP(t *testing.T) *fakeIdP {
	t.Helper()

	f := &fakeIdP{
		tokenStatus:  http.StatusOK,
		tokenBody:    `{"access_token":"tok","expires_in":3600}`,
		userStatus:   http.StatusOK,
		userBody:     `{"sub":"42","name":"Ann","email":"a@b.c"}`,
		emailsStatus: http.StatusOK,
		emailsBody:   `[]`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		require.NoError(t, r.ParseForm())

		f.mu.Lock()
		f.tokenForms = append(f.tokenForms, r.PostForm)
		f.userAgentSeen = r.UserAgent()
		status, body := f.tokenStatus, f.tokenBody
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		f.userCalls.Add(1)

		f.mu.Lock()
		f.userAuthz = append(f.userAuthz, r.Header.Get("Authorization"))
		f.userAccepts = append(f.userAccepts, r.Header.Get("Accept"))
		status, body := f.userStatus, f.userBody
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	mux.HandleFunc("GET /user/emails", func(w http.ResponseWriter, r *http.Request) {
		f.emailsCalls.Add(1)

		f.mu.Lock()
		status, body := f.emailsStatus, f.emailsBody
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeIdP) setToken(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenStatus, f.tokenBody = status, body
}

func (f *fakeIdP) setUser(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userStatus, f.userBody = status, body
}

func (f *fakeIdP) setEmails(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emailsStatus, f.emailsBody = status, body
}

func (f *fakeIdP) lastTokenForm(t *testing.T) url.Values {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.tokenForms, "token endpoint was not called")
	return f.tokenForms[len(f.tokenForms)-1]
}

func (f *fakeIdP) authorizations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.userAuthz)
}

func (f *fakeIdP) accepts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.userAccepts)
}

func (f *fakeIdP) userAgent() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userAgentSeen
}

func (f *fakeIdP) authURL() string { return f.srv.URL + "/authorize" }

// google returns the Google descriptor pointed at the fake server.
func (f *fakeIdP) google() socialite.Descriptor {
	d := socialite.GoogleDescriptor()
	d.Endpoint = oauth2.Endpoint{AuthURL: f.authURL(), TokenURL: f.srv.URL + "/token"}
	d.UserInfoURL = f.srv.URL + "/user"
	return d
}

// github returns the GitHub descriptor pointed at the fake server.
func (f *fakeIdP) github() socialite.Descriptor {
	d := socialite.GitHubDescriptor()
	d.Endpoint = oauth2.Endpoint{AuthURL: f.authURL(), TokenURL: f.srv.URL + "/token"}
	d.UserInfoURL = f.srv.URL + "/user"
	return d
}

func testConfig() socialite.ProviderConfig {
	return socialite.ProviderConfig{
		ClientID:     "cid",
		ClientSecret: "secret",
		RedirectURL:  "https://app/cb",
	}
}

func newProvider(t *testing.T, desc socialite.Descriptor, opts ...socialite.Option) *socialite.OAuth2Provider {
	t.Helper()
	p, err := socialite.New(desc, testConfig(), opts...)
	require.NoError(t, err)
	return p
}

// parseRedirect splits an authorization URL into its base and query.
func parseRedirect(t *testing.T, raw string) (string, url.Values) {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	base := u.Scheme + "://" + u.Host + u.Path
	return base, u.Query()
}

// callback builds the query a provider would send back.
func callback(code, state string) url.Values {
	q := url.Values{}
	if code != "" {
		q.Set("code", code)
	}
	if state != "" {
		q.Set("state", state)
	}
	return q
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

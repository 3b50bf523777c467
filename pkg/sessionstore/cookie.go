package sessionstore

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"sync"

	"golang.org/x/crypto/hkdf"

	"github.com/dmitrymomot/socialite/pkg/socialite"
)

const (
	minSecretLength = 32
	keyInfo         = "socialite cookie session v1"
)

// CookieOptions are the attributes of every cookie a CookieCodec writes.
type CookieOptions struct {
	Prefix   string
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

// CookieOption configures a CookieCodec.
type CookieOption func(*CookieOptions)

// WithCookiePrefix sets the prefix of every cookie name.
func WithCookiePrefix(prefix string) CookieOption {
	return func(o *CookieOptions) {
		o.Prefix = prefix
	}
}

func WithCookiePath(path string) CookieOption {
	return func(o *CookieOptions) {
		o.Path = path
	}
}

func WithCookieDomain(domain string) CookieOption {
	return func(o *CookieOptions) {
		o.Domain = domain
	}
}

// WithCookieMaxAge sets the cookie lifetime in seconds.
func WithCookieMaxAge(seconds int) CookieOption {
	return func(o *CookieOptions) {
		o.MaxAge = seconds
	}
}

func WithCookieSecure(secure bool) CookieOption {
	return func(o *CookieOptions) {
		o.Secure = secure
	}
}

// WithCookieSameSite sets the SameSite attribute. Strict mode drops the
// cookies on the provider's redirect back, so Lax is the default.
func WithCookieSameSite(sameSite http.SameSite) CookieOption {
	return func(o *CookieOptions) {
		o.SameSite = sameSite
	}
}

// CookieCodec seals session values into encrypted cookies.
//
// The first secret encrypts; all secrets are tried on decryption so old
// cookies stay readable while a secret is rotated out.
type CookieCodec struct {
	aeads []cipher.AEAD
	opts  CookieOptions
}

// NewCookieCodec derives one AES-256-GCM key per secret with HKDF-SHA256.
// Secrets must be at least 32 characters; empty entries are ignored.
func NewCookieCodec(secrets []string, opts ...CookieOption) (*CookieCodec, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	c := &CookieCodec{
		opts: CookieOptions{
			Path:     "/",
			MaxAge:   600,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
	for _, opt := range opts {
		opt(&c.opts)
	}

	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		aead, err := newAEAD(s)
		if err != nil {
			return nil, err
		}
		c.aeads = append(c.aeads, aead)
	}
	return c, nil
}

func newAEAD(secret string) (cipher.AEAD, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive cookie key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// CookieName returns the cookie that holds key. Characters that are not
// valid in cookie names are replaced with '_'.
func (c *CookieCodec) CookieName(key socialite.SessionKey) string {
	return c.opts.Prefix + strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, string(key))
}

// Session binds the codec to one request and its response.
func (c *CookieCodec) Session(w http.ResponseWriter, r *http.Request) *CookieSession {
	return &CookieSession{codec: c, w: w, r: r, written: make(map[string][]byte)}
}

// seal encrypts value with the current key. The cookie name is used as
// additional data, so a value cannot be replayed under another name.
func (c *CookieCodec) seal(name string, value []byte) (string, error) {
	aead := c.aeads[0]
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, value, []byte(name))
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (c *CookieCodec) open(name, encoded string) ([]byte, error) {
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	for _, aead := range c.aeads {
		if len(data) < aead.NonceSize()+aead.Overhead() {
			return nil, ErrInvalidFormat
		}
		nonce, ciphertext := data[:aead.NonceSize()], data[aead.NonceSize():]
		if plain, err := aead.Open(nil, nonce, ciphertext, []byte(name)); err == nil {
			return plain, nil
		}
	}
	return nil, ErrDecryptionFailed
}

// CookieSession is a socialite.Session backed by encrypted cookies of a
// single request. Values written through Set are visible to later Get calls
// on the same instance.
type CookieSession struct {
	codec *CookieCodec
	w     http.ResponseWriter
	r     *http.Request

	mu      sync.Mutex
	written map[string][]byte
}

var (
	_ socialite.Session = (*CookieSession)(nil)
	_ Clearer           = (*CookieSession)(nil)
)

// Get implements socialite.Session. A missing cookie is reported with
// ok == false; a cookie that fails to decrypt is an error.
func (s *CookieSession) Get(_ context.Context, key socialite.SessionKey) ([]byte, bool, error) {
	name := s.codec.CookieName(key)

	s.mu.Lock()
	v, ok := s.written[name]
	s.mu.Unlock()
	if ok {
		return slices.Clone(v), v != nil, nil
	}

	if s.r == nil {
		return nil, false, nil
	}
	cookie, err := s.r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	plain, err := s.codec.open(name, cookie.Value)
	if err != nil {
		return nil, false, err
	}
	return plain, true, nil
}

// Set implements socialite.Session.
func (s *CookieSession) Set(_ context.Context, key socialite.SessionKey, value []byte) error {
	name := s.codec.CookieName(key)
	sealed, err := s.codec.seal(name, value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.written[name] = slices.Clone(value)
	s.mu.Unlock()

	http.SetCookie(s.w, s.codec.cookie(name, sealed, s.codec.opts.MaxAge))
	return nil
}

// Clear expires the cookies of the given keys.
func (s *CookieSession) Clear(_ context.Context, keys ...socialite.SessionKey) error {
	for _, key := range keys {
		name := s.codec.CookieName(key)

		s.mu.Lock()
		s.written[name] = nil
		s.mu.Unlock()

		http.SetCookie(s.w, s.codec.cookie(name, "", -1))
	}
	return nil
}

func (c *CookieCodec) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     c.opts.Path,
		Domain:   c.opts.Domain,
		MaxAge:   maxAge,
		Secure:   c.opts.Secure,
		HttpOnly: c.opts.HttpOnly,
		SameSite: c.opts.SameSite,
	}
}

package socialite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodySize    = 1 << 20
	userAgent      = "socialite-go"
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError reports a non-2xx response from a provider endpoint.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.StatusCode)
}

// APIClient performs the provider calls: form POSTs to the token endpoint
// and authenticated GETs to user-info endpoints. It does not retry.
type APIClient struct {
	doer Doer
}

// NewAPIClient wraps d. A nil d gets a pooled client with a 10s timeout.
func NewAPIClient(d Doer) *APIClient {
	if d == nil {
		c := cleanhttp.DefaultPooledClient()
		c.Timeout = defaultTimeout
		d = c
	}
	return &APIClient{doer: d}
}

// PostForm sends fields form-urlencoded and returns the body of a 2xx
// response.
func (c *APIClient) PostForm(ctx context.Context, endpoint string, fields map[string]string) ([]byte, error) {
	form := make(url.Values, len(fields))
	for k, v := range fields {
		form.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	return c.do(req)
}

// GetJSON issues a GET with the given headers and decodes the JSON body
// into out. Numbers are decoded as json.Number.
func (c *APIClient) GetJSON(ctx context.Context, endpoint string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	for k, vs := range header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	body, err := c.do(req)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}

func (c *APIClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: req.URL.String(), StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// BearerHeader returns an Authorization header for an access token.
func BearerHeader(token string) http.Header {
	h := make(http.Header)
	h.Set("Authorization", "Bearer "+token)
	return h
}

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/shopfront/shopfront-go/internal/errors"
	"golang.org/x/net/publicsuffix"
)

// ClientOptions bundles dependencies for NewClient.
type ClientOptions struct {
	// BaseURL is the backend root, e.g. "https://shop.example.com/api/v1".
	BaseURL string

	// Transport is the intercepting RoundTripper. Required so that no
	// call can bypass the gateway.
	Transport *Transport

	// Timeout is the outer request deadline. Defaults to 30s.
	Timeout time.Duration
}

// Client is a JSON-over-HTTP convenience layer on top of the
// intercepted http.Client. Every failing call comes back as an
// *errors.AppError; side effects already happened in the Transport.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient builds a Client around the gateway transport. The
// underlying http.Client carries a public-suffix-aware cookie jar so
// backend-set cookies behave as they would in a browser.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.Transport == nil {
		return nil, errors.New("Transport is required")
	}
	base, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("build cookie jar: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		base: base,
		http: &http.Client{
			Transport: opts.Transport,
			Jar:       jar,
			Timeout:   timeout,
		},
	}, nil
}

// HTTPClient exposes the intercepted http.Client for collaborators
// that drive their own exchanges (e.g. the oauth2 login flow). All
// traffic through it still passes the gateway transport.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// Resolve joins a request path onto the base URL.
func (c *Client) Resolve(path string) string {
	return c.base.String() + "/" + strings.TrimPrefix(path, "/")
}

// Get issues a GET and decodes a JSON response into out (out may be nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// PostForm issues a POST with a URL-encoded form body.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Resolve(path),
		strings.NewReader(form.Encode()))
	if err != nil {
		return apperrors.Unknown("build request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.send(req, out)
}

// PostQuery issues a POST with no body and the given query string.
// Some admin action endpoints take their arguments this way.
func (c *Client) PostQuery(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodPost, path, query, nil, out)
}

// Do issues a request with an optional JSON body and query string and
// decodes a JSON response into out.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.Unknown("encode request body", err)
		}
		reader = bytes.NewReader(encoded)
	}

	target := c.Resolve(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return apperrors.Unknown("build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Network(err)
	}
	defer resp.Body.Close() //nolint:errcheck // Best-effort close on a fully read body.

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Unknown("read response body", err)
	}

	if resp.StatusCode >= 400 {
		return apperrors.FromResponse(resp.StatusCode, payload)
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return apperrors.Unknown("decode response body", err)
	}
	return nil
}

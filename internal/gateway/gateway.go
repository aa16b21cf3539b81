// Package gateway dispatches HTTP requests to the task service, attaching
// the active bearer token to every outbound call.
package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/oauth2"

	"tada/internal/service"
)

// Gateway is a thin request-dispatch layer. It holds the current token
// reference supplied by the session and passes responses back to the
// caller unchanged. It never retries, caches, or reorders requests.
type Gateway struct {
	base   *url.URL
	client *http.Client

	mu     sync.RWMutex
	source oauth2.TokenSource
}

// New creates a Gateway for the given server base URL.
func New(serverURL string) (*Gateway, error) {
	base, err := url.Parse(strings.TrimRight(serverURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", serverURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q: missing scheme or host", serverURL)
	}
	return &Gateway{
		base:   base,
		client: &http.Client{},
	}, nil
}

// UseToken configures all subsequent requests to carry the token as a
// bearer credential. A new token fully replaces the old one.
func (g *Gateway) UseToken(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.source = oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})
}

// ClearToken removes the auth configuration. Subsequent requests are sent
// unauthenticated.
func (g *Gateway) ClearToken() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.source = nil
}

// HasToken reports whether the gateway currently carries a token.
func (g *Gateway) HasToken() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.source != nil
}

// Do sends a single request and returns the response unchanged. The caller
// owns the response body. A nil response with a wrapped
// service.ErrTransport means no response was received.
func (g *Gateway) Do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	u := *g.base
	u.Path = strings.TrimRight(u.Path, "/") + path

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	g.mu.RLock()
	source := g.source
	g.mu.RUnlock()
	if source != nil {
		tok, err := source.Token()
		if err != nil {
			return nil, fmt.Errorf("reading token: %w", err)
		}
		tok.SetAuthHeader(req)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrTransport, err)
	}
	return resp, nil
}

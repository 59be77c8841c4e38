package xhttp

import (
	"fmt"
	"net/http"
	"time"

	"github.com/garrettladley/commish/internal/version"
)

type commishTransport struct {
	base      http.RoundTripper
	sessionID string
}

var _ http.RoundTripper = (*commishTransport)(nil)

func (t *commishTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set(UserAgent, version.UserAgent())
	req.Header.Set(version.Header, version.Get())
	if t.sessionID != "" {
		SetRequestHeaderSessionID(req, t.sessionID)
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

type TransportOption func(*commishTransport)

func WithSessionID(sessionID string) TransportOption {
	return func(t *commishTransport) { t.sessionID = sessionID }
}

func WithBase(base http.RoundTripper) TransportOption {
	return func(t *commishTransport) { t.base = base }
}

// NewTransport returns an http.RoundTripper with standard commish headers.
func NewTransport(opts ...TransportOption) http.RoundTripper {
	t := &commishTransport{base: http.DefaultTransport}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

const DefaultTimeout = 30 * time.Second

type ClientOption func(*http.Client)

func WithTimeout(d time.Duration) ClientOption {
	return func(c *http.Client) { c.Timeout = d }
}

func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *http.Client) { c.Transport = rt }
}

// NewHTTPClient returns a client using NewTransport and DefaultTimeout unless
// overridden.
func NewHTTPClient(opts ...ClientOption) *http.Client {
	c := &http.Client{Transport: NewTransport(), Timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

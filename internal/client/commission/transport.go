package commission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/garrettladley/commish/internal/tokenstore"
	"github.com/garrettladley/commish/internal/xhttp"
	"github.com/garrettladley/commish/internal/xslog"
)

type extraHeadersKey struct{}

func withExtraHeaders(ctx context.Context, h http.Header) context.Context {
	return context.WithValue(ctx, extraHeadersKey{}, h)
}

func extraHeaders(ctx context.Context) http.Header {
	h, _ := ctx.Value(extraHeadersKey{}).(http.Header)
	return h
}

// bearerTransport attaches the active slot's token to each request. With both
// slots empty the request goes out without Authorization.
type bearerTransport struct {
	base     http.RoundTripper
	store    tokenstore.Store
	priority []tokenstore.Owner
	logger   *slog.Logger
}

var _ http.RoundTripper = (*bearerTransport)(nil)

// RoundTrip closes req.Body on every path, as http.RoundTripper requires.
func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	owner, token, err := tokenstore.Resolve(ctx, t.store, t.priority)
	switch {
	case err == nil:
	case errors.Is(err, tokenstore.ErrNoToken):
	default:
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, fmt.Errorf("resolving token: %w", err)
	}

	req = req.Clone(ctx)
	if token != nil {
		xhttp.SetRequestHeaderBearer(req, token.AccessToken)
		xslog.FromContext(ctx, t.logger).DebugContext(ctx, "attached bearer token", xslog.Owner(owner.String()))
	}

	if extra := extraHeaders(ctx); len(extra) > 0 {
		xhttp.MergeHeader(req, extra)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}
	return resp, nil
}

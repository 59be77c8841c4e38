package commission

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/commish/internal/config"
	"github.com/garrettladley/commish/internal/tokenstore"
	"github.com/garrettladley/commish/internal/xhttp"
	"github.com/garrettladley/commish/internal/xslog"
)

type Client struct {
	Auth        AuthService
	Profile     ProfileService
	Clients     ClientService
	Sales       SaleService
	Withdrawals WithdrawalService
	Statements  StatementService
	Consultants ConsultantService
	Metas       MetaService
	Dashboard   DashboardService

	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func New(store tokenstore.Store, opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL:  config.DefaultAPIURL,
		priority: tokenstore.DefaultPriority,
		logger:   slog.Default(),
		timeout:  xhttp.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	transport := &bearerTransport{
		base:     xhttp.NewTransport(xhttp.WithSessionID(cfg.sessionID)),
		store:    store,
		priority: cfg.priority,
		logger:   cfg.logger,
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.baseURL, "/"),
		apiKey:     cfg.apiKey,
		httpClient: xhttp.NewHTTPClient(xhttp.WithTransport(transport), xhttp.WithTimeout(cfg.timeout)),
		logger:     cfg.logger,
	}

	c.Auth = &authService{client: c}
	c.Profile = &profileService{client: c}
	c.Clients = &clientService{client: c}
	c.Sales = &saleService{client: c}
	c.Withdrawals = &withdrawalService{client: c}
	c.Statements = &statementService{client: c}
	c.Consultants = &consultantService{client: c}
	c.Metas = &metaService{client: c}
	c.Dashboard = &dashboardService{client: c}

	return c
}

type clientConfig struct {
	baseURL   string
	apiKey    string
	sessionID string
	priority  []tokenstore.Owner
	logger    *slog.Logger
	timeout   time.Duration
}

type Option func(*clientConfig)

func WithBaseURL(baseURL string) Option {
	return func(cfg *clientConfig) { cfg.baseURL = baseURL }
}

// WithAPIKey sets the static key sent on admin reads of consultant-scoped data.
func WithAPIKey(apiKey string) Option {
	return func(cfg *clientConfig) { cfg.apiKey = apiKey }
}

func WithSessionID(sessionID string) Option {
	return func(cfg *clientConfig) { cfg.sessionID = sessionID }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = logger }
}

func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.timeout = d }
}

// WithPriority overrides the slot order used to pick the bearer token.
func WithPriority(priority ...tokenstore.Owner) Option {
	return func(cfg *clientConfig) { cfg.priority = priority }
}

// Request sends one request through the bearer pipeline. extra is applied
// after the bearer token, so it may add headers or replace Authorization.
// HTTP status >= 400 is returned as *APIError; the response body is then closed.
func (c *Client) Request(ctx context.Context, method string, path string, body any, extra http.Header) (*http.Response, error) {
	return c.request(ctx, method, path, nil, body, extra)
}

func (c *Client) request(ctx context.Context, method string, path string, query url.Values, body any, extra http.Header) (*http.Response, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := go_json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	if len(extra) > 0 {
		ctx = withExtraHeaders(ctx, extra)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	xhttp.SetRequestHeaderAcceptJSON(req)
	if body != nil {
		xhttp.SetRequestHeaderContentTypeJSON(req)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	xslog.FromContext(ctx, c.logger).DebugContext(ctx, "request completed",
		xslog.Method(method),
		xslog.Path(path),
		xslog.HTTPStatus(resp.StatusCode),
		xslog.Duration(time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		defer func() { _ = resp.Body.Close() }()
		return nil, parseAPIError(resp)
	}

	return resp, nil
}

func (c *Client) do(ctx context.Context, method string, path string, query url.Values, body any, result any, extra http.Header) error {
	resp, err := c.request(ctx, method, path, query, body, extra)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := go_json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("decoding response: %w\nbody: %s", err, string(data))
	}
	return nil
}

// privileged returns the header set that lets an admin read consultant data.
func (c *Client) privileged() http.Header {
	if c.apiKey == "" {
		return nil
	}
	h := make(http.Header)
	h.Set(xhttp.XAPIKey, c.apiKey)
	return h
}

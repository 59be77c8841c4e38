package hub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"golang.org/x/oauth2"

	"github.com/garrettladley/commish/internal/version"
	"github.com/garrettladley/commish/internal/xhttp"
	"github.com/garrettladley/commish/internal/xslog"
)

const (
	DefaultRetryDelay   = 5 * time.Second
	DefaultPingInterval = 15 * time.Second

	handshakeTimeout = 10 * time.Second
	writeTimeout     = 10 * time.Second
)

var (
	ErrNoCredential = errors.New("hub: no credential")
	ErrNotConnected = errors.New("hub: not connected")
)

type State int

const (
	Disconnected State = iota
	Connecting
	Connected
	Reconnecting
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Reconnecting:
		return "reconnecting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// closeError is returned by serve when the server sends a close record.
type closeError struct {
	reason         string
	allowReconnect bool
}

func (e *closeError) Error() string {
	if e.reason != "" {
		return "server closed connection: " + e.reason
	}
	return "server closed connection"
}

// Handler receives the raw arguments of one server invocation. Handlers run on
// the connection's read goroutine and must not block.
type Handler func(args []go_json.RawMessage)

type Client struct {
	url        string
	tokens     oauth2.TokenSource
	dialer     *websocket.Dialer
	sessionID  string
	retryDelay time.Duration
	pingEvery  time.Duration
	logger     *slog.Logger

	mu       sync.Mutex
	state    State
	conn     *websocket.Conn
	stop     context.CancelFunc
	handlers map[string]Handler

	writeMu sync.Mutex
}

type Option func(*Client)

func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

func WithPingInterval(d time.Duration) Option {
	return func(c *Client) { c.pingEvery = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithSessionID(sessionID string) Option {
	return func(c *Client) { c.sessionID = sessionID }
}

func WithDialer(dialer *websocket.Dialer) Option {
	return func(c *Client) { c.dialer = dialer }
}

// New returns a disconnected client for hubURL. tokens is read on every
// connection attempt, so a re-login is picked up by the next reconnect.
func New(hubURL string, tokens oauth2.TokenSource, opts ...Option) *Client {
	c := &Client{
		url:    hubURL,
		tokens: tokens,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
		},
		retryDelay: DefaultRetryDelay,
		pingEvery:  DefaultPingInterval,
		logger:     slog.Default(),
		handlers:   make(map[string]Handler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect opens the connection unless one is already open or being opened.
// A failed attempt is retried after the retry delay, forever, until Close.
// The only errors returned are ErrNoCredential and ctx's error when ctx ends
// before the first attempt completes.
func (c *Client) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	if c.state != Disconnected {
		c.mu.Unlock()
		return nil
	}
	runCtx, stop := context.WithCancel(context.WithoutCancel(ctx))
	c.state = Connecting
	c.stop = stop
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "connecting to hub", xslog.State(Connecting.String()))

	dialCtx, cancelDial := context.WithCancel(runCtx)
	stopAfter := context.AfterFunc(ctx, cancelDial)
	l, err := c.dial(dialCtx)
	stopAfter()
	cancelDial()

	switch {
	case err == nil:
		if !c.install(runCtx, l.conn) {
			_ = l.conn.Close()
			return nil
		}
		go c.run(runCtx, l)
		return nil
	case runCtx.Err() != nil:
		// closed while dialing
		return nil
	case errors.Is(err, ErrNoCredential):
		c.abandon(runCtx)
		return err
	case ctx.Err() != nil:
		c.abandon(runCtx)
		return ctx.Err()
	default:
		c.logger.WarnContext(ctx, "hub connect failed", xslog.Error(err), xslog.Attempt(1))
		go c.run(runCtx, nil)
		return nil
	}
}

// Disconnect closes an open connection. It does nothing unless Connected.
func (c *Client) Disconnect() {
	c.shutdown(true)
}

// Close stops the client whatever its state, including a pending retry.
// The client may be connected again afterwards.
func (c *Client) Close() {
	c.shutdown(false)
}

func (c *Client) shutdown(onlyConnected bool) {
	c.mu.Lock()
	if c.state == Disconnected || (onlyConnected && c.state != Connected) {
		c.mu.Unlock()
		return
	}
	conn := c.conn
	stop := c.stop
	c.conn = nil
	c.stop = nil
	c.state = Disconnected
	stop()
	c.mu.Unlock()

	if conn != nil {
		c.closeConn(conn)
	}
	c.logger.Info("hub disconnected")
}

// On registers handler for event. The first registration for a name wins;
// later ones are ignored and report false. Registrations survive reconnects.
func (c *Client) On(event string, handler Handler) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.handlers[event]; ok {
		return false
	}
	c.handlers[event] = handler
	return true
}

func (c *Client) Off(event string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handlers, event)
}

func (c *Client) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.handlers)
}

// Send invokes target on the server without waiting for a result.
func (c *Client) Send(ctx context.Context, target string, args ...any) error {
	c.mu.Lock()
	conn, state := c.conn, c.state
	c.mu.Unlock()

	if state != Connected || conn == nil {
		return ErrNotConnected
	}

	if args == nil {
		args = []any{}
	}
	data, err := encodeRecord(invocation{Type: typeInvocation, Target: target, Arguments: args})
	if err != nil {
		return fmt.Errorf("encoding invocation: %w", err)
	}
	if err := c.write(ctx, conn, data); err != nil {
		return fmt.Errorf("sending %s: %w", target, err)
	}
	return nil
}

// run owns a connection generation: it serves l until it drops, then redials
// after the fixed retry delay until ctx is cancelled.
func (c *Client) run(ctx context.Context, l *link) {
	attempt := 1
	for {
		if l != nil {
			err := c.serve(ctx, l)
			_ = l.conn.Close()
			if ctx.Err() != nil {
				return
			}
			var closed *closeError
			if errors.As(err, &closed) && !closed.allowReconnect {
				c.logger.WarnContext(ctx, "hub closed by server, not reconnecting", xslog.Error(err))
				c.abandon(ctx)
				return
			}
			c.logger.WarnContext(ctx, "hub connection lost", xslog.Error(err))
			attempt = 0
		}

		if !c.transition(ctx, Reconnecting) {
			return
		}
		attempt++
		c.logger.InfoContext(ctx, "hub reconnect scheduled",
			xslog.Backoff(c.retryDelay),
			xslog.Attempt(attempt),
		)

		timer := time.NewTimer(c.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		next, err := c.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.WarnContext(ctx, "hub connect failed", xslog.Error(err), xslog.Attempt(attempt))
			l = nil
			continue
		}
		if !c.install(ctx, next.conn) {
			_ = next.conn.Close()
			return
		}
		l = next
	}
}

// install publishes conn as the live connection unless the generation owning
// ctx has been stopped.
func (c *Client) install(ctx context.Context, conn *websocket.Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ctx.Err() != nil {
		return false
	}
	c.conn = conn
	c.state = Connected
	c.logger.InfoContext(ctx, "hub connected", xslog.State(Connected.String()))
	return true
}

func (c *Client) transition(ctx context.Context, state State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ctx.Err() != nil {
		return false
	}
	c.conn = nil
	c.state = state
	return true
}

// abandon resets a generation that will not be retried.
func (c *Client) abandon(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	c.stop()
	c.stop = nil
	c.conn = nil
	c.state = Disconnected
}

type link struct {
	conn *websocket.Conn
	// records that arrived in the same message as the handshake response
	pending [][]byte
}

func (c *Client) dial(ctx context.Context) (*link, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoCredential, err)
	}
	if token == nil || token.AccessToken == "" {
		return nil, ErrNoCredential
	}

	u, err := socketURL(c.url, token.AccessToken)
	if err != nil {
		return nil, err
	}

	header := xhttp.BearerHeader(token.AccessToken)
	header.Set(xhttp.UserAgent, version.UserAgent())
	header.Set(version.Header, version.Get())
	if c.sessionID != "" {
		header.Set(xhttp.XSessionID, c.sessionID)
	}

	conn, resp, err := c.dialer.DialContext(ctx, u, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dialing hub: %s: %w", resp.Status, err)
		}
		return nil, fmt.Errorf("dialing hub: %w", err)
	}

	pending, err := c.handshake(ctx, conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &link{conn: conn, pending: pending}, nil
}

func (c *Client) handshake(ctx context.Context, conn *websocket.Conn) ([][]byte, error) {
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	req, err := encodeRecord(handshakeRequest{Protocol: "json", Version: 1})
	if err != nil {
		return nil, fmt.Errorf("encoding handshake: %w", err)
	}

	deadline := time.Now().Add(handshakeTimeout)
	_ = conn.SetWriteDeadline(deadline)
	if err := conn.WriteMessage(websocket.TextMessage, req); err != nil {
		return nil, fmt.Errorf("writing handshake: %w", err)
	}

	_ = conn.SetReadDeadline(deadline)
	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("reading handshake: %w", err)
	}

	records := splitRecords(data)
	if len(records) == 0 {
		return nil, errors.New("empty handshake response")
	}

	var resp handshakeResponse
	if err := go_json.Unmarshal(records[0], &resp); err != nil {
		return nil, fmt.Errorf("decoding handshake: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("handshake rejected: %s", resp.Error)
	}

	_ = conn.SetWriteDeadline(time.Time{})
	_ = conn.SetReadDeadline(time.Time{})

	return records[1:], nil
}

func (c *Client) serve(ctx context.Context, l *link) error {
	pingCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go c.keepAlive(pingCtx, l.conn)

	for _, record := range l.pending {
		if err := c.handleRecord(ctx, record); err != nil {
			return err
		}
	}

	for {
		_, data, err := l.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("reading: %w", err)
		}
		for _, record := range splitRecords(data) {
			if err := c.handleRecord(ctx, record); err != nil {
				return err
			}
		}
	}
}

func (c *Client) handleRecord(ctx context.Context, record []byte) error {
	var f frame
	if err := go_json.Unmarshal(record, &f); err != nil {
		c.logger.WarnContext(ctx, "failed to parse hub record",
			xslog.Error(err),
			xslog.Data(string(record)),
		)
		return nil
	}

	switch f.Type {
	case typeInvocation:
		c.dispatch(ctx, f.Target, f.Arguments)
	case typePing:
		c.logger.DebugContext(ctx, "received hub ping")
	case typeClose:
		return &closeError{reason: f.Error, allowReconnect: f.AllowReconnect}
	default:
		c.logger.DebugContext(ctx, "ignoring hub record", xslog.Type(fmt.Sprint(int(f.Type))))
	}
	return nil
}

func (c *Client) dispatch(ctx context.Context, target string, args []go_json.RawMessage) {
	c.mu.Lock()
	handler := c.handlers[target]
	c.mu.Unlock()

	if handler == nil {
		c.logger.DebugContext(ctx, "no listener for hub event", xslog.Event(target))
		return
	}
	handler(args)
}

func (c *Client) keepAlive(ctx context.Context, conn *websocket.Conn) {
	if c.pingEvery <= 0 {
		return
	}

	data, err := encodeRecord(ping{Type: typePing})
	if err != nil {
		return
	}

	ticker := time.NewTicker(c.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.write(ctx, conn, data); err != nil {
				c.logger.DebugContext(ctx, "hub ping failed", xslog.Error(err))
				return
			}
		}
	}
}

func (c *Client) write(ctx context.Context, conn *websocket.Conn, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline := time.Now().Add(writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (c *Client) closeConn(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	_ = conn.Close()
}

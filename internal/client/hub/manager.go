package hub

import (
	"context"
	"log/slog"
	"sync"

	"github.com/garrettladley/commish/internal/xslog"
)

// Manager owns the process-wide hub client. Views attach to it instead of
// holding the client, and the connection is stopped when the last view
// releases its handle.
type Manager struct {
	client *Client
	logger *slog.Logger

	mu   sync.Mutex
	refs int
}

func NewManager(client *Client, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{client: client, logger: logger}
}

func (m *Manager) Attach() *Handle {
	m.mu.Lock()
	m.refs++
	refs := m.refs
	m.mu.Unlock()

	m.logger.Debug("hub handle attached", xslog.Refs(refs))
	return &Handle{manager: m}
}

func (m *Manager) Refs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refs
}

func (m *Manager) State() State {
	return m.client.State()
}

// Close stops the client regardless of outstanding handles.
func (m *Manager) Close() {
	m.client.Close()
}

func (m *Manager) release() {
	m.mu.Lock()
	m.refs--
	refs := m.refs
	m.mu.Unlock()

	m.logger.Debug("hub handle released", xslog.Refs(refs))
	if refs == 0 {
		m.client.Close()
	}
}

// Handle is one view's access to the shared connection. It tracks the events
// it registered so that ClearAll detaches only its own listeners.
type Handle struct {
	manager *Manager

	mu       sync.Mutex
	events   []string
	released bool
}

func (h *Handle) Connect(ctx context.Context) error {
	return h.manager.client.Connect(ctx)
}

func (h *Handle) State() State {
	return h.manager.client.State()
}

func (h *Handle) Send(ctx context.Context, target string, args ...any) error {
	return h.manager.client.Send(ctx, target, args...)
}

// On registers through the shared registry. It reports false when another
// registration for event already exists or the handle was released.
func (h *Handle) On(event string, handler Handler) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.released {
		return false
	}
	if !h.manager.client.On(event, handler) {
		return false
	}
	h.events = append(h.events, event)
	return true
}

func (h *Handle) ClearAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clearLocked()
}

func (h *Handle) clearLocked() {
	for _, event := range h.events {
		h.manager.client.Off(event)
	}
	h.events = nil
}

// Release detaches the handle's listeners and drops its reference. Calling it
// again does nothing.
func (h *Handle) Release() {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.released = true
	h.clearLocked()
	h.mu.Unlock()

	h.manager.release()
}

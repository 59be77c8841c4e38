package dashboard

import (
	"context"
	"log/slog"
	"sync"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/commish/internal/client/commission"
	"github.com/garrettladley/commish/internal/client/hub"
	"github.com/garrettladley/commish/internal/xslog"
)

const messageBuffer = 32

// Hub is the part of a hub handle a page needs.
type Hub interface {
	Connect(ctx context.Context) error
	On(event string, handler hub.Handler) bool
	ClearAll()
}

type pageState int

const (
	pageFresh pageState = iota
	pageLive
	pageDead
)

// Page drives one dashboard load. It is single use: mount it, start it, read
// Messages until the channel closes, and unmount it.
type Page struct {
	hub     Hub
	trigger commission.DashboardService
	logger  *slog.Logger

	mu    sync.Mutex
	state pageState
	msgs  chan Message
}

func NewPage(h Hub, trigger commission.DashboardService, logger *slog.Logger) *Page {
	if logger == nil {
		logger = slog.Default()
	}
	return &Page{
		hub:     h,
		trigger: trigger,
		logger:  logger,
		msgs:    make(chan Message, messageBuffer),
	}
}

// Messages yields decoded fragments while the page is live. It is closed by
// Unmount.
func (p *Page) Messages() <-chan Message {
	return p.msgs
}

func (p *Page) Live() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == pageLive
}

// Mount registers a listener for every dashboard event.
func (p *Page) Mount() {
	p.mu.Lock()
	if p.state != pageFresh {
		p.mu.Unlock()
		return
	}
	p.state = pageLive
	p.mu.Unlock()

	for _, event := range Events() {
		if !p.hub.On(event, p.listener(event)) {
			p.logger.Warn("dashboard listener already registered", xslog.Event(event))
		}
	}
}

func (p *Page) listener(event string) hub.Handler {
	return func(args []go_json.RawMessage) {
		msg, err := Decode(event, args)
		if err != nil {
			p.logger.Warn("failed to decode dashboard event",
				xslog.Event(event),
				xslog.Error(err),
			)
			return
		}
		p.deliver(msg)
	}
}

// Start connects the push channel and asks the backend to generate the
// dashboard. Either failure becomes a LoadErrorMsg. The fragments themselves
// arrive through the listeners registered by Mount.
func (p *Page) Start(ctx context.Context) {
	if err := p.hub.Connect(ctx); err != nil {
		p.logger.ErrorContext(ctx, "failed to connect to hub", xslog.Error(err))
		p.deliver(LoadErrorMsg{Err: "could not connect to live updates: " + err.Error()})
		return
	}

	resp, err := p.trigger.StartGeneration(ctx)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to start data generation", xslog.Error(err))
		p.deliver(LoadErrorMsg{Err: "could not start data generation: " + err.Error()})
		return
	}
	if resp != nil {
		p.logger.DebugContext(ctx, "data generation started", xslog.Data(resp.Message))
	}
}

// Unmount stops delivery and detaches this page's listeners. The shared
// connection stays open. Anything resolving later is dropped.
func (p *Page) Unmount() {
	p.mu.Lock()
	prev := p.state
	if prev == pageDead {
		p.mu.Unlock()
		return
	}
	p.state = pageDead
	close(p.msgs)
	p.mu.Unlock()

	if prev == pageLive {
		p.hub.ClearAll()
	}
}

func (p *Page) deliver(msg Message) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != pageLive {
		return
	}
	select {
	case p.msgs <- msg:
	default:
		p.logger.Warn("dashboard message dropped", xslog.Type(typeName(msg)))
	}
}

func typeName(msg Message) string {
	switch msg.(type) {
	case CommissionDataMsg:
		return EventCommissionData
	case HistoricalCommissionsMsg:
		return EventHistoricalCommissions
	case TotalClientsMsg:
		return EventTotalClients
	case ClientsByPlatformMsg:
		return EventClientsByPlatform
	case TopClientsMsg:
		return EventTopClients
	case SalesByPlatformMsg:
		return EventSalesByPlatform
	case LoadErrorMsg:
		return EventLoadError
	default:
		return "unknown"
	}
}

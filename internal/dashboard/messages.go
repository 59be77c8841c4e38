package dashboard

import (
	"errors"
	"fmt"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/commish/internal/client/commission"
)

// Hub event names. Each fragment event carries one argument that replaces its
// slot wholesale.
const (
	EventCommissionData        = "ReceiveCommissionData"
	EventHistoricalCommissions = "ReceiveHistoricalCommissions"
	EventTotalClients          = "ReceiveTotalClients"
	EventClientsByPlatform     = "ReceiveClientsByPlatform"
	EventTopClients            = "ReceiveTopClients"
	EventSalesByPlatform       = "ReceiveSalesByPlatform"
	EventLoadError             = "DashboardLoadError"
)

func Events() []string {
	return []string{
		EventCommissionData,
		EventHistoricalCommissions,
		EventTotalClients,
		EventClientsByPlatform,
		EventTopClients,
		EventSalesByPlatform,
		EventLoadError,
	}
}

type Message interface {
	isMessage()
}

type CommissionDataMsg struct{ Data commission.CommissionData }

type HistoricalCommissionsMsg struct{ Items []commission.HistoricalCommission }

type TotalClientsMsg struct{ Data commission.TotalClients }

type ClientsByPlatformMsg struct{ Items []commission.PlatformCount }

type TopClientsMsg struct{ Items []commission.TopClient }

type SalesByPlatformMsg struct{ Items []commission.PlatformSales }

// LoadErrorMsg ends the load: unresolved slots show Err instead of a skeleton.
type LoadErrorMsg struct{ Err string }

func (CommissionDataMsg) isMessage()        {}
func (HistoricalCommissionsMsg) isMessage() {}
func (TotalClientsMsg) isMessage()          {}
func (ClientsByPlatformMsg) isMessage()     {}
func (TopClientsMsg) isMessage()            {}
func (SalesByPlatformMsg) isMessage()       {}
func (LoadErrorMsg) isMessage()             {}

const defaultLoadError = "failed to load dashboard data"

var errNoArguments = errors.New("event has no arguments")

// Decode turns one hub invocation into its typed message.
func Decode(event string, args []go_json.RawMessage) (Message, error) {
	switch event {
	case EventCommissionData:
		d, err := decodeArg[commission.CommissionData](args)
		return CommissionDataMsg{Data: d}, err
	case EventHistoricalCommissions:
		items, err := decodeArg[[]commission.HistoricalCommission](args)
		return HistoricalCommissionsMsg{Items: items}, err
	case EventTotalClients:
		d, err := decodeArg[commission.TotalClients](args)
		return TotalClientsMsg{Data: d}, err
	case EventClientsByPlatform:
		items, err := decodeArg[[]commission.PlatformCount](args)
		return ClientsByPlatformMsg{Items: items}, err
	case EventTopClients:
		items, err := decodeArg[[]commission.TopClient](args)
		return TopClientsMsg{Items: items}, err
	case EventSalesByPlatform:
		items, err := decodeArg[[]commission.PlatformSales](args)
		return SalesByPlatformMsg{Items: items}, err
	case EventLoadError:
		return LoadErrorMsg{Err: decodeLoadError(args)}, nil
	default:
		return nil, fmt.Errorf("unknown event %q", event)
	}
}

func decodeArg[T any](args []go_json.RawMessage) (T, error) {
	var v T
	if len(args) == 0 {
		return v, errNoArguments
	}
	if err := go_json.Unmarshal(args[0], &v); err != nil {
		return v, fmt.Errorf("decoding argument: %w", err)
	}
	return v, nil
}

// decodeLoadError accepts a bare string or an object with a message field.
func decodeLoadError(args []go_json.RawMessage) string {
	if len(args) == 0 {
		return defaultLoadError
	}

	var s string
	if err := go_json.Unmarshal(args[0], &s); err == nil && s != "" {
		return s
	}

	var obj struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := go_json.Unmarshal(args[0], &obj); err == nil {
		if obj.Message != "" {
			return obj.Message
		}
		if obj.Error != "" {
			return obj.Error
		}
	}
	return defaultLoadError
}

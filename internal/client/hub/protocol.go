package hub

import (
	"bytes"
	"fmt"
	"net/url"

	go_json "github.com/goccy/go-json"
)

// Records on the wire are JSON objects terminated by the ASCII record
// separator. One websocket message may carry several records.
const recordSeparator = 0x1e

type messageType int

const (
	typeInvocation messageType = 1
	typePing       messageType = 6
	typeClose      messageType = 7
)

type handshakeRequest struct {
	Protocol string `json:"protocol"`
	Version  int    `json:"version"`
}

type handshakeResponse struct {
	Error string `json:"error,omitempty"`
}

// frame is the decoded form of any server record.
type frame struct {
	Type           messageType          `json:"type"`
	Target         string               `json:"target,omitempty"`
	Arguments      []go_json.RawMessage `json:"arguments,omitempty"`
	Error          string               `json:"error,omitempty"`
	AllowReconnect bool                 `json:"allowReconnect,omitempty"`
}

type invocation struct {
	Type      messageType `json:"type"`
	Target    string      `json:"target"`
	Arguments []any       `json:"arguments"`
}

type ping struct {
	Type messageType `json:"type"`
}

func encodeRecord(v any) ([]byte, error) {
	data, err := go_json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(data, recordSeparator), nil
}

func splitRecords(data []byte) [][]byte {
	var records [][]byte
	for part := range bytes.SplitSeq(data, []byte{recordSeparator}) {
		if len(bytes.TrimSpace(part)) == 0 {
			continue
		}
		records = append(records, part)
	}
	return records
}

// socketURL turns the configured hub URL into a websocket URL carrying the
// access token, which is how browsers authenticate a websocket upgrade.
func socketURL(hubURL string, accessToken string) (string, error) {
	u, err := url.Parse(hubURL)
	if err != nil {
		return "", fmt.Errorf("parsing hub url: %w", err)
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported hub url scheme %q", u.Scheme)
	}

	q := u.Query()
	q.Set("access_token", accessToken)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

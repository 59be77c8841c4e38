package session

import (
	"time"

	"github.com/google/uuid"
)

// NewID returns an identifier for one run of the client. It is sent on every
// request and on the push channel handshake so backend logs can be correlated.
func NewID() string {
	return time.Now().UTC().Format("20060102-150405") + "-" + uuid.NewString()[:8]
}

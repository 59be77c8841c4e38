package tokenstore

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

var _ oauth2.TokenSource = (*SlotSource)(nil)

// SlotSource exposes a single slot as an oauth2.TokenSource. It re-reads the
// store on every call, so a logout or re-login is picked up immediately.
type SlotSource struct {
	store Store
	owner Owner
}

func NewSlotSource(store Store, owner Owner) *SlotSource {
	return &SlotSource{store: store, owner: owner}
}

func (s *SlotSource) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.store.Get(ctx, s.owner)
}

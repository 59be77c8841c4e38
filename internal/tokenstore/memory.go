package tokenstore

import (
	"context"
	"sync"

	"golang.org/x/oauth2"
)

var _ Store = (*MemoryStore)(nil)

type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[Owner]*oauth2.Token
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[Owner]*oauth2.Token)}
}

func (m *MemoryStore) Get(_ context.Context, owner Owner) (*oauth2.Token, error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	m.mu.RLock()
	t, ok := m.tokens[owner]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNoToken
	}
	return clone(t), nil
}

func (m *MemoryStore) Set(_ context.Context, owner Owner, token *oauth2.Token) error {
	if err := validate(owner, token); err != nil {
		return err
	}
	m.mu.Lock()
	m.tokens[owner] = clone(token)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, owner Owner) error {
	if err := checkOwner(owner); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.tokens, owner)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) ClearAll(_ context.Context) error {
	m.mu.Lock()
	clear(m.tokens)
	m.mu.Unlock()
	return nil
}

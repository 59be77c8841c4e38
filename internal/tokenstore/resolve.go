package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

// ResolveActiveToken picks the first populated slot in priority order.
// It reports false when no listed slot holds an access token.
func ResolveActiveToken(slots map[Owner]*oauth2.Token, priority []Owner) (Owner, *oauth2.Token, bool) {
	for _, owner := range priority {
		if t, ok := slots[owner]; ok && t != nil && t.AccessToken != "" {
			return owner, t, true
		}
	}
	return "", nil, false
}

// Resolve reads every slot named in priority and applies ResolveActiveToken.
// It returns ErrNoToken when all of them are empty.
func Resolve(ctx context.Context, store Store, priority []Owner) (Owner, *oauth2.Token, error) {
	slots := make(map[Owner]*oauth2.Token, len(priority))
	for _, owner := range priority {
		t, err := store.Get(ctx, owner)
		if err != nil {
			if errors.Is(err, ErrNoToken) {
				continue
			}
			return "", nil, fmt.Errorf("failed to read %s token: %w", owner, err)
		}
		slots[owner] = t
	}

	owner, t, ok := ResolveActiveToken(slots, priority)
	if !ok {
		return "", nil, ErrNoToken
	}
	return owner, t, nil
}

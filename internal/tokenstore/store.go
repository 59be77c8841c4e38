package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

var (
	ErrNoToken      = errors.New("no token found - please log in first")
	ErrInvalidOwner = errors.New("invalid token owner")
)

// Store persists zero or one token pair per owner. Writes are visible to the
// next read on the same store; there is no caching or expiry tracking.
type Store interface {
	// Get returns ErrNoToken when the slot is empty.
	Get(ctx context.Context, owner Owner) (*oauth2.Token, error)
	Set(ctx context.Context, owner Owner, token *oauth2.Token) error
	// Clear is a no-op on an empty slot.
	Clear(ctx context.Context, owner Owner) error
	ClearAll(ctx context.Context) error
}

// NewToken builds the stored form of an access/refresh pair returned by login.
func NewToken(accessToken, refreshToken string) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}
}

func validate(owner Owner, token *oauth2.Token) error {
	if !owner.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOwner, owner)
	}
	if token == nil || token.AccessToken == "" {
		return errors.New("token must carry an access token")
	}
	return nil
}

func checkOwner(owner Owner) error {
	if !owner.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOwner, owner)
	}
	return nil
}

// clone keeps callers from mutating what a backend holds.
func clone(t *oauth2.Token) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
	}
}

package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore keeps the slots in the session_tokens table of the local
// database, so a session survives restarts of the client.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, owner Owner) (*oauth2.Token, error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}

	var (
		accessToken  string
		refreshToken sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT access_token, refresh_token FROM session_tokens WHERE owner = ?",
		string(owner),
	).Scan(&accessToken, &refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	return NewToken(accessToken, refreshToken.String), nil
}

func (s *SQLiteStore) Set(ctx context.Context, owner Owner, token *oauth2.Token) error {
	if err := validate(owner, token); err != nil {
		return err
	}

	var refreshToken sql.NullString
	if token.RefreshToken != "" {
		refreshToken = sql.NullString{String: token.RefreshToken, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_tokens (owner, access_token, refresh_token, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (owner) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			updated_at = excluded.updated_at
	`, string(owner), token.AccessToken, refreshToken)
	if err != nil {
		return fmt.Errorf("failed to upsert token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context, owner Owner) error {
	if err := checkOwner(owner); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM session_tokens WHERE owner = ?", string(owner)); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ClearAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM session_tokens"); err != nil {
		return fmt.Errorf("failed to delete tokens: %w", err)
	}
	return nil
}

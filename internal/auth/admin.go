package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/garrettladley/commish/internal/client/commission"
	"github.com/garrettladley/commish/internal/tokenstore"
	"github.com/garrettladley/commish/internal/xslog"
)

// AdminSession manages the admin slot. It has no profile state of its own;
// the admin area only needs a token.
type AdminSession struct {
	store  tokenstore.Store
	auth   commission.AuthService
	logger *slog.Logger
}

func NewAdminSession(store tokenstore.Store, auth commission.AuthService, logger *slog.Logger) *AdminSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminSession{store: store, auth: auth, logger: logger}
}

// Login clears any consultant token before storing the admin pair. Logging in
// as a consultant does not do the reverse.
func (a *AdminSession) Login(ctx context.Context, email, password string) error {
	pair, err := a.auth.AdminLogin(ctx, commission.Credentials{Email: email, Password: password})
	if err != nil {
		if commission.IsUnauthorized(err) {
			return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return fmt.Errorf("logging in: %w", err)
	}

	if err := a.store.Clear(ctx, tokenstore.Consultant); err != nil {
		return fmt.Errorf("clearing consultant token: %w", err)
	}
	if err := a.store.Set(ctx, tokenstore.Admin, tokenstore.NewToken(pair.AccessToken, pair.RefreshToken)); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}

	a.logger.InfoContext(ctx, "admin logged in", xslog.Owner(tokenstore.Admin.String()))
	return nil
}

func (a *AdminSession) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx, tokenstore.Admin); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	return nil
}

func (a *AdminSession) Active(ctx context.Context) (bool, error) {
	_, err := a.store.Get(ctx, tokenstore.Admin)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, tokenstore.ErrNoToken):
		return false, nil
	default:
		return false, err
	}
}

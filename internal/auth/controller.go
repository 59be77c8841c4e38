package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/oauth2"

	"github.com/garrettladley/commish/internal/client/commission"
	"github.com/garrettladley/commish/internal/tokenstore"
	"github.com/garrettladley/commish/internal/xslog"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type State int

const (
	Bootstrapping State = iota
	Verifying
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Bootstrapping:
		return "bootstrapping"
	case Verifying:
		return "verifying"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Status is a snapshot of the session. User is non-nil only when State is
// Authenticated.
type Status struct {
	State State
	User  *commission.UserProfile
}

func (s Status) IsAuthenticated() bool {
	return s.User != nil
}

// Controller owns the consultant session: the stored token and the profile it
// resolved to.
type Controller struct {
	store   tokenstore.Store
	auth    commission.AuthService
	profile commission.ProfileService
	logger  *slog.Logger

	mu    sync.RWMutex
	state State
	user  *commission.UserProfile
	// gen changes on every login and logout so a profile fetch that
	// finishes after either is dropped.
	gen uint64
}

func NewController(store tokenstore.Store, auth commission.AuthService, profile commission.ProfileService, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:   store,
		auth:    auth,
		profile: profile,
		logger:  logger,
		state:   Bootstrapping,
	}
}

func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Status{State: c.state, User: c.user}
}

func (c *Controller) IsAuthenticated() bool {
	return c.Status().IsAuthenticated()
}

// Bootstrap resolves the stored consultant token into a session. No request is
// made when the slot is empty. Any failure ends in Anonymous with the slot
// cleared; the returned Status is the final one either way.
func (c *Controller) Bootstrap(ctx context.Context) Status {
	_, err := c.store.Get(ctx, tokenstore.Consultant)
	switch {
	case errors.Is(err, tokenstore.ErrNoToken):
		c.setAnonymous()
		c.logger.DebugContext(ctx, "no stored session")
		return c.Status()
	case err != nil:
		c.logger.WarnContext(ctx, "failed to read stored session", xslog.Error(err))
		c.forceLogout(ctx)
		return c.Status()
	}

	gen := c.beginVerify()
	if err := c.verify(ctx, gen); err != nil {
		c.logger.WarnContext(ctx, "stored session rejected", xslog.Error(err))
	}
	return c.Status()
}

// Login exchanges credentials for a consultant token pair, stores it and
// resolves the profile. A 401 from the backend is reported as
// ErrInvalidCredentials and leaves the session untouched.
func (c *Controller) Login(ctx context.Context, email, password string) (Status, error) {
	pair, err := c.auth.Login(ctx, commission.Credentials{Email: email, Password: password})
	if err != nil {
		if commission.IsUnauthorized(err) {
			return c.Status(), fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return c.Status(), fmt.Errorf("logging in: %w", err)
	}

	gen, err := c.storeAndVerify(ctx, tokenstore.NewToken(pair.AccessToken, pair.RefreshToken))
	if err != nil {
		return c.Status(), fmt.Errorf("storing token: %w", err)
	}
	if err := c.verify(ctx, gen); err != nil {
		return c.Status(), err
	}

	status := c.Status()
	if status.User != nil {
		c.logger.InfoContext(ctx, "logged in", xslog.UserID(status.User.ID))
	}
	return status, nil
}

// Logout clears the consultant slot and the profile. It is safe to call in any
// state, any number of times.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	return c.clearLocked(ctx)
}

func (c *Controller) beginVerify() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.user = nil
	c.state = Verifying
	return c.gen
}

// storeAndVerify writes token and starts a new generation under one lock, so
// a failing verify from an older generation cannot clear it.
func (c *Controller) storeAndVerify(ctx context.Context, token *oauth2.Token) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Set(ctx, tokenstore.Consultant, token); err != nil {
		return 0, err
	}
	c.gen++
	c.user = nil
	c.state = Verifying
	return c.gen, nil
}

func (c *Controller) verify(ctx context.Context, gen uint64) error {
	profile, err := c.profile.Me(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	if err != nil {
		c.gen++
		if clearErr := c.clearLocked(ctx); clearErr != nil {
			c.logger.ErrorContext(ctx, "failed to clear session", xslog.Error(clearErr))
		}
		return fmt.Errorf("fetching profile: %w", err)
	}
	c.user = profile
	c.state = Authenticated
	return nil
}

// clearLocked ends the session. c.mu must be held.
func (c *Controller) clearLocked(ctx context.Context) error {
	c.user = nil
	c.state = Anonymous
	if err := c.store.Clear(ctx, tokenstore.Consultant); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	return nil
}

func (c *Controller) forceLogout(ctx context.Context) {
	if err := c.Logout(ctx); err != nil {
		c.logger.ErrorContext(ctx, "failed to clear session", xslog.Error(err))
	}
}

func (c *Controller) setAnonymous() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = nil
	c.state = Anonymous
}

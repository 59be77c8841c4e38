package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/commish/internal/client/commission"
	"github.com/garrettladley/commish/internal/tokenstore"
	"github.com/garrettladley/commish/internal/xslog"
)

type fakeAuth struct {
	pair      *commission.TokenPair
	err       error
	calls     atomic.Int32
	lastCreds commission.Credentials
}

func (f *fakeAuth) Login(_ context.Context, creds commission.Credentials) (*commission.TokenPair, error) {
	f.calls.Add(1)
	f.lastCreds = creds
	return f.pair, f.err
}

func (f *fakeAuth) AdminLogin(ctx context.Context, creds commission.Credentials) (*commission.TokenPair, error) {
	return f.Login(ctx, creds)
}

type fakeProfile struct {
	profile *commission.UserProfile
	err     error
	calls   atomic.Int32
	// when set, Me blocks until the channel is closed
	gate chan struct{}
}

func (f *fakeProfile) Me(context.Context) (*commission.UserProfile, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	return f.profile, f.err
}

var ana = &commission.UserProfile{ID: "u1", Name: "Ana", Email: "a@b.com", Role: commission.RoleConsultant}

func unauthorized() error {
	return &commission.APIError{StatusCode: http.StatusUnauthorized, Message: "unauthorized"}
}

func consultantToken(t *testing.T, store tokenstore.Store) string {
	t.Helper()
	tok, err := store.Get(context.Background(), tokenstore.Consultant)
	if errors.Is(err, tokenstore.ErrNoToken) {
		return ""
	}
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	return tok.AccessToken
}

func TestNewControllerStartsBootstrapping(t *testing.T) {
	t.Parallel()

	c := NewController(tokenstore.NewMemoryStore(), &fakeAuth{}, &fakeProfile{}, xslog.Nop())
	if got := c.Status().State; got != Bootstrapping {
		t.Errorf("State = %s, want %s", got, Bootstrapping)
	}
	if got := c.Guard(); got != Loading {
		t.Errorf("Guard() = %s, want %s", got, Loading)
	}
}

func TestBootstrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		stored        string
		profile       *commission.UserProfile
		profileErr    error
		wantState     State
		wantUser      *commission.UserProfile
		wantToken     string
		wantFetches   int32
		wantGuardDecn Decision
	}{
		{
			name:          "no stored token makes no request",
			wantState:     Anonymous,
			wantFetches:   0,
			wantGuardDecn: RedirectLogin,
		},
		{
			name:          "valid stored token",
			stored:        "A",
			profile:       ana,
			wantState:     Authenticated,
			wantUser:      ana,
			wantToken:     "A",
			wantFetches:   1,
			wantGuardDecn: Allow,
		},
		{
			name:          "rejected stored token is cleared",
			stored:        "stale",
			profileErr:    unauthorized(),
			wantState:     Anonymous,
			wantFetches:   1,
			wantGuardDecn: RedirectLogin,
		},
		{
			name:          "transport failure is treated as invalid session",
			stored:        "A",
			profileErr:    errors.New("connection refused"),
			wantState:     Anonymous,
			wantFetches:   1,
			wantGuardDecn: RedirectLogin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			store := tokenstore.NewMemoryStore()
			if tt.stored != "" {
				if err := store.Set(ctx, tokenstore.Consultant, tokenstore.NewToken(tt.stored, "R")); err != nil {
					t.Fatalf("Set() error = %v", err)
				}
			}
			profile := &fakeProfile{profile: tt.profile, err: tt.profileErr}
			c := NewController(store, &fakeAuth{}, profile, xslog.Nop())

			got := c.Bootstrap(ctx)

			if got.State != tt.wantState {
				t.Errorf("State = %s, want %s", got.State, tt.wantState)
			}
			if diff := cmp.Diff(tt.wantUser, got.User); diff != "" {
				t.Errorf("User mismatch (-want +got):\n%s", diff)
			}
			if tok := consultantToken(t, store); tok != tt.wantToken {
				t.Errorf("stored token = %q, want %q", tok, tt.wantToken)
			}
			if n := profile.calls.Load(); n != tt.wantFetches {
				t.Errorf("profile fetches = %d, want %d", n, tt.wantFetches)
			}
			if d := Guard(got); d != tt.wantGuardDecn {
				t.Errorf("Guard() = %s, want %s", d, tt.wantGuardDecn)
			}

			// logout after any bootstrap outcome is a no-op, not an error
			if err := c.Logout(ctx); err != nil {
				t.Errorf("Logout() error = %v", err)
			}
		})
	}
}

func TestLoginFromEmptyStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := tokenstore.NewMemoryStore()
	api := &fakeAuth{pair: &commission.TokenPair{AccessToken: "A", RefreshToken: "R"}}
	profile := &fakeProfile{profile: ana}
	c := NewController(store, api, profile, xslog.Nop())

	c.Bootstrap(ctx)

	status, err := c.Login(ctx, "a@b.com", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if !status.IsAuthenticated() || !c.IsAuthenticated() {
		t.Error("IsAuthenticated() = false, want true")
	}
	if tok := consultantToken(t, store); tok != "A" {
		t.Errorf("stored token = %q, want %q", tok, "A")
	}
	stored, err := store.Get(ctx, tokenstore.Consultant)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.RefreshToken != "R" {
		t.Errorf("refresh token = %q, want %q", stored.RefreshToken, "R")
	}
	if n := profile.calls.Load(); n != 1 {
		t.Errorf("profile fetches = %d, want 1", n)
	}
	if diff := cmp.Diff(commission.Credentials{Email: "a@b.com", Password: "secret"}, api.lastCreds); diff != "" {
		t.Errorf("credentials mismatch (-want +got):\n%s", diff)
	}
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		loginErr   error
		profileErr error
		wantErr    error
	}{
		{
			name:     "bad credentials",
			loginErr: unauthorized(),
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "server error is surfaced as is",
			loginErr: &commission.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"},
		},
		{
			name:       "profile fetch fails after login",
			profileErr: errors.New("timeout"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			store := tokenstore.NewMemoryStore()
			api := &fakeAuth{pair: &commission.TokenPair{AccessToken: "A"}, err: tt.loginErr}
			c := NewController(store, api, &fakeProfile{profile: ana, err: tt.profileErr}, xslog.Nop())
			c.Bootstrap(ctx)

			status, err := c.Login(ctx, "a@b.com", "wrong")
			if err == nil {
				t.Fatal("Login() error = nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Login() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, should not be ErrInvalidCredentials", err)
			}
			if status.State != Anonymous || status.IsAuthenticated() {
				t.Errorf("status = %+v, want anonymous", status)
			}
			if tok := consultantToken(t, store); tok != "" {
				t.Errorf("stored token = %q, want none", tok)
			}
		})
	}
}

func TestNotAuthenticatedWhileVerifying(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := tokenstore.NewMemoryStore()
	if err := store.Set(ctx, tokenstore.Consultant, tokenstore.NewToken("A", "")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	profile := &fakeProfile{profile: ana, gate: make(chan struct{})}
	c := NewController(store, &fakeAuth{}, profile, xslog.Nop())

	done := make(chan Status, 1)
	go func() { done <- c.Bootstrap(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for c.Status().State != Verifying {
		if time.Now().After(deadline) {
			t.Fatal("controller never entered Verifying")
		}
		time.Sleep(time.Millisecond)
	}
	if c.IsAuthenticated() {
		t.Error("IsAuthenticated() = true while the profile fetch is outstanding")
	}
	if d := c.Guard(); d != Loading {
		t.Errorf("Guard() = %s, want %s", d, Loading)
	}

	close(profile.gate)
	if got := <-done; got.State != Authenticated {
		t.Errorf("State = %s, want %s", got.State, Authenticated)
	}
}

func TestLogoutDuringVerifyWins(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := tokenstore.NewMemoryStore()
	if err := store.Set(ctx, tokenstore.Consultant, tokenstore.NewToken("A", "")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	profile := &fakeProfile{profile: ana, gate: make(chan struct{})}
	c := NewController(store, &fakeAuth{}, profile, xslog.Nop())

	done := make(chan Status, 1)
	go func() { done <- c.Bootstrap(ctx) }()

	for profile.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	if err := c.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	close(profile.gate)

	if got := <-done; got.State != Anonymous || got.User != nil {
		t.Errorf("status = %+v, want anonymous", got)
	}
}

// stallingStore blocks its first Clear until release is closed.
type stallingStore struct {
	tokenstore.Store
	once     sync.Once
	clearing chan struct{}
	release  chan struct{}
}

func (s *stallingStore) Clear(ctx context.Context, owner tokenstore.Owner) error {
	s.once.Do(func() {
		close(s.clearing)
		<-s.release
	})
	return s.Store.Clear(ctx, owner)
}

// sequenceProfile answers Me with errs[i] on the i-th call, then ana.
type sequenceProfile struct {
	errs  []error
	calls atomic.Int32
}

func (f *sequenceProfile) Me(context.Context) (*commission.UserProfile, error) {
	i := int(f.calls.Add(1)) - 1
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	return ana, nil
}

func TestRejectedSessionDoesNotClearNewerLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := &stallingStore{
		Store:    tokenstore.NewMemoryStore(),
		clearing: make(chan struct{}),
		release:  make(chan struct{}),
	}
	if err := store.Set(ctx, tokenstore.Consultant, tokenstore.NewToken("A", "")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	api := &fakeAuth{pair: &commission.TokenPair{AccessToken: "B", RefreshToken: "rB"}}
	c := NewController(store, api, &sequenceProfile{errs: []error{unauthorized()}}, xslog.Nop())

	booted := make(chan Status, 1)
	go func() { booted <- c.Bootstrap(ctx) }()

	select {
	case <-store.clearing:
	case <-time.After(2 * time.Second):
		t.Fatal("rejected session was never cleared")
	}

	type result struct {
		status Status
		err    error
	}
	loggedIn := make(chan result, 1)
	go func() {
		status, err := c.Login(ctx, "a@b.com", "pw")
		loggedIn <- result{status, err}
	}()

	time.Sleep(50 * time.Millisecond)
	close(store.release)
	<-booted

	got := <-loggedIn
	if got.err != nil {
		t.Fatalf("Login() error = %v", got.err)
	}
	if got.status.State != Authenticated {
		t.Errorf("State = %s, want %s", got.status.State, Authenticated)
	}
	if tok := consultantToken(t, store); tok != "B" {
		t.Errorf("stored token = %q, want %q", tok, "B")
	}
	if s := c.Status(); s.State != Authenticated || s.User == nil {
		t.Errorf("final status = %+v, want authenticated", s)
	}
}

func TestAdminSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := tokenstore.NewMemoryStore()
	if err := store.Set(ctx, tokenstore.Consultant, tokenstore.NewToken("C", "")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	a := NewAdminSession(store, &fakeAuth{pair: &commission.TokenPair{AccessToken: "B", RefreshToken: "RB"}}, xslog.Nop())
	if err := a.Login(ctx, "root@b.com", "pw"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if tok := consultantToken(t, store); tok != "" {
		t.Errorf("consultant token = %q, want cleared", tok)
	}
	if active, err := a.Active(ctx); err != nil || !active {
		t.Errorf("Active() = %v, %v; want true, nil", active, err)
	}

	if err := a.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if active, _ := a.Active(ctx); active {
		t.Error("Active() after logout = true")
	}

	bad := NewAdminSession(store, &fakeAuth{err: unauthorized()}, xslog.Nop())
	if err := bad.Login(ctx, "root@b.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestGuard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status Status
		want   Decision
	}{
		{status: Status{State: Bootstrapping}, want: Loading},
		{status: Status{State: Verifying}, want: Loading},
		{status: Status{State: Authenticated, User: ana}, want: Allow},
		{status: Status{State: Anonymous}, want: RedirectLogin},
	}
	for _, tt := range tests {
		t.Run(tt.status.State.String(), func(t *testing.T) {
			t.Parallel()
			if got := Guard(tt.status); got != tt.want {
				t.Errorf("Guard(%s) = %s, want %s", tt.status.State, got, tt.want)
			}
		})
	}
}

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/garrettladley/commish/internal/config"
	"github.com/garrettladley/commish/internal/tokenstore"
	"github.com/garrettladley/commish/internal/xhttp"
	"github.com/garrettladley/commish/internal/xslog"
)

func TestUseAdminToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	auth := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth <- r.Header.Get(xhttp.Authorization)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	store := tokenstore.NewMemoryStore()
	if err := store.Set(ctx, tokenstore.Consultant, tokenstore.NewToken("consultant-token", "")); err != nil {
		t.Fatalf("Set(consultant) error = %v", err)
	}
	if err := store.Set(ctx, tokenstore.Admin, tokenstore.NewToken("admin-token", "")); err != nil {
		t.Fatalf("Set(admin) error = %v", err)
	}

	a := &app{cfg: config.Config{APIURL: srv.URL}, logger: xslog.Nop(), store: store}
	a.client = a.newClient()
	a.useAdminToken()

	if _, err := a.client.Dashboard.StartGeneration(ctx); err != nil {
		t.Fatalf("StartGeneration() error = %v", err)
	}
	if got, want := <-auth, "Bearer admin-token"; got != want {
		t.Errorf("Authorization = %q, want %q", got, want)
	}
}

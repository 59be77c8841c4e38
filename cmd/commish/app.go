package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/garrettladley/commish/internal/client/commission"
	"github.com/garrettladley/commish/internal/config"
	"github.com/garrettladley/commish/internal/db"
	"github.com/garrettladley/commish/internal/paths"
	"github.com/garrettladley/commish/internal/redis"
	"github.com/garrettladley/commish/internal/session"
	"github.com/garrettladley/commish/internal/tokenstore"
	"github.com/garrettladley/commish/internal/xslog"
)

// app holds the process-wide wiring shared by every command.
type app struct {
	cfg       config.Config
	sessionID string
	logger    *slog.Logger
	store     tokenstore.Store
	client    *commission.Client

	logFile *os.File
	sqlDB   *sql.DB
	rdb     *goredis.Client
}

// openApp wires config, logging and the token store for cmd. cmd's context
// carries a logger scoped to the command afterwards.
func openApp(cmd *cobra.Command) (*app, error) {
	ctx := cmd.Context()

	cfg, err := config.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	a := &app{cfg: cfg, sessionID: session.NewID()}

	logPath, err := paths.Log()
	if err != nil {
		return nil, err
	}
	a.logFile, err = xslog.OpenFile(logPath)
	if err != nil {
		return nil, err
	}
	a.logger = xslog.NewLoggerFromEnv(a.logFile).With(xslog.SessionID(a.sessionID))

	if err := a.openStore(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}

	a.client = a.newClient()

	cmd.SetContext(xslog.WithLogger(ctx, a.logger.With(xslog.Command(cmd.CommandPath()))))
	return a, nil
}

func (a *app) newClient(opts ...commission.Option) *commission.Client {
	base := []commission.Option{
		commission.WithBaseURL(a.cfg.APIURL),
		commission.WithAPIKey(a.cfg.AdminAPIKey),
		commission.WithSessionID(a.sessionID),
		commission.WithLogger(a.logger),
	}
	return commission.New(a.store, append(base, opts...)...)
}

// useAdminToken rebuilds the client so the bearer always comes from the Admin
// slot, even while a consultant session is also stored.
func (a *app) useAdminToken() {
	a.client = a.newClient(commission.WithPriority(tokenstore.Admin))
}

func (a *app) openStore(ctx context.Context) error {
	if ephemeral {
		store := tokenstore.NewMemoryStore()
		if a.cfg.AccessToken != "" {
			if err := store.Set(ctx, tokenstore.Consultant, tokenstore.NewToken(a.cfg.AccessToken, "")); err != nil {
				return fmt.Errorf("failed to seed token: %w", err)
			}
		}
		a.store = store
		a.logger.DebugContext(ctx, "using in-memory token store")
		return nil
	}

	if a.cfg.RedisURL != "" {
		rdb, err := redis.Connect(ctx, a.cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.rdb = rdb
		a.store = tokenstore.NewRedisStore(rdb)
		a.logger.DebugContext(ctx, "using redis token store")
		return nil
	}

	dbPath, err := paths.DB()
	if err != nil {
		return err
	}
	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	a.sqlDB = sqlDB
	a.store = tokenstore.NewSQLiteStore(sqlDB)
	return nil
}

func (a *app) Close() error {
	var errs []error
	if a.sqlDB != nil {
		errs = append(errs, a.sqlDB.Close())
	}
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}

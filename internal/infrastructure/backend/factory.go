// Package backend builds the record store selected by configuration, along
// with its readiness checks and cleanup.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gestion-frais/expense-ledger/internal/core/ports"
	"github.com/gestion-frais/expense-ledger/internal/infrastructure/config"
	mongodb "github.com/gestion-frais/expense-ledger/internal/infrastructure/db/mongo"
	"github.com/gestion-frais/expense-ledger/internal/infrastructure/db/postgres"
	redisdb "github.com/gestion-frais/expense-ledger/internal/infrastructure/db/redis"
	"github.com/gestion-frais/expense-ledger/internal/infrastructure/db/sqlite"
	"github.com/gestion-frais/expense-ledger/internal/infrastructure/store/local"
	"github.com/gestion-frais/expense-ledger/internal/infrastructure/store/remote"
)

// Result is an opened store plus what the server needs around it.
type Result struct {
	Name      string
	Store     ports.RecordStore
	Readiness map[string]ports.Pinger
	closers   []func(context.Context) error
}

// Close releases every connection opened for the store.
func (r *Result) Close(ctx context.Context) error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenServerStore opens the backend named by STORE_BACKEND.
func OpenServerStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Result, error) {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		return openPostgres(ctx, cfg, log)
	case config.StoreMongo:
		return openMongo(ctx, cfg, log)
	case config.StoreLocal:
		return openLocal(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.StoreBackend)
	}
}

// OpenClientStore opens the store used by the CLI: the remote API when
// API_URL is set, the local slot store otherwise.
func OpenClientStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Result, error) {
	if cfg.Client.APIURL == "" {
		return openLocal(ctx, cfg, log)
	}
	client := remote.NewClient(cfg.Client.APIURL, cfg.Client.Timeout, remote.WithLogger(log))
	log.Debug().Str("api_url", cfg.Client.APIURL).Msg("using remote expense api")
	return &Result{Name: "remote", Store: client, Readiness: map[string]ports.Pinger{}}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Result, error) {
	db, err := postgres.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	log.Info().Msg("postgres backend ready")

	return &Result{
		Name:      config.StorePostgres,
		Store:     postgres.NewExpenseRepository(db),
		Readiness: map[string]ports.Pinger{"postgres": postgres.Pinger{DB: db}},
		closers:   []func(context.Context) error{func(context.Context) error { return db.Close() }},
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Result, error) {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	repo := mongodb.NewExpenseRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure expense indexes")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo backend ready")

	return &Result{
		Name:      config.StoreMongo,
		Store:     repo,
		Readiness: map[string]ports.Pinger{"mongodb": mongodb.Pinger{Client: client}},
		closers:   []func(context.Context) error{client.Disconnect},
	}, nil
}

func openLocal(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Result, error) {
	res := &Result{Name: config.StoreLocal, Readiness: map[string]ports.Pinger{}}

	var kv ports.KeyValue
	switch cfg.KV.Backend {
	case config.KVRedis:
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		kv = redisdb.NewKV(rdb)
		res.Readiness["redis"] = ports.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		res.closers = append(res.closers, func(context.Context) error { return rdb.Close() })
	default:
		s, err := sqlite.Open(ctx, cfg.KV.SQLitePath)
		if err != nil {
			return nil, err
		}
		kv = s
		res.Readiness["sqlite"] = s
		res.closers = append(res.closers, func(context.Context) error { return s.Close() })
	}

	store, err := local.Open(ctx, kv, local.WithSlot(cfg.KV.Slot), local.WithLogger(log))
	if err != nil {
		_ = res.Close(ctx)
		return nil, err
	}
	res.Store = store
	log.Info().Str("kv", cfg.KV.Backend).Str("slot", cfg.KV.Slot).Msg("local backend ready")
	return res, nil
}

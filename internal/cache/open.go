package cache

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"Inventario/internal/productos"
	"Inventario/pkg/kit"
)

const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Options struct {
	Backend     string
	Dir         string
	RedisAddr   string
	RedisPrefix string
	DatabaseURL string
}

// Open builds the backend named by opts.Backend. The returned close func is
// never nil.
func Open(ctx context.Context, opts Options, log *zap.Logger) (Store, func(), error) {
	noop := func() {}

	switch opts.Backend {
	case BackendFile, "":
		s, err := NewFileStore(opts.Dir)
		if err != nil {
			return nil, noop, err
		}
		log.Info("cache backend ready", zap.String("backend", BackendFile), zap.String("path", s.Path()))
		return s, noop, nil

	case BackendRedis:
		s := NewRedisStore(redis.NewClient(&redis.Options{Addr: opts.RedisAddr}), opts.RedisPrefix)
		if err := s.Ping(ctx); err != nil {
			log.Warn("redis not reachable yet", zap.String("addr", opts.RedisAddr), zap.Error(err))
		}
		log.Info("cache backend ready", zap.String("backend", BackendRedis), zap.String("addr", opts.RedisAddr))
		return s, func() { _ = s.Close() }, nil

	case BackendPostgres:
		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("postgres pool: %w", err)
		}
		s := NewPostgresStore(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			s.Close()
			return nil, noop, fmt.Errorf("postgres schema: %w", err)
		}
		log.Info("cache backend ready", zap.String("backend", BackendPostgres))
		return s, s.Close, nil

	case BackendMemory:
		log.Info("cache backend ready", zap.String("backend", BackendMemory))
		return NewMemStore(), noop, nil
	}

	return nil, noop, fmt.Errorf("unknown cache backend %q", opts.Backend)
}

type instrumented struct {
	next Store
	m    *kit.UpstreamMetrics
}

// WithMetrics counts loads (hit, miss, error) and saves (ok, error).
func WithMetrics(s Store, m *kit.UpstreamMetrics) Store {
	if m == nil {
		return s
	}
	return &instrumented{next: s, m: m}
}

func (i *instrumented) Save(ctx context.Context, list []productos.Product) error {
	err := i.next.Save(ctx, list)
	if err != nil {
		i.m.ObserveCache("save", "error")
		return err
	}
	i.m.ObserveCache("save", "ok")
	return nil
}

func (i *instrumented) Load(ctx context.Context) ([]productos.Product, error) {
	list, err := i.next.Load(ctx)
	switch {
	case err != nil:
		i.m.ObserveCache("load", "error")
	case len(list) == 0:
		i.m.ObserveCache("load", "miss")
	default:
		i.m.ObserveCache("load", "hit")
	}
	return list, err
}

func (i *instrumented) Ping(ctx context.Context) error {
	return i.next.Ping(ctx)
}

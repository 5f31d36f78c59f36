// Package bootstrap builds the storage provider and its optional Redis cache
// from config. Both binaries start through it.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/01moynul/binner-golang/internal/config"
	"github.com/01moynul/binner-golang/internal/database"
	"github.com/01moynul/binner-golang/internal/storage"
	"github.com/01moynul/binner-golang/internal/storage/cache"
	"github.com/01moynul/binner-golang/internal/storage/gormstore"
	"github.com/01moynul/binner-golang/internal/storage/sqlstore"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// OpenStore connects the configured provider and, when Redis is configured,
// wraps it with the credential cache. Closing the returned provider closes both.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Provider, error) {
	var (
		store storage.Provider
		err   error
	)
	switch cfg.Database.Provider {
	case database.DriverSQLite, database.DriverMySQL:
		store, err = sqlstore.Open(cfg.Database, logger)
	case gormstore.EnginePostgres, gormstore.EngineMySQL, gormstore.EngineSQLite:
		store, err = gormstore.Open(cfg.Database, logger)
	default:
		return nil, fmt.Errorf("unknown database provider %q", cfg.Database.Provider)
	}
	if err != nil {
		return nil, err
	}
	logger.Info("storage provider ready", zap.String("provider", cfg.Database.Provider))

	if !cfg.Redis.Enabled() {
		return store, nil
	}
	rdb := NewRedis(cfg.Redis)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		// The cache is optional; run uncached rather than refuse to start.
		logger.Warn("redis unavailable, credential cache disabled", zap.String("addr", cfg.Redis.Addr()), zap.Error(err))
		_ = rdb.Close()
		return store, nil
	}
	logger.Info("credential cache enabled", zap.String("addr", cfg.Redis.Addr()))
	return &cachedStore{Store: cache.New(store, rdb, cfg.Redis.CredentialTTL, logger), rdb: rdb}, nil
}

// NewRedis builds the client without connecting.
func NewRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

type cachedStore struct {
	*cache.Store
	rdb *redis.Client
}

func (s *cachedStore) Close() error {
	if err := s.rdb.Close(); err != nil {
		_ = s.Store.Close()
		return err
	}
	return s.Store.Close()
}

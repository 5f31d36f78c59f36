// Package cache decorates a storage.Provider with a Redis cache for OAuth credentials.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/01moynul/binner-golang/internal/models"
	"github.com/01moynul/binner-golang/internal/requestctx"
	"github.com/01moynul/binner-golang/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "binner:oauth:"

// Client is the subset of the go-redis API the cache needs. *redis.Client satisfies it.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

// Store caches credential reads and passes every other call through.
type Store struct {
	storage.Provider

	rdb    Client
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// New wraps next. A non-positive ttl defaults to 15 minutes.
func New(next storage.Provider, rdb Client, ttl time.Duration, logger *zap.Logger) *Store {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		Provider: next,
		rdb:      rdb,
		ttl:      ttl,
		logger:   logger.Named("cache"),
		now:      time.Now,
	}
}

// Key returns the cache key for provider under the request's user scope.
func Key(ctx context.Context, provider string) string {
	if uid := requestctx.UserID(ctx); uid != nil {
		return fmt.Sprintf("%s%d:%s", keyPrefix, *uid, provider)
	}
	return keyPrefix + "global:" + provider
}

func (s *Store) GetOAuthCredential(ctx context.Context, provider string) (*models.OAuthCredential, error) {
	key := Key(ctx, provider)
	raw, err := s.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cred models.OAuthCredential
		if err := json.Unmarshal(raw, &cred); err == nil {
			return &cred, nil
		}
		s.logger.Warn("discarding corrupt cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		s.logger.Warn("credential cache read failed", zap.String("key", key), zap.Error(err))
	}

	cred, err := s.Provider.GetOAuthCredential(ctx, provider)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, cred)
	return cred, nil
}

func (s *Store) SaveOAuthCredential(ctx context.Context, credential *models.OAuthCredential) (*models.OAuthCredential, error) {
	saved, err := s.Provider.SaveOAuthCredential(ctx, credential)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, credential.Provider)
	return saved, nil
}

func (s *Store) RemoveOAuthCredential(ctx context.Context, provider string) error {
	if err := s.Provider.RemoveOAuthCredential(ctx, provider); err != nil {
		return err
	}
	s.invalidate(ctx, provider)
	return nil
}

// expiration is the configured TTL, shortened to the credential's own expiry.
// Zero means the credential should not be cached.
func (s *Store) expiration(cred *models.OAuthCredential) time.Duration {
	if cred.DateExpiresUtc.IsZero() {
		return s.ttl
	}
	remaining := cred.DateExpiresUtc.Sub(s.now())
	if remaining <= 0 {
		return 0
	}
	if remaining < s.ttl {
		return remaining
	}
	return s.ttl
}

func (s *Store) store(ctx context.Context, key string, cred *models.OAuthCredential) {
	ttl := s.expiration(cred)
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(cred)
	if err != nil {
		s.logger.Warn("credential cache encode failed", zap.Error(err))
		return
	}
	if err := s.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		s.logger.Warn("credential cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// invalidate drops every cached entry a write to provider may have changed.
// Anonymous reads see all users' rows, so a user's write also drops the
// global key. Anonymous writes touch every user's row, so they drop every
// key for the provider.
func (s *Store) invalidate(ctx context.Context, provider string) {
	keys := []string{Key(ctx, provider)}
	if requestctx.UserID(ctx) != nil {
		keys = append(keys, keyPrefix+"global:"+provider)
	} else {
		matched, err := s.scan(ctx, keyPrefix+"*:"+escapeGlob(provider))
		if err != nil {
			s.logger.Warn("credential cache scan failed", zap.String("provider", provider), zap.Error(err))
		}
		keys = append(keys, matched...)
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("credential cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (s *Store) scan(ctx context.Context, match string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		page, next, err := s.rdb.Scan(ctx, cursor, match, 100).Result()
		if err != nil {
			return keys, err
		}
		keys = append(keys, page...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// escapeGlob quotes the Redis MATCH metacharacters in s.
func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}

// Package cache stores model answers keyed by the analysed content.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"mishura/internal/config"
	"mishura/internal/logger"

	"github.com/redis/go-redis/v9"
)

const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Store interface {
	// Get reports a miss with ok == false and a nil error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Fingerprint derives the cache key from the ordered images and request text.
// Every field is length-prefixed so different splits never collide.
func Fingerprint(images [][]byte, occasion, preferences string) string {
	h := sha256.New()
	var n [8]byte

	write := func(b []byte) {
		binary.BigEndian.PutUint64(n[:], uint64(len(b)))
		h.Write(n[:])
		h.Write(b)
	}

	binary.BigEndian.PutUint64(n[:], uint64(len(images)))
	h.Write(n[:])
	for _, img := range images {
		write(img)
	}
	write([]byte(strings.TrimSpace(occasion)))
	write([]byte(strings.TrimSpace(preferences)))

	return hex.EncodeToString(h.Sum(nil))
}

type noop struct{}

func (noop) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (noop) Set(context.Context, string, string) error         { return nil }

// Noop never stores anything.
func Noop() Store { return noop{} }

// New builds the store selected by CACHE_BACKEND. The returned close function is never nil.
func New(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	switch strings.ToLower(cfg.CacheBackend) {
	case "", BackendNone:
		return Noop(), func() error { return nil }, nil
	case BackendFile:
		fs, err := NewFileStore(cfg.CacheDir, cfg.CacheTTL)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() error { return nil }, nil
	case BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			// lookups degrade to misses until redis is reachable
			logger.Warn("redis cache unreachable at startup", "addr", cfg.RedisAddr, "error", err)
		}
		return NewRedisStore(rdb, cfg.CacheTTL), rdb.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported CACHE_BACKEND %q", cfg.CacheBackend)
	}
}

package redis

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/logger"
	"github.com/julianstephens/boardprep/internal/storage"
)

const (
	opTimeout = 5 * time.Second
	markerKey = "initialized"
)

// Store keeps each value under a prefixed Redis string key
type Store struct {
	url    string
	prefix string
	rdb    *goredis.Client
}

// IsURL reports whether config is a redis:// or rediss:// URL
func IsURL(config string) bool {
	return strings.HasPrefix(config, "redis://") || strings.HasPrefix(config, "rediss://")
}

func New(rawURL string) *Store {
	return &Store{
		url:    rawURL,
		prefix: constants.RedisKeyPrefix,
	}
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

func (s *Store) connect() error {
	if s.rdb != nil {
		return nil
	}
	opts, err := goredis.ParseURL(s.url)
	if err != nil {
		return fmt.Errorf("invalid redis URL: %w", err)
	}
	opts.DialTimeout = opTimeout

	rdb := goredis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("redis ping: %w", err)
	}
	s.rdb = rdb
	return nil
}

func (s *Store) Init() error {
	if err := s.connect(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.rdb.Set(ctx, s.key(markerKey), time.Now().UTC().Format(time.RFC3339), 0).Err(); err != nil {
		return fmt.Errorf("failed to mark store initialized: %w", err)
	}
	logger.Info("Redis store initialized", "prefix", s.prefix)
	return nil
}

func (s *Store) Load() error {
	if err := s.connect(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	n, err := s.rdb.Exists(ctx, s.key(markerKey)).Result()
	if err != nil {
		return fmt.Errorf("failed to check store marker: %w", err)
	}
	if n == 0 {
		_ = s.Close()
		return storage.ErrNotInitialized
	}
	return nil
}

func (s *Store) Close() error {
	if s.rdb == nil {
		return nil
	}
	err := s.rdb.Close()
	s.rdb = nil
	return err
}

func (s *Store) Read(key string) ([]byte, bool, error) {
	if s.rdb == nil {
		return nil, false, storage.ErrNotLoaded
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	value, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Write(key string, value []byte) error {
	if s.rdb == nil {
		return storage.ErrNotLoaded
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.rdb.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// GetConfigPath returns the URL with any password masked
func (s *Store) GetConfigPath() string {
	u, err := url.Parse(s.url)
	if err != nil {
		return "redis"
	}
	return u.Redacted()
}

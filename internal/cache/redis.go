package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adelinv/replyscore/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Cache key format
const verdictKey = "eval:verdict:%s"

// RedisStore shares the verdict cache across instances. Retention maps
// onto the key TTL, so there is no janitor to run. The in-flight
// tracker stays process-local either way.
type RedisStore struct {
	client    *redis.Client
	retention time.Duration
	logger    *logrus.Logger
}

func NewRedisStore(client *redis.Client, retention time.Duration, logger *logrus.Logger) *RedisStore {
	return &RedisStore{
		client:    client,
		retention: retention,
		logger:    logger,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*models.Verdict, bool, error) {
	data, err := s.client.Get(ctx, fmt.Sprintf(verdictKey, key)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var verdict models.Verdict
	if err := json.Unmarshal([]byte(data), &verdict); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached verdict: %w", err)
	}
	return &verdict, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, verdict models.Verdict) error {
	data, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}
	return s.client.Set(ctx, fmt.Sprintf(verdictKey, key), data, s.retention).Err()
}

func (s *RedisStore) Has(ctx context.Context, key string) bool {
	n, err := s.client.Exists(ctx, fmt.Sprintf(verdictKey, key)).Result()
	if err != nil {
		s.logger.WithError(err).Warn("Redis exists check failed")
		return false
	}
	return n > 0
}

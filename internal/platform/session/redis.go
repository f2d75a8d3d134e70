package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/platform/logger"
)

// ConnectRedis creates a client and verifies it with a ping.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	logger.Default.Info("Successfully connected to Redis")
	return rdb, nil
}

func CloseRedis(rdb *redis.Client) {
	if rdb != nil {
		rdb.Close()
		logger.Default.Info("Redis connection closed")
	}
}

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// RedisStore keeps each session in one hash, session:<sid>, whose expiry is
// pushed forward on every write.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(sid string) string { return "session:" + sid }
func lockKey(name string) string   { return "lock:" + name }

func (s *RedisStore) Get(ctx context.Context, sid, key string, dst interface{}) (bool, error) {
	raw, err := s.rdb.HGet(ctx, sessionKey(sid), key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("RedisStore.Get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("RedisStore.Get decode %s: %w", key, err)
	}
	return true, nil
}

func (s *RedisStore) Set(ctx context.Context, sid, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("RedisStore.Set encode %s: %w", key, err)
	}
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, sessionKey(sid), key, raw)
	if s.ttl > 0 {
		pipe.Expire(ctx, sessionKey(sid), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("RedisStore.Set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sid, key string) error {
	if err := s.rdb.HDel(ctx, sessionKey(sid), key).Err(); err != nil {
		return fmt.Errorf("RedisStore.Delete %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Destroy(ctx context.Context, sid string) error {
	if err := s.rdb.Del(ctx, sessionKey(sid)).Err(); err != nil {
		return fmt.Errorf("RedisStore.Destroy: %w", err)
	}
	return nil
}

func (s *RedisStore) Lock(ctx context.Context, name string, ttl time.Duration) (func(), error) {
	token := uuid.NewString()
	key := lockKey(name)

	// SET key value NX PX milliseconds
	ok, err := s.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("RedisStore.Lock %s: %w", name, err)
	}
	if !ok {
		return nil, common.ErrSubmitInProgress
	}

	return func() {
		// The request context may already be cancelled when unlocking.
		deleted, err := releaseScript.Run(context.Background(), s.rdb, []string{key}, token).Int64()
		if err != nil {
			logger.Default.Error("failed to release lock", name, err)
		} else if deleted == 0 {
			logger.Default.Warn("lock expired before release", name)
		}
	}, nil
}

package feed

import (
	"context"
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/rs/zerolog"
)

// NewRedisPool builds the connection pool used by CachedSource.
func NewRedisPool(addr string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     3,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", addr)
		},
	}
}

// CachedSource keeps the last fetched document in redis for TTL. A redis failure is logged
// and the inner source is used directly.
type CachedSource struct {
	Inner Source
	Pool  *redis.Pool
	TTL   time.Duration
}

func (s *CachedSource) key() string {
	return "klaster/dataset/" + s.Inner.String()
}

func (s *CachedSource) Fetch(ctx context.Context) ([]byte, error) {
	sublog := zerolog.Ctx(ctx).With().Str("redis_key", s.key()).Logger()

	redisConn, err := s.Pool.GetContext(ctx)
	if err != nil {
		sublog.Error().Err(err).Msg("redis unavailable, fetching uncached")
		return s.Inner.Fetch(ctx)
	}
	defer redisConn.Close()

	data, err := redis.Bytes(redisConn.Do("GET", s.key()))
	if err == nil {
		sublog.Debug().Msg("redis cache hit")
		cacheHits.Inc()
		return data, nil
	}
	if !errors.Is(err, redis.ErrNil) {
		sublog.Error().Err(err).Msg("failed to read from redis")
	}
	cacheMisses.Inc()

	data, err = s.Inner.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	seconds := int(s.TTL / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	if _, err := redisConn.Do("SET", s.key(), data, "EX", seconds); err != nil {
		sublog.Error().Err(err).Msg("failed to save to redis")
	}
	return data, nil
}

func (s *CachedSource) String() string { return s.Inner.String() }

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater"
	"github.com/go-pkgz/repeater/strategy"
	"github.com/redis/go-redis/v9"
)

// RedisParams defines connection to redis
type RedisParams struct {
	Addr         string
	Password     string
	DB           int
	Prefix       string        // prepended to every key
	PingAttempts int           // how many times to ping before giving up
	PingDelay    time.Duration // delay between pings
}

// Redis implements key-value storage on redis strings
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis connects to redis and waits for it to answer ping.
// Values never expire.
func NewRedis(ctx context.Context, p RedisParams) (*Redis, error) {
	if p.Addr == "" {
		return nil, errors.New("redis address is empty")
	}
	if p.PingAttempts <= 0 {
		p.PingAttempts = 1
	}

	client := redis.NewClient(&redis.Options{Addr: p.Addr, Password: p.Password, DB: p.DB})
	rptr := repeater.New(&strategy.FixedDelay{Repeats: p.PingAttempts, Delay: p.PingDelay})
	err := rptr.Do(ctx, func() error {
		if e := client.Ping(ctx).Err(); e != nil {
			log.Printf("[DEBUG] redis %s not ready, %v", p.Addr, e)
			return e
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s is not available: %w", p.Addr, err)
	}
	log.Printf("[DEBUG] redis store at %s, db %d, prefix %q", p.Addr, p.DB, p.Prefix)
	return newRedisWithClient(client, p.Prefix), nil
}

func newRedisWithClient(client redis.UniversalClient, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// Get returns value for the key, nil if key doesn't exist
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	res, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return res, nil
}

// Set stores value for the key without expiration
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes the key
func (r *Redis) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close closes redis client
func (r *Redis) Close() error {
	return r.client.Close()
}

// Package redislock provides a single-holder lease on a redis key so that only
// one replica runs a periodic job at a time.
package redislock

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

type Locker struct {
	rdb    *redis.Client
	prefix string
}

func New(rdb *redis.Client, prefix string) *Locker {
	if prefix == "" {
		prefix = "lock"
	}
	return &Locker{rdb: rdb, prefix: prefix}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// Acquire tries once to take name for ttl. The returned release func only
// deletes the key while this holder still owns it.
func (l *Locker) Acquire(ctx context.Context, name string, ttl time.Duration) (release func(), ok bool, err error) {
	key := l.prefix + ":" + name
	token := uuid.NewString()

	ok, err = l.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	return func() {
		// the caller's context may already be cancelled at release time
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.rdb, []string{key}, token).Err()
	}, true, nil
}

package queue

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
)

var releaseScript = rueidis.NewLuaScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client rueidis.Client
	prefix string
	owner  string

	mu   sync.Mutex
	held map[string]struct{}
}

func NewRedisLocker(client rueidis.Client, prefix string) *RedisLocker {
	return &RedisLocker{
		client: client,
		prefix: prefix,
		owner:  uuid.NewString(),
		held:   make(map[string]struct{}),
	}
}

func (r *RedisLocker) key(name string) string {
	return r.prefix + ":lock:" + name
}

func (r *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	seconds := int64(ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	cmd := r.client.B().Set().Key(r.key(key)).Value(r.owner).Nx().ExSeconds(seconds).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return false, nil
		}
		return false, err
	}

	r.mu.Lock()
	r.held[key] = struct{}{}
	r.mu.Unlock()
	return true, nil
}

// Release only deletes the lease if this instance still owns it.
func (r *RedisLocker) Release(ctx context.Context, key string) error {
	r.mu.Lock()
	_, ok := r.held[key]
	delete(r.held, key)
	r.mu.Unlock()
	if !ok {
		return nil
	}

	return releaseScript.Exec(ctx, r.client, []string{r.key(key)}, []string{r.owner}).Error()
}

package queue

import (
	"context"

	"github.com/redis/rueidis"
)

// RedisNotifier shares revisions between API instances and publishes every bump on
// <prefix>:changes for listeners that prefer push.
type RedisNotifier struct {
	client rueidis.Client
	prefix string
}

func NewRedisNotifier(client rueidis.Client, prefix string) *RedisNotifier {
	return &RedisNotifier{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisNotifier) revisionKey(topic string) string {
	return r.prefix + ":rev:" + topic
}

func (r *RedisNotifier) Channel() string {
	return r.prefix + ":changes"
}

func (r *RedisNotifier) Notify(ctx context.Context, topic string) error {
	cmd := r.client.B().Incr().Key(r.revisionKey(topic)).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return err
	}

	pub := r.client.B().Publish().Channel(r.Channel()).Message(topic).Build()
	return r.client.Do(ctx, pub).Error()
}

func (r *RedisNotifier) Revisions(ctx context.Context, topics []string) (map[string]int64, error) {
	out := make(map[string]int64, len(topics))
	if len(topics) == 0 {
		return out, nil
	}

	keys := make([]string, len(topics))
	for i, topic := range topics {
		keys[i] = r.revisionKey(topic)
	}

	values, err := r.client.Do(ctx, r.client.B().Mget().Key(keys...).Build()).ToArray()
	if err != nil {
		return nil, err
	}

	for i, msg := range values {
		rev, err := msg.AsInt64()
		if err != nil {
			if rueidis.IsRedisNil(err) {
				out[topics[i]] = 0
				continue
			}
			return nil, err
		}
		out[topics[i]] = rev
	}
	return out, nil
}

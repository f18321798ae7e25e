package config

import (
	"github.com/redis/rueidis"
	log "github.com/sirupsen/logrus"
)

// NewRedisClient returns nil when Redis is disabled; callers fall back to in-process implementations.
func NewRedisClient(cfg Config) rueidis.Client {
	if !cfg.RedisEnabled {
		return nil
	}

	redisClient, err := rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress: []string{cfg.RedisAddr},
		},
	)
	if err != nil {
		log.Fatalf("failed to create redis client: %v", err)
	}

	return redisClient
}

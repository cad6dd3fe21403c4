package cache

import (
	"context"
	"fmt"
	"time"

	"cine-taquilla/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects the redis client used as a read cache for third-party
// movie-metadata lookups.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis at %s: %w", config.Addr, err)
	}

	return client, nil
}

package storage

import (
	"context"
	"fmt"
	"net"

	"github.com/redis/go-redis/v9"
)

type RedisStorage struct {
	Connection *redis.Client
}

func NewRedisStorage(ctx context.Context, host, port string) (*RedisStorage, error) {
	conn := redis.NewClient(&redis.Options{
		Addr: net.JoinHostPort(host, port),
	})

	_, err := conn.Ping(ctx).Result()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStorage{Connection: conn}, nil
}

func (that *RedisStorage) Close() error {
	return that.Connection.Close()
}

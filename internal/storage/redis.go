package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotInitialised = errors.New("storage not initialised")

var Rdb *redis.Client

const pingTimeout = 5 * time.Second

// InitRedis 连接 redis 并 ping 一次；失败时不保留客户端
func InitRedis(ctx context.Context, addr, password string, db int) error {
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return err
	}
	Rdb = c
	return nil
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"text2learn_backend/internal/config"
	"text2learn_backend/pkg/logger"
)

// InitRedis 建立 Redis 连接。验证码与课程层级缓存都依赖它，
// 启动时连不上直接失败而不是静默降级。
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     50,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Log.Info("Redis connection established")
	return rdb, nil
}

package database

import (
	"context"
	"fmt"

	"student-activity-system/config"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// InitRedis 初始化 Redis 客户端，连接失败不阻塞启动
// Redis 仅用于二维码令牌记录与重复扫码计数，不可用时相关功能自动降级
func InitRedis() {
	cfg := config.Get().Redis
	if cfg.Host == "" {
		return
	}
	RDB = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := RDB.Ping(context.Background()).Err(); err != nil {
		RDB = nil
	}
}

package main

import (
	"fmt"

	"github.com/flyingCloudRain/tradeview-sub001/internal/api"
	"github.com/flyingCloudRain/tradeview-sub001/internal/scheduler"
	"github.com/flyingCloudRain/tradeview-sub001/pkg/config"
	redis "github.com/go-redis/redis/v8"
)

// App 进程内的两个长生命周期组件
type App struct {
	Scheduler *scheduler.Scheduler
	Server    *api.Server
}

func NewApp(sched *scheduler.Scheduler, server *api.Server) *App {
	return &App{Scheduler: sched, Server: server}
}

// ProvideRedisClient builds a redis client from typed config.
// Returns nil when redis is disabled.
func ProvideRedisClient(cfg config.Config) *redis.Client {
	if !cfg.Redis.Enabled {
		return nil
	}
	addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/api"
	"github.com/flyingCloudRain/tradeview-sub001/internal/api/handler"
	"github.com/flyingCloudRain/tradeview-sub001/internal/infra/persistence/executionrepo"
	"github.com/flyingCloudRain/tradeview-sub001/internal/orm"
	"github.com/flyingCloudRain/tradeview-sub001/internal/provider"
	"github.com/flyingCloudRain/tradeview-sub001/internal/scheduler"
	"github.com/flyingCloudRain/tradeview-sub001/internal/service"
	"github.com/flyingCloudRain/tradeview-sub001/internal/syncjob"
	"github.com/flyingCloudRain/tradeview-sub001/pkg/config"
	"github.com/flyingCloudRain/tradeview-sub001/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// 解析命令行参数
	var configPath string
	flag.StringVar(&configPath, "config", "configs/config.yaml", "path to config file")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 创建日志器
	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting task sync service",
		zap.Strings("sync_specs", cfg.Scheduler.SyncSpecs))

	// 创建存储
	storageConfig := orm.Config{
		Host:                  cfg.Database.Host,
		Port:                  cfg.Database.Port,
		Database:              cfg.Database.Database,
		User:                  cfg.Database.User,
		Password:              cfg.Database.Password,
		MaxConnections:        cfg.Database.MaxConnections,
		MaxIdleConnections:    cfg.Database.MaxIdleConnections,
		ConnectionMaxLifetime: cfg.Database.ConnectionMaxLifetime,
	}

	db, err := orm.New(storageConfig)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// 创建repositories与任务注册表
	executionRepo := executionrepo.NewMysqlRepositoryImpl(db.DB())
	providerClient := provider.NewClient(*cfg, zapLogger)
	syncer := syncjob.NewSyncer(db.DB(), providerClient, zapLogger)
	registry := syncjob.NewRegistry(syncer)

	// 创建调度器
	guard := scheduler.NewGuard(executionRepo)
	runner := scheduler.NewRunner(*cfg, registry, executionRepo, guard, zapLogger)
	sched := scheduler.New(*cfg, registry, runner, executionRepo, zapLogger)

	if err := sched.Start(); err != nil {
		zapLogger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	// 创建API服务器
	rdb := ProvideRedisClient(*cfg)
	taskService := service.NewTaskService(registry, runner, executionRepo, rdb, zapLogger)
	taskHandler := handler.NewTaskHandler(taskService, zapLogger)
	apiServer := api.NewServer(taskHandler, zapLogger)

	// 启动HTTP服务器
	httpServer := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        apiServer.Router(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		zapLogger.Info("Starting API server",
			zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	zapLogger.Info("Shutting down...")

	// 优雅关闭HTTP服务器
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown API server", zap.Error(err))
	}

	// 停止调度器，等待在途任务落盘
	sched.Stop()

	zapLogger.Info("Shutdown complete")
}

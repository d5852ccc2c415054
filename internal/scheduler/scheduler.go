package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/execution"
	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/job"
	"github.com/flyingCloudRain/tradeview-sub001/pkg/config"
	"github.com/flyingCloudRain/tradeview-sub001/pkg/tradingday"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler 进程内定时触发器
// 在配置的触发点把所有已注册的同步任务提交给Runner，各类型互相独立并发执行，
// 同类型忙碌时跳过本次触发，不补偿错过的触发
type Scheduler struct {
	config   config.SchedulerConfig
	registry *job.Registry
	runner   *Runner
	repo     execution.Repo
	logger   *zap.Logger
	cron     *cron.Cron
}

func New(
	cfg config.Config,
	registry *job.Registry,
	runner *Runner,
	repo execution.Repo,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		config:   cfg.Scheduler,
		registry: registry,
		runner:   runner,
		repo:     repo,
		logger:   logger,
		cron:     cron.New(cron.WithSeconds()),
	}
}

// Start 注册cron触发点并启动
func (s *Scheduler) Start() error {
	for _, spec := range s.config.SyncSpecs {
		entryID, err := s.cron.AddFunc(spec, s.runDueJobs)
		if err != nil {
			return fmt.Errorf("failed to add cron spec %q: %w", spec, err)
		}
		s.logger.Info("scheduled sync trigger",
			zap.String("cron", spec),
			zap.Int("entry_id", int(entryID)))
	}

	if s.config.JanitorInterval > 0 {
		spec := fmt.Sprintf("@every %s", s.config.JanitorInterval)
		if _, err := s.cron.AddFunc(spec, s.reconcileOrphans); err != nil {
			return fmt.Errorf("failed to add janitor entry: %w", err)
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started",
		zap.Int("sync_triggers", len(s.config.SyncSpecs)),
		zap.Int("task_types", len(s.registry.List())))
	return nil
}

// Stop 停止触发并等待在途任务完成
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.runner.Wait()
	s.logger.Info("scheduler stopped")
}

// runDueJobs 一次触发执行所有注册类型，目标日期取最近交易日
func (s *Scheduler) runDueJobs() {
	ctx := context.Background()
	targetDate := tradingday.MostRecent(time.Now())

	s.logger.Info("sync trigger fired",
		zap.String("target_date", tradingday.Format(targetDate)))

	for _, def := range s.registry.List() {
		exec, err := s.runner.Prepare(ctx, def.Type, targetDate, execution.TriggeredByScheduler)
		if err != nil {
			if errors.Is(err, ErrTaskBusy) {
				s.logger.Info("skipping sync task, previous execution still in flight",
					zap.String("task_type", def.Type))
				continue
			}
			s.logger.Error("failed to prepare sync task",
				zap.String("task_type", def.Type),
				zap.Error(err))
			continue
		}
		s.runner.Dispatch(exec)
	}
}

// reconcileOrphans 将超过宽限期仍未终态的记录标记为失败，
// 避免进程崩溃后该类型被永久判定为忙碌
func (s *Scheduler) reconcileOrphans() {
	ctx := context.Background()
	cutoff := time.Now().Add(-s.config.JanitorGrace)

	n, err := s.repo.MarkOrphansFailed(ctx, cutoff, "orphaned: execution did not reach a terminal state within the grace period")
	if err != nil {
		s.logger.Error("failed to reconcile orphaned executions", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Warn("reconciled orphaned executions",
			zap.Int64("count", n),
			zap.Time("cutoff", cutoff))
	}
}

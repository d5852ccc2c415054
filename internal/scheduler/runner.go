package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/execution"
	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/job"
	"github.com/flyingCloudRain/tradeview-sub001/pkg/config"
	"github.com/flyingCloudRain/tradeview-sub001/pkg/tradingday"
	"go.uber.org/zap"
)

// Runner 执行单个同步任务并维护执行记录的状态机
// pending→running→{success,failed}，任何一次调用都保证以持久化的终态结束
type Runner struct {
	registry *job.Registry
	repo     execution.Repo
	guard    *Guard
	logger   *zap.Logger
	timeout  time.Duration

	wg sync.WaitGroup
}

func NewRunner(
	cfg config.Config,
	registry *job.Registry,
	repo execution.Repo,
	guard *Guard,
	logger *zap.Logger,
) *Runner {
	return &Runner{
		registry: registry,
		repo:     repo,
		guard:    guard,
		logger:   logger,
		timeout:  cfg.Scheduler.JobTimeout,
	}
}

// Prepare 解析任务类型、获取执行权并创建pending记录
// 类型未注册或同类型忙碌时不创建任何记录
func (r *Runner) Prepare(ctx context.Context, taskType string, targetDate time.Time, triggeredBy execution.TriggeredBy) (*execution.TaskExecution, error) {
	def, err := r.registry.Resolve(taskType)
	if err != nil {
		return nil, err
	}

	if err := r.guard.TryAcquire(ctx, taskType); err != nil {
		return nil, err
	}

	exec := &execution.TaskExecution{
		TaskName:    def.Name,
		TaskType:    taskType,
		Status:      execution.TaskStatusPending,
		TriggeredBy: triggeredBy,
		TargetDate:  tradingday.Format(targetDate),
	}
	if err := r.repo.Create(ctx, exec); err != nil {
		r.guard.Release(taskType)
		return nil, fmt.Errorf("failed to create execution record: %w", err)
	}
	return exec, nil
}

// Execute 同步执行一条已Prepare的记录
// 同步函数的错误、超时、panic都被吸收为failed终态，不向上传播
func (r *Runner) Execute(exec *execution.TaskExecution) *execution.TaskExecution {
	defer r.guard.Release(exec.TaskType)

	ctx := context.Background()

	def, err := r.registry.Resolve(exec.TaskType)
	if err != nil {
		// Prepare已校验过，到这里属于注册表被改动的bug
		r.logger.Error("task type disappeared from registry",
			zap.String("task_type", exec.TaskType),
			zap.Uint64("execution_id", exec.ID))
		return r.failExecution(ctx, exec, err.Error())
	}

	updated, err := r.repo.MarkRunning(ctx, exec.ID)
	if err != nil {
		r.logger.Error("failed to mark execution running",
			zap.Uint64("execution_id", exec.ID),
			zap.Error(err))
		return exec
	}
	exec = updated

	r.logger.Info("executing sync task",
		zap.String("task_type", exec.TaskType),
		zap.String("task_name", exec.TaskName),
		zap.String("target_date", exec.TargetDate),
		zap.Uint64("execution_id", exec.ID))

	targetDate, err := tradingday.Parse(exec.TargetDate)
	if err != nil {
		return r.failExecution(ctx, exec, fmt.Sprintf("invalid target date %q: %v", exec.TargetDate, err))
	}

	result, err := r.invoke(def, targetDate)
	switch {
	case err != nil:
		return r.failExecution(ctx, exec, err.Error())
	case result != nil && !result.Success:
		return r.failExecutionWithResult(ctx, exec, result)
	default:
		return r.succeedExecution(ctx, exec, result)
	}
}

// Run Prepare+Execute的同步组合
func (r *Runner) Run(ctx context.Context, taskType string, targetDate time.Time, triggeredBy execution.TriggeredBy) (*execution.TaskExecution, error) {
	exec, err := r.Prepare(ctx, taskType, targetDate, triggeredBy)
	if err != nil {
		return nil, err
	}
	return r.Execute(exec), nil
}

// Dispatch 异步执行，调用方立即返回，完成情况通过查询执行记录观察
func (r *Runner) Dispatch(exec *execution.TaskExecution) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.Execute(exec)
	}()
}

// Wait 等待所有在途执行结束，用于优雅停机
func (r *Runner) Wait() {
	r.wg.Wait()
}

type invokeOutcome struct {
	result *job.SyncResult
	err    error
}

// invoke 在独立goroutine中调用同步函数，带墙钟时间预算
// 超时后记录即转终态，同步函数的后续返回值被丢弃
func (r *Runner) invoke(def job.Definition, targetDate time.Time) (*job.SyncResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	done := make(chan invokeOutcome, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- invokeOutcome{err: fmt.Errorf("sync task panicked: %v", rec)}
			}
		}()
		result, err := def.Sync(ctx, targetDate)
		done <- invokeOutcome{result: result, err: err}
	}()

	select {
	case outcome := <-done:
		return outcome.result, outcome.err
	case <-ctx.Done():
		return nil, fmt.Errorf("execution timeout after %s", r.timeout)
	}
}

func (r *Runner) succeedExecution(ctx context.Context, exec *execution.TaskExecution, result *job.SyncResult) *execution.TaskExecution {
	updated, err := r.repo.MarkTerminal(ctx, exec.ID, execution.TaskStatusSuccess, resultPayload(result), "")
	if err != nil {
		r.logger.Error("failed to mark execution success",
			zap.Uint64("execution_id", exec.ID),
			zap.Error(err))
		return exec
	}
	r.logger.Info("sync task succeeded",
		zap.String("task_type", exec.TaskType),
		zap.Uint64("execution_id", exec.ID),
		zap.String("duration", updated.Duration))
	return updated
}

func (r *Runner) failExecution(ctx context.Context, exec *execution.TaskExecution, reason string) *execution.TaskExecution {
	updated, err := r.repo.MarkTerminal(ctx, exec.ID, execution.TaskStatusFailed, nil, reason)
	if err != nil {
		r.logger.Error("failed to mark execution failed",
			zap.Uint64("execution_id", exec.ID),
			zap.Error(err))
		return exec
	}
	r.logger.Error("sync task failed",
		zap.String("task_type", exec.TaskType),
		zap.Uint64("execution_id", exec.ID),
		zap.String("reason", reason))
	return updated
}

func (r *Runner) failExecutionWithResult(ctx context.Context, exec *execution.TaskExecution, result *job.SyncResult) *execution.TaskExecution {
	reason := result.Error
	if reason == "" {
		reason = result.Message
	}
	updated, err := r.repo.MarkTerminal(ctx, exec.ID, execution.TaskStatusFailed, resultPayload(result), reason)
	if err != nil {
		r.logger.Error("failed to mark execution failed",
			zap.Uint64("execution_id", exec.ID),
			zap.Error(err))
		return exec
	}
	r.logger.Error("sync task reported failure",
		zap.String("task_type", exec.TaskType),
		zap.Uint64("execution_id", exec.ID),
		zap.String("reason", reason))
	return updated
}

func resultPayload(result *job.SyncResult) map[string]any {
	if result == nil {
		return nil
	}
	payload := map[string]any{
		"success": result.Success,
		"message": result.Message,
		"count":   result.Count,
	}
	if result.Error != "" {
		payload["error"] = result.Error
	}
	return payload
}

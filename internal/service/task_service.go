package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/execution"
	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/job"
	"github.com/flyingCloudRain/tradeview-sub001/internal/scheduler"
	"github.com/flyingCloudRain/tradeview-sub001/pkg/tradingday"
	redis "github.com/go-redis/redis/v8"
	"github.com/google/wire"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

var Provider = wire.NewSet(NewTaskService)

const (
	summaryCacheKey = "tradeview:task_status_summary"
	summaryCacheTTL = 10 * time.Second
)

// ITaskService 任务管理门面，HTTP层只依赖这里
type ITaskService interface {
	// RunTasks 手动触发，类型为空表示全部注册类型
	// 每个类型独立创建记录并异步执行，调用方不等待完成
	RunTasks(ctx context.Context, taskTypes []string, targetDate string) (*RunResult, error)
	ListExecutions(ctx context.Context, query ExecutionQuery) ([]*execution.TaskExecution, int64, error)
	GetExecution(ctx context.Context, id uint64) (*execution.TaskExecution, error)
	StatusSummary(ctx context.Context) (map[string]*execution.TypeSummary, error)
	TaskTypes() []job.Definition
}

type ExecutionQuery struct {
	TaskType string
	Status   string
	TaskName string
	Page     int
	PageSize int
}

type SubmittedExecution struct {
	TaskType    string `json:"task_type"`
	ExecutionID uint64 `json:"execution_id"`
}

type SkippedTask struct {
	TaskType string `json:"task_type"`
	Reason   string `json:"reason"`
}

// RunResult 手动触发的提交结果，Skipped为忙碌冲突的类型
type RunResult struct {
	TargetDate string               `json:"target_date"`
	Submitted  []SubmittedExecution `json:"submitted"`
	Skipped    []SkippedTask        `json:"skipped"`
}

type TaskService struct {
	registry *job.Registry
	runner   *scheduler.Runner
	repo     execution.Repo
	rdb      *redis.Client
	logger   *zap.Logger
}

// NewTaskService rdb可为nil，此时状态汇总不走缓存
func NewTaskService(
	registry *job.Registry,
	runner *scheduler.Runner,
	repo execution.Repo,
	rdb *redis.Client,
	logger *zap.Logger,
) ITaskService {
	return &TaskService{
		registry: registry,
		runner:   runner,
		repo:     repo,
		rdb:      rdb,
		logger:   logger,
	}
}

func (s *TaskService) RunTasks(ctx context.Context, taskTypes []string, targetDate string) (*RunResult, error) {
	// 先整体校验，任何一个类型未注册都不提交
	if len(taskTypes) == 0 {
		for _, def := range s.registry.List() {
			taskTypes = append(taskTypes, def.Type)
		}
	} else {
		for _, t := range taskTypes {
			if _, err := s.registry.Resolve(t); err != nil {
				return nil, err
			}
		}
	}

	date, err := s.resolveTargetDate(targetDate)
	if err != nil {
		return nil, err
	}

	result := &RunResult{TargetDate: tradingday.Format(date)}
	for _, taskType := range taskTypes {
		exec, err := s.runner.Prepare(ctx, taskType, date, execution.TriggeredByManual)
		if err != nil {
			if errors.Is(err, scheduler.ErrTaskBusy) {
				result.Skipped = append(result.Skipped, SkippedTask{
					TaskType: taskType,
					Reason:   "already running",
				})
				continue
			}
			return nil, err
		}
		s.runner.Dispatch(exec)
		result.Submitted = append(result.Submitted, SubmittedExecution{
			TaskType:    taskType,
			ExecutionID: exec.ID,
		})
	}

	s.logger.Info("manual run submitted",
		zap.String("target_date", result.TargetDate),
		zap.Int("submitted", len(result.Submitted)),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

func (s *TaskService) resolveTargetDate(targetDate string) (time.Time, error) {
	if targetDate == "" {
		return tradingday.MostRecent(time.Now()), nil
	}
	date, err := tradingday.Parse(targetDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid target_date %q, expected YYYY-MM-DD", targetDate)
	}
	return date, nil
}

func (s *TaskService) ListExecutions(ctx context.Context, query ExecutionQuery) ([]*execution.TaskExecution, int64, error) {
	filter := execution.ListFilter{}
	if query.TaskType != "" {
		filter.TaskType = mo.Some(query.TaskType)
	}
	if query.Status != "" {
		status := execution.TaskStatus(query.Status)
		if !status.Valid() {
			return nil, 0, fmt.Errorf("invalid status value: %s", query.Status)
		}
		filter.Status = mo.Some(status)
	}
	if query.TaskName != "" {
		filter.TaskName = mo.Some(query.TaskName)
	}
	return s.repo.List(ctx, filter, query.Page, query.PageSize)
}

func (s *TaskService) GetExecution(ctx context.Context, id uint64) (*execution.TaskExecution, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TaskService) StatusSummary(ctx context.Context) (map[string]*execution.TypeSummary, error) {
	if cached := s.summaryFromCache(ctx); cached != nil {
		return cached, nil
	}

	summary, err := s.repo.SummaryByType(ctx)
	if err != nil {
		return nil, err
	}

	// 没跑过的类型也要出现在面板上
	for _, def := range s.registry.List() {
		if _, ok := summary[def.Type]; !ok {
			summary[def.Type] = &execution.TypeSummary{
				TaskName:   def.Name,
				LastStatus: execution.TaskStatusPending,
			}
		}
	}

	s.summaryToCache(ctx, summary)
	return summary, nil
}

func (s *TaskService) TaskTypes() []job.Definition {
	return s.registry.List()
}

func (s *TaskService) summaryFromCache(ctx context.Context) map[string]*execution.TypeSummary {
	if s.rdb == nil {
		return nil
	}
	data, err := s.rdb.Get(ctx, summaryCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var summary map[string]*execution.TypeSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil
	}
	return summary
}

func (s *TaskService) summaryToCache(ctx context.Context, summary map[string]*execution.TypeSummary) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, summaryCacheKey, data, summaryCacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache status summary", zap.Error(err))
	}
}

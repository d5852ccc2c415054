package execution

import (
	"context"
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/infra/persistence/commonrepo"
	"github.com/samber/mo"
)

type Repo interface {
	commonrepo.Transaction

	Create(ctx context.Context, exec *TaskExecution) error
	GetByID(ctx context.Context, id uint64) (*TaskExecution, error)

	// MarkRunning pending→running，写入start_time
	MarkRunning(ctx context.Context, id uint64) (*TaskExecution, error)
	// MarkTerminal running→success/failed，写入end_time与duration
	MarkTerminal(ctx context.Context, id uint64, status TaskStatus, result map[string]any, errorMessage string) (*TaskExecution, error)

	List(ctx context.Context, filter ListFilter, page, pageSize int) ([]*TaskExecution, int64, error)
	CountRunningByType(ctx context.Context, taskType string) (int64, error)
	SummaryByType(ctx context.Context) (map[string]*TypeSummary, error)

	// MarkOrphansFailed 将cutoff之前仍处于pending/running的记录标记为失败
	MarkOrphansFailed(ctx context.Context, cutoff time.Time, message string) (int64, error)
}

type ListFilter struct {
	TaskType mo.Option[string]
	Status   mo.Option[TaskStatus]
	TaskName mo.Option[string]
}

// TypeSummary 单个任务类型的状态汇总，用于监控面板
type TypeSummary struct {
	TaskName        string     `json:"task_name"`
	LastStatus      TaskStatus `json:"last_status"`
	LastRunTime     *time.Time `json:"last_run_time"`
	LastSuccessTime *time.Time `json:"last_success_time"`
	LastFailureTime *time.Time `json:"last_failure_time"`
	Duration        string     `json:"duration"`
	ErrorMessage    string     `json:"error_message"`
	RunningCount    int64      `json:"running_count"`
}

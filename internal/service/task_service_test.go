package service

import (
	"context"
	"testing"
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/execution"
	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/job"
	"github.com/flyingCloudRain/tradeview-sub001/internal/infra/persistence/executionrepo"
	"github.com/flyingCloudRain/tradeview-sub001/internal/scheduler"
	"github.com/flyingCloudRain/tradeview-sub001/pkg/config"
	"github.com/flyingCloudRain/tradeview-sub001/pkg/tradingday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type serviceFixture struct {
	svc    ITaskService
	runner *scheduler.Runner
	repo   execution.Repo
}

func setupService(t *testing.T, registry *job.Registry) *serviceFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&executionrepo.TaskExecution{}))
	repo := executionrepo.NewMysqlRepositoryImpl(db)

	guard := scheduler.NewGuard(repo)
	cfg := config.Config{
		Scheduler: config.SchedulerConfig{JobTimeout: 5 * time.Second},
	}
	runner := scheduler.NewRunner(cfg, registry, repo, guard, zap.NewNop())

	return &serviceFixture{
		svc:    NewTaskService(registry, runner, repo, nil, zap.NewNop()),
		runner: runner,
		repo:   repo,
	}
}

func fastRegistry() *job.Registry {
	registry := job.NewRegistry()
	registry.MustRegister("zt_pool", "涨停池数据同步", func(ctx context.Context, targetDate time.Time) (*job.SyncResult, error) {
		return job.SuccessResult("同步完成", 10), nil
	})
	registry.MustRegister("index", "大盘指数数据同步", func(ctx context.Context, targetDate time.Time) (*job.SyncResult, error) {
		return job.SuccessResult("同步完成", 3), nil
	})
	return registry
}

func TestRunTasksAllTypes(t *testing.T) {
	f := setupService(t, fastRegistry())
	ctx := context.Background()

	result, err := f.svc.RunTasks(ctx, nil, "2025-06-06")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-06", result.TargetDate)
	assert.Len(t, result.Submitted, 2)
	assert.Empty(t, result.Skipped)

	f.runner.Wait()

	items, total, err := f.svc.ListExecutions(ctx, ExecutionQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, item := range items {
		assert.Equal(t, execution.TaskStatusSuccess, item.Status)
		assert.Equal(t, "2025-06-06", item.TargetDate)
		assert.Equal(t, execution.TriggeredByManual, item.TriggeredBy)
	}
}

func TestRunTasksUnknownType(t *testing.T) {
	f := setupService(t, fastRegistry())
	ctx := context.Background()

	_, err := f.svc.RunTasks(ctx, []string{"zt_pool", "nope"}, "")
	assert.ErrorIs(t, err, job.ErrUnknownTaskType)

	// 整体校验失败时一个任务都不提交
	_, total, err := f.svc.ListExecutions(ctx, ExecutionQuery{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRunTasksInvalidTargetDate(t *testing.T) {
	f := setupService(t, fastRegistry())

	_, err := f.svc.RunTasks(context.Background(), []string{"zt_pool"}, "06/06/2025")
	assert.Error(t, err)
}

func TestRunTasksDefaultsToMostRecentTradingDay(t *testing.T) {
	f := setupService(t, fastRegistry())

	result, err := f.svc.RunTasks(context.Background(), []string{"zt_pool"}, "")
	require.NoError(t, err)
	assert.Equal(t, tradingday.Format(tradingday.MostRecent(time.Now())), result.TargetDate)

	f.runner.Wait()
}

func TestRunTasksSkipsBusyType(t *testing.T) {
	release := make(chan struct{})
	registry := job.NewRegistry()
	registry.MustRegister("slow", "慢任务", func(ctx context.Context, targetDate time.Time) (*job.SyncResult, error) {
		<-release
		return job.SuccessResult("ok", 1), nil
	})
	f := setupService(t, registry)
	ctx := context.Background()

	first, err := f.svc.RunTasks(ctx, []string{"slow"}, "")
	require.NoError(t, err)
	require.Len(t, first.Submitted, 1)

	second, err := f.svc.RunTasks(ctx, []string{"slow"}, "")
	require.NoError(t, err)
	assert.Empty(t, second.Submitted)
	require.Len(t, second.Skipped, 1)
	assert.Equal(t, "slow", second.Skipped[0].TaskType)
	assert.Equal(t, "already running", second.Skipped[0].Reason)

	close(release)
	f.runner.Wait()
}

func TestListExecutionsInvalidStatus(t *testing.T) {
	f := setupService(t, fastRegistry())

	_, _, err := f.svc.ListExecutions(context.Background(), ExecutionQuery{Status: "done"})
	assert.Error(t, err)
}

func TestGetExecutionNotFound(t *testing.T) {
	f := setupService(t, fastRegistry())

	_, err := f.svc.GetExecution(context.Background(), 12345)
	assert.ErrorIs(t, err, execution.ErrNotFound)
}

func TestStatusSummaryIncludesNeverRunTypes(t *testing.T) {
	f := setupService(t, fastRegistry())
	ctx := context.Background()

	// index从未跑过，汇总里也要有占位条目
	_, err := f.svc.RunTasks(ctx, []string{"zt_pool"}, "")
	require.NoError(t, err)
	f.runner.Wait()

	summary, err := f.svc.StatusSummary(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 2)

	zt := summary["zt_pool"]
	require.NotNil(t, zt)
	assert.Equal(t, execution.TaskStatusSuccess, zt.LastStatus)

	idx := summary["index"]
	require.NotNil(t, idx)
	assert.Equal(t, execution.TaskStatusPending, idx.LastStatus)
	assert.Equal(t, "大盘指数数据同步", idx.TaskName)
	assert.Nil(t, idx.LastRunTime)
}

func TestTaskTypes(t *testing.T) {
	f := setupService(t, fastRegistry())

	defs := f.svc.TaskTypes()
	require.Len(t, defs, 2)
	assert.Equal(t, "zt_pool", defs[0].Type)
	assert.Equal(t, "index", defs[1].Type)
}

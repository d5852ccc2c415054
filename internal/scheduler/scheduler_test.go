package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/execution"
	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/job"
	"github.com/flyingCloudRain/tradeview-sub001/pkg/config"
	"github.com/flyingCloudRain/tradeview-sub001/pkg/tradingday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestScheduler(t *testing.T, registry *job.Registry, cfg config.Config) (*Scheduler, execution.Repo) {
	t.Helper()

	repo := setupExecutionRepo(t)
	guard := NewGuard(repo)
	runner := NewRunner(cfg, registry, repo, guard, zap.NewNop())
	return New(cfg, registry, runner, repo, zap.NewNop()), repo
}

func TestRunDueJobsExecutesAllTypes(t *testing.T) {
	registry := job.NewRegistry()
	registry.MustRegister("zt_pool", "涨停池数据同步", func(ctx context.Context, targetDate time.Time) (*job.SyncResult, error) {
		return job.SuccessResult("ok", 2), nil
	})
	registry.MustRegister("index", "大盘指数数据同步", func(ctx context.Context, targetDate time.Time) (*job.SyncResult, error) {
		return job.SuccessResult("ok", 1), nil
	})

	cfg := config.Config{
		Scheduler: config.SchedulerConfig{JobTimeout: 5 * time.Second},
	}
	sched, repo := newTestScheduler(t, registry, cfg)

	sched.runDueJobs()
	sched.runner.Wait()

	ctx := context.Background()
	items, total, err := repo.List(ctx, execution.ListFilter{}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	expectedDate := tradingday.Format(tradingday.MostRecent(time.Now()))
	for _, item := range items {
		assert.Equal(t, execution.TaskStatusSuccess, item.Status)
		assert.Equal(t, execution.TriggeredByScheduler, item.TriggeredBy)
		assert.Equal(t, expectedDate, item.TargetDate)
	}
}

func TestRunDueJobsSkipsBusyTypeWithoutRecord(t *testing.T) {
	release := make(chan struct{})
	registry := job.NewRegistry()
	registry.MustRegister("slow", "慢任务", func(ctx context.Context, targetDate time.Time) (*job.SyncResult, error) {
		<-release
		return job.SuccessResult("ok", 1), nil
	})

	cfg := config.Config{
		Scheduler: config.SchedulerConfig{JobTimeout: 5 * time.Second},
	}
	sched, repo := newTestScheduler(t, registry, cfg)

	sched.runDueJobs()
	// 上一轮还在执行，本轮触发被跳过且不留pending记录
	sched.runDueJobs()

	close(release)
	sched.runner.Wait()

	_, total, err := repo.List(context.Background(), execution.ListFilter{}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestStartRejectsBadCronSpec(t *testing.T) {
	cfg := config.Config{
		Scheduler: config.SchedulerConfig{
			SyncSpecs:  []string{"not a cron spec"},
			JobTimeout: 5 * time.Second,
		},
	}
	sched, _ := newTestScheduler(t, job.NewRegistry(), cfg)

	assert.Error(t, sched.Start())
}

func TestStartAndStop(t *testing.T) {
	cfg := config.Config{
		Scheduler: config.SchedulerConfig{
			SyncSpecs:       []string{"0 0 16 * * *"},
			JobTimeout:      5 * time.Second,
			JanitorInterval: time.Minute,
			JanitorGrace:    time.Hour,
		},
	}
	sched, _ := newTestScheduler(t, job.NewRegistry(), cfg)

	require.NoError(t, sched.Start())
	sched.Stop()
}

func TestReconcileOrphans(t *testing.T) {
	cfg := config.Config{
		Scheduler: config.SchedulerConfig{
			JobTimeout: 5 * time.Second,
			// 负宽限期让cutoff落在未来，刚创建的记录立即算孤儿
			JanitorGrace: -time.Second,
		},
	}
	sched, repo := newTestScheduler(t, job.NewRegistry(), cfg)
	ctx := context.Background()

	stuck := &execution.TaskExecution{
		TaskName: "涨停池数据同步",
		TaskType: "zt_pool",
		Status:   execution.TaskStatusPending,
	}
	require.NoError(t, repo.Create(ctx, stuck))
	_, err := repo.MarkRunning(ctx, stuck.ID)
	require.NoError(t, err)

	sched.reconcileOrphans()

	got, err := repo.GetByID(ctx, stuck.ID)
	require.NoError(t, err)
	assert.Equal(t, execution.TaskStatusFailed, got.Status)
	assert.Contains(t, got.ErrorMessage, "orphaned")

	// 类型恢复可用
	count, err := repo.CountRunningByType(ctx, "zt_pool")
	require.NoError(t, err)
	assert.Zero(t, count)
}

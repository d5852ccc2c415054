package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/execution"
)

// Guard 保证同一任务类型同时刻至多一个执行
//
// 忙碌状态以存储为准（存在running状态的记录即为忙碌），进程内的lease
// 只用来封堵"记录尚未迁移到running"的窗口期。进程重启只丢lease不丢事实，
// 不需要额外的恢复逻辑
type Guard struct {
	mu     sync.Mutex
	leases map[string]struct{}
	repo   execution.Repo
}

func NewGuard(repo execution.Repo) *Guard {
	return &Guard{
		leases: make(map[string]struct{}),
		repo:   repo,
	}
}

// TryAcquire 获取执行权，忙碌返回ErrTaskBusy，不阻塞等待
func (g *Guard) TryAcquire(ctx context.Context, taskType string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, held := g.leases[taskType]; held {
		return fmt.Errorf("%w: %s", ErrTaskBusy, taskType)
	}

	count, err := g.repo.CountRunningByType(ctx, taskType)
	if err != nil {
		return fmt.Errorf("failed to check running executions: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", ErrTaskBusy, taskType)
	}

	g.leases[taskType] = struct{}{}
	return nil
}

// Release 终态记录写入后释放lease
func (g *Guard) Release(taskType string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.leases, taskType)
}

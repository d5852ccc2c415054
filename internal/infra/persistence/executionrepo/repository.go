package executionrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/flyingCloudRain/tradeview-sub001/internal/biz/execution"
	"github.com/flyingCloudRain/tradeview-sub001/internal/infra/persistence/commonrepo"
	"github.com/google/wire"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var Provider = wire.NewSet(NewMysqlRepositoryImpl)

type MysqlRepositoryImpl struct {
	commonrepo.DefaultRepo
}

func NewMysqlRepositoryImpl(db commonrepo.DB) domain.Repo {
	return &MysqlRepositoryImpl{
		DefaultRepo: commonrepo.NewDefaultRepo(db),
	}
}

func (r *MysqlRepositoryImpl) Create(ctx context.Context, exec *domain.TaskExecution) error {
	if exec.Status == "" {
		exec.Status = domain.TaskStatusPending
	}
	po := new(TaskExecution).FromDomain(exec)
	if err := r.Db(ctx).Create(po).Error; err != nil {
		return err
	}
	exec.ID = po.ID
	exec.CreatedAt = po.CreatedAt
	exec.UpdatedAt = po.UpdatedAt
	return nil
}

func (r *MysqlRepositoryImpl) GetByID(ctx context.Context, id uint64) (*domain.TaskExecution, error) {
	var po = new(TaskExecution)
	if err := r.Db(ctx).First(po, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id=%d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return po.ToDomain(), nil
}

// MarkRunning 带状态前置条件的单条UPDATE，保证并发读者不会看到半完成的迁移
func (r *MysqlRepositoryImpl) MarkRunning(ctx context.Context, id uint64) (*domain.TaskExecution, error) {
	now := time.Now()
	tx := r.Db(ctx).Model(&TaskExecution{}).
		Where("id = ? AND status = ?", id, domain.TaskStatusPending).
		Updates(map[string]any{
			"status":     domain.TaskStatusRunning,
			"start_time": now,
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, r.transitionError(ctx, id, domain.TaskStatusRunning)
	}
	return r.GetByID(ctx, id)
}

func (r *MysqlRepositoryImpl) MarkTerminal(ctx context.Context, id uint64, status domain.TaskStatus, result map[string]any, errorMessage string) (*domain.TaskExecution, error) {
	if !status.IsTerminal() {
		return nil, fmt.Errorf("%w: %s is not terminal", domain.ErrInvalidTransition, status)
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	values := map[string]any{
		"status":   status,
		"end_time": now,
	}
	if current.StartTime != nil {
		values["duration"] = domain.FormatDuration(*current.StartTime, now)
	}
	if result != nil {
		values["result"] = datatypes.JSONMap(result)
	}
	if errorMessage != "" {
		values["error_message"] = errorMessage
	}

	tx := r.Db(ctx).Model(&TaskExecution{}).
		Where("id = ? AND status = ?", id, domain.TaskStatusRunning).
		Updates(values)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, r.transitionError(ctx, id, status)
	}
	return r.GetByID(ctx, id)
}

// transitionError 区分记录不存在和状态不满足前置条件
func (r *MysqlRepositoryImpl) transitionError(ctx context.Context, id uint64, target domain.TaskStatus) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: id=%d %s→%s", domain.ErrInvalidTransition, id, current.Status, target)
}

func (r *MysqlRepositoryImpl) List(ctx context.Context, filter domain.ListFilter, page, pageSize int) ([]*domain.TaskExecution, int64, error) {
	db := r.Db(ctx).Model(&TaskExecution{})

	if filter.TaskType.IsPresent() {
		db = db.Where("task_type = ?", filter.TaskType.MustGet())
	}
	if filter.Status.IsPresent() {
		db = db.Where("status = ?", filter.Status.MustGet())
	}
	if filter.TaskName.IsPresent() {
		db = db.Where("task_name = ?", filter.TaskName.MustGet())
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	var pos []*TaskExecution
	if err := db.Order("start_time DESC").Limit(pageSize).Offset((page - 1) * pageSize).Find(&pos).Error; err != nil {
		return nil, 0, err
	}

	domains := make([]*domain.TaskExecution, len(pos))
	for i := range pos {
		domains[i] = pos[i].ToDomain()
	}
	return domains, count, nil
}

func (r *MysqlRepositoryImpl) CountRunningByType(ctx context.Context, taskType string) (int64, error) {
	var count int64
	err := r.Db(ctx).Model(&TaskExecution{}).
		Where("task_type = ? AND status = ?", taskType, domain.TaskStatusRunning).
		Count(&count).Error
	return count, err
}

type typeTimeRow struct {
	TaskType string
	T        *time.Time
}

type typeCountRow struct {
	TaskType string
	C        int64
}

func (r *MysqlRepositoryImpl) SummaryByType(ctx context.Context) (map[string]*domain.TypeSummary, error) {
	// 每个任务类型的最新一条记录（按id取最大，id单调分配）
	var latest []*TaskExecution
	sub := r.Db(ctx).Model(&TaskExecution{}).Select("MAX(id)").Group("task_type")
	if err := r.Db(ctx).Model(&TaskExecution{}).Where("id IN (?)", sub).Find(&latest).Error; err != nil {
		return nil, err
	}

	summary := make(map[string]*domain.TypeSummary, len(latest))
	for _, po := range latest {
		summary[po.TaskType] = &domain.TypeSummary{
			TaskName:     po.TaskName,
			LastStatus:   po.Status,
			LastRunTime:  po.StartTime,
			Duration:     po.Duration,
			ErrorMessage: po.ErrorMessage,
		}
	}

	var successTimes []typeTimeRow
	if err := r.Db(ctx).Model(&TaskExecution{}).
		Select("task_type, MAX(start_time) AS t").
		Where("status = ?", domain.TaskStatusSuccess).
		Group("task_type").
		Find(&successTimes).Error; err != nil {
		return nil, err
	}
	for _, row := range successTimes {
		if s, ok := summary[row.TaskType]; ok {
			s.LastSuccessTime = row.T
		}
	}

	var failureTimes []typeTimeRow
	if err := r.Db(ctx).Model(&TaskExecution{}).
		Select("task_type, MAX(start_time) AS t").
		Where("status = ?", domain.TaskStatusFailed).
		Group("task_type").
		Find(&failureTimes).Error; err != nil {
		return nil, err
	}
	for _, row := range failureTimes {
		if s, ok := summary[row.TaskType]; ok {
			s.LastFailureTime = row.T
		}
	}

	var runningCounts []typeCountRow
	if err := r.Db(ctx).Model(&TaskExecution{}).
		Select("task_type, COUNT(*) AS c").
		Where("status = ?", domain.TaskStatusRunning).
		Group("task_type").
		Find(&runningCounts).Error; err != nil {
		return nil, err
	}
	for _, row := range runningCounts {
		if s, ok := summary[row.TaskType]; ok {
			s.RunningCount = row.C
		}
	}

	return summary, nil
}

func (r *MysqlRepositoryImpl) MarkOrphansFailed(ctx context.Context, cutoff time.Time, message string) (int64, error) {
	now := time.Now()
	tx := r.Db(ctx).Model(&TaskExecution{}).
		Where("status IN ? AND created_at < ?", []domain.TaskStatus{domain.TaskStatusPending, domain.TaskStatusRunning}, cutoff).
		Updates(map[string]any{
			"status":        domain.TaskStatusFailed,
			"end_time":      now,
			"error_message": message,
		})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

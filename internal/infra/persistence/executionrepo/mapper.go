package executionrepo

import (
	domain "github.com/flyingCloudRain/tradeview-sub001/internal/biz/execution"
	"github.com/flyingCloudRain/tradeview-sub001/internal/infra/persistence/commonrepo"
)

func (po *TaskExecution) ToDomain() *domain.TaskExecution {
	return &domain.TaskExecution{
		ID:           po.ID,
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    po.UpdatedAt,
		TaskName:     po.TaskName,
		TaskType:     po.TaskType,
		Status:       po.Status,
		StartTime:    po.StartTime,
		EndTime:      po.EndTime,
		Duration:     po.Duration,
		Result:       po.Result,
		ErrorMessage: po.ErrorMessage,
		TriggeredBy:  po.TriggeredBy,
		TargetDate:   po.TargetDate,
	}
}

func (po *TaskExecution) FromDomain(d *domain.TaskExecution) *TaskExecution {
	return &TaskExecution{
		Mode: commonrepo.Mode{
			ID:        d.ID,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
		TaskName:     d.TaskName,
		TaskType:     d.TaskType,
		Status:       d.Status,
		StartTime:    d.StartTime,
		EndTime:      d.EndTime,
		Duration:     d.Duration,
		Result:       d.Result,
		ErrorMessage: d.ErrorMessage,
		TriggeredBy:  d.TriggeredBy,
		TargetDate:   d.TargetDate,
	}
}

package mapper

import (
	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/execution"
	"github.com/flyingCloudRain/tradeview-sub001/internal/dto/response"
)

// ToExecutionResponse 领域实体转HTTP响应
func ToExecutionResponse(e *execution.TaskExecution) response.TaskExecutionResponse {
	return response.TaskExecutionResponse{
		ID:           e.ID,
		TaskName:     e.TaskName,
		TaskType:     e.TaskType,
		Status:       string(e.Status),
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		Duration:     e.Duration,
		Result:       e.Result,
		ErrorMessage: e.ErrorMessage,
		TriggeredBy:  string(e.TriggeredBy),
		TargetDate:   e.TargetDate,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// ToListExecutionsResponse 构造分页响应
func ToListExecutionsResponse(items []*execution.TaskExecution, total int64, page, pageSize int) response.ListExecutionsResponse {
	resp := response.ListExecutionsResponse{
		Items:    make([]response.TaskExecutionResponse, 0, len(items)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, ToExecutionResponse(item))
	}
	if pageSize > 0 {
		resp.TotalPages = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return resp
}

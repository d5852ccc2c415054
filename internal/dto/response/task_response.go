package response

import "time"

// TaskExecutionResponse 单条执行记录响应
type TaskExecutionResponse struct {
	ID           uint64         `json:"id"`
	TaskName     string         `json:"task_name"`
	TaskType     string         `json:"task_type"`
	Status       string         `json:"status"`
	StartTime    *time.Time     `json:"start_time"`
	EndTime      *time.Time     `json:"end_time"`
	Duration     string         `json:"duration,omitempty"`
	Result       map[string]any `json:"result,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	TriggeredBy  string         `json:"triggered_by"`
	TargetDate   string         `json:"target_date"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ListExecutionsResponse 分页列表响应
type ListExecutionsResponse struct {
	Items      []TaskExecutionResponse `json:"items"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"page_size"`
	TotalPages int64                   `json:"total_pages"`
}

// TaskTypeResponse 可触发的任务类型
type TaskTypeResponse struct {
	TaskType string `json:"task_type"`
	TaskName string `json:"task_name"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

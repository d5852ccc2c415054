package request

// RunTasksRequest 手动触发请求，task_types为空触发全部注册类型
type RunTasksRequest struct {
	TaskTypes  []string `json:"task_types"`
	TargetDate string   `json:"target_date"`
}

// ListExecutionsRequest 执行记录列表查询参数
type ListExecutionsRequest struct {
	TaskType string `form:"task_type"`
	Status   string `form:"status"`
	TaskName string `form:"task_name"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}

package execution

import (
	"fmt"
	"time"
)

// TaskExecution 一次同步任务的执行记录
type TaskExecution struct {
	ID        uint64
	CreatedAt time.Time
	UpdatedAt time.Time

	TaskName     string
	TaskType     string
	Status       TaskStatus
	StartTime    *time.Time
	EndTime      *time.Time
	Duration     string
	Result       map[string]any
	ErrorMessage string
	TriggeredBy  TriggeredBy
	TargetDate   string
}

// FormatDuration 执行时长，秒为单位保留两位小数
func FormatDuration(start, end time.Time) string {
	return fmt.Sprintf("%.2f", end.Sub(start).Seconds())
}

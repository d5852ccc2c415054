package executionrepo

import (
	"time"

	domain "github.com/flyingCloudRain/tradeview-sub001/internal/biz/execution"
	"github.com/flyingCloudRain/tradeview-sub001/internal/infra/persistence/commonrepo"
	"gorm.io/datatypes"
)

type TaskExecution struct {
	commonrepo.Mode
	TaskName     string             `gorm:"column:task_name;size:100;not null;index:idx_name_start,priority:1"`
	TaskType     string             `gorm:"column:task_type;size:50;not null;index:idx_type_status_start,priority:1"`
	Status       domain.TaskStatus  `gorm:"column:status;size:20;not null;index:idx_status_start,priority:1;index:idx_type_status_start,priority:2"`
	StartTime    *time.Time         `gorm:"column:start_time;index:idx_status_start,priority:2;index:idx_type_status_start,priority:3;index:idx_name_start,priority:2"`
	EndTime      *time.Time         `gorm:"column:end_time"`
	Duration     string             `gorm:"column:duration;size:20"`
	Result       datatypes.JSONMap  `gorm:"column:result;type:json"`
	ErrorMessage string             `gorm:"column:error_message;type:text"`
	TriggeredBy  domain.TriggeredBy `gorm:"column:triggered_by;size:20;not null"`
	TargetDate   string             `gorm:"column:target_date;size:10"`
}

func (TaskExecution) TableName() string {
	return "task_executions"
}

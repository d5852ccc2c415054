package scheduler

import "errors"

// ErrTaskBusy 同类型任务已有执行在途。调度触发遇到时跳过本次，
// 手动触发遇到时向调用方返回冲突
var ErrTaskBusy = errors.New("task is already running")

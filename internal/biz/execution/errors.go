package execution

import "errors"

// ErrNotFound 执行记录不存在
var ErrNotFound = errors.New("execution not found")

// ErrInvalidTransition 状态迁移不合法（pending→running→success/failed之外的迁移）
// 正常运行不应出现，出现说明存在并发bug
var ErrInvalidTransition = errors.New("invalid execution status transition")

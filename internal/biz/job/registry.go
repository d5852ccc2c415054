package job

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownTaskType 未注册的任务类型
var ErrUnknownTaskType = errors.New("unknown task type")

// SyncResult 同步任务的执行结果
// Success=false但err=nil表示业务层面的失败（例如上游返回明确的错误标记），
// 零行数据属于成功，Count=0
type SyncResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Count   int    `json:"count"`
}

func SuccessResult(message string, count int) *SyncResult {
	return &SyncResult{Success: true, Message: message, Count: count}
}

func FailureResult(errMsg string, message string) *SyncResult {
	return &SyncResult{Success: false, Error: errMsg, Message: message}
}

// SyncFunc 同步函数：针对目标交易日拉取并落库，同步执行到完成或返回错误
type SyncFunc func(ctx context.Context, targetDate time.Time) (*SyncResult, error)

// Definition 一个任务类型的注册信息
type Definition struct {
	Type string
	Name string
	Sync SyncFunc
}

// Registry 任务类型注册表，启动期写入后只读
type Registry struct {
	order []string
	defs  map[string]Definition
}

func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[string]Definition),
	}
}

func (r *Registry) Register(taskType, name string, fn SyncFunc) error {
	if _, ok := r.defs[taskType]; ok {
		return fmt.Errorf("task type %q already registered", taskType)
	}
	r.defs[taskType] = Definition{Type: taskType, Name: name, Sync: fn}
	r.order = append(r.order, taskType)
	return nil
}

// MustRegister 注册失败直接panic，用于启动期静态注册
func (r *Registry) MustRegister(taskType, name string, fn SyncFunc) {
	if err := r.Register(taskType, name, fn); err != nil {
		panic(err)
	}
}

// Resolve 按类型查找，未注册返回ErrUnknownTaskType
func (r *Registry) Resolve(taskType string) (Definition, error) {
	def, ok := r.defs[taskType]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownTaskType, taskType)
	}
	return def, nil
}

// List 按注册顺序返回所有任务类型
func (r *Registry) List() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, t := range r.order {
		defs = append(defs, r.defs[t])
	}
	return defs
}

// Names 类型到显示名称的映射
func (r *Registry) Names() map[string]string {
	names := make(map[string]string, len(r.defs))
	for t, def := range r.defs {
		names[t] = def.Name
	}
	return names
}

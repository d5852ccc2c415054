package handler

import (
	"net/http"
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/execution"
	"github.com/flyingCloudRain/tradeview-sub001/internal/dto/mapper"
	"github.com/flyingCloudRain/tradeview-sub001/internal/dto/request"
	"github.com/flyingCloudRain/tradeview-sub001/internal/dto/response"
	"github.com/flyingCloudRain/tradeview-sub001/internal/service"
	"github.com/flyingCloudRain/tradeview-sub001/pkg/tradingday"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// TaskHandler 任务管理HTTP处理器
type TaskHandler struct {
	svc    service.ITaskService
	logger *zap.Logger
}

func NewTaskHandler(svc service.ITaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, logger: logger}
}

// RunTasks 手动触发任务
// POST /api/v1/tasks/run
func (h *TaskHandler) RunTasks(c *gin.Context) {
	var req request.RunTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}
	if req.TargetDate != "" {
		if _, err := tradingday.Parse(req.TargetDate); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "INVALID_REQUEST",
				Message: "Invalid target_date, expected YYYY-MM-DD",
				Details: err.Error(),
			})
			return
		}
	}

	result, err := h.svc.RunTasks(c.Request.Context(), req.TaskTypes, req.TargetDate)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusAccepted, result)
}

// ListExecutions 执行记录分页列表
// GET /api/v1/tasks/executions
func (h *TaskHandler) ListExecutions(c *gin.Context) {
	var req request.ListExecutionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid query parameters",
			Details: err.Error(),
		})
		return
	}
	if req.Status != "" && !execution.TaskStatus(req.Status).Valid() {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid status value: " + req.Status,
		})
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	items, total, err := h.svc.ListExecutions(c.Request.Context(), service.ExecutionQuery{
		TaskType: req.TaskType,
		Status:   req.Status,
		TaskName: req.TaskName,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, mapper.ToListExecutionsResponse(items, total, req.Page, req.PageSize))
}

// GetExecution 执行记录详情
// GET /api/v1/tasks/executions/:id
func (h *TaskHandler) GetExecution(c *gin.Context) {
	id, err := cast.ToUint64E(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid execution id: " + c.Param("id"),
		})
		return
	}

	exec, err := h.svc.GetExecution(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, mapper.ToExecutionResponse(exec))
}

// StatusSummary 按任务类型聚合的最近状态
// GET /api/v1/tasks/status
func (h *TaskHandler) StatusSummary(c *gin.Context) {
	summary, err := h.svc.StatusSummary(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// TaskTypes 可触发的任务类型列表
// GET /api/v1/tasks/task-types
func (h *TaskHandler) TaskTypes(c *gin.Context) {
	defs := h.svc.TaskTypes()
	types := make([]response.TaskTypeResponse, 0, len(defs))
	for _, def := range defs {
		types = append(types, response.TaskTypeResponse{
			TaskType: def.Type,
			TaskName: def.Name,
		})
	}
	c.JSON(http.StatusOK, types)
}

// Health 健康检查
// GET /api/v1/health
func (h *TaskHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.HealthResponse{
		Status: "ok",
		Time:   time.Now(),
	})
}

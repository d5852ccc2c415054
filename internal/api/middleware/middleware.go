package middleware

import (
	"errors"
	"net/http"

	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/execution"
	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/job"
	"github.com/flyingCloudRain/tradeview-sub001/internal/dto/response"
	"github.com/flyingCloudRain/tradeview-sub001/internal/scheduler"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrorHandlingMiddleware 统一错误处理中间件
func ErrorHandlingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method))

				c.JSON(http.StatusInternalServerError, response.ErrorResponse{
					Code:    "INTERNAL_ERROR",
					Message: "An internal error occurred",
				})
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			logger.Error("request error",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))

			// 根据错误类型返回适当的响应
			switch {
			case errors.Is(err, execution.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, response.ErrorResponse{
					Code:    "NOT_FOUND",
					Message: "Resource not found",
				})
			case errors.Is(err, scheduler.ErrTaskBusy):
				c.JSON(http.StatusConflict, response.ErrorResponse{
					Code:    "TASK_BUSY",
					Message: "Task is already running",
					Details: err.Error(),
				})
			case errors.Is(err, job.ErrUnknownTaskType):
				c.JSON(http.StatusBadRequest, response.ErrorResponse{
					Code:    "UNKNOWN_TASK_TYPE",
					Message: "Unknown task type",
					Details: err.Error(),
				})
			default:
				c.JSON(http.StatusInternalServerError, response.ErrorResponse{
					Code:    "INTERNAL_ERROR",
					Message: "An error occurred while processing your request",
					Details: err.Error(),
				})
			}
		}
	}
}

// RequestID 为每个请求分配追踪id，透传调用方自带的值
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// Cors 跨域配置
func Cors() gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	return cors.New(config)
}

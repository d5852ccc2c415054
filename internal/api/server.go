package api

import (
	"github.com/flyingCloudRain/tradeview-sub001/internal/api/handler"
	"github.com/flyingCloudRain/tradeview-sub001/internal/api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"
)

var Provider = wire.NewSet(
	handler.NewTaskHandler,
	NewServer,
)

type Server struct {
	router *gin.Engine
}

func NewServer(taskHandler *handler.TaskHandler, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{}
	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.ErrorHandlingMiddleware(logger))
	s.router.Use(middleware.Cors())

	v1 := s.router.Group("/api/v1")
	{
		tasks := v1.Group("/tasks")
		{
			tasks.POST("/run", taskHandler.RunTasks)
			tasks.GET("/executions", taskHandler.ListExecutions)
			tasks.GET("/executions/:id", taskHandler.GetExecution)
			tasks.GET("/status", taskHandler.StatusSummary)
			tasks.GET("/task-types", taskHandler.TaskTypes)
		}
		v1.GET("/health", taskHandler.Health)
	}

	return s
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/api/handler"
	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/job"
	"github.com/flyingCloudRain/tradeview-sub001/internal/infra/persistence/executionrepo"
	"github.com/flyingCloudRain/tradeview-sub001/internal/scheduler"
	"github.com/flyingCloudRain/tradeview-sub001/internal/service"
	"github.com/flyingCloudRain/tradeview-sub001/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type apiFixture struct {
	router *gin.Engine
	runner *scheduler.Runner
}

func setupAPI(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&executionrepo.TaskExecution{}))
	repo := executionrepo.NewMysqlRepositoryImpl(db)

	registry := job.NewRegistry()
	registry.MustRegister("zt_pool", "涨停池数据同步", func(ctx context.Context, targetDate time.Time) (*job.SyncResult, error) {
		return job.SuccessResult("同步完成", 7), nil
	})
	registry.MustRegister("index", "大盘指数数据同步", func(ctx context.Context, targetDate time.Time) (*job.SyncResult, error) {
		return job.SuccessResult("同步完成", 1), nil
	})

	guard := scheduler.NewGuard(repo)
	cfg := config.Config{
		Scheduler: config.SchedulerConfig{JobTimeout: 5 * time.Second},
	}
	runner := scheduler.NewRunner(cfg, registry, repo, guard, zap.NewNop())
	svc := service.NewTaskService(registry, runner, repo, nil, zap.NewNop())
	server := NewServer(handler.NewTaskHandler(svc, zap.NewNop()), zap.NewNop())

	return &apiFixture{router: server.Router(), runner: runner}
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	f := setupAPI(t)

	w := doRequest(t, f.router, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestTaskTypesEndpoint(t *testing.T) {
	f := setupAPI(t)

	w := doRequest(t, f.router, http.MethodGet, "/api/v1/tasks/task-types", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var types []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &types))
	require.Len(t, types, 2)
	assert.Equal(t, "zt_pool", types[0]["task_type"])
	assert.Equal(t, "涨停池数据同步", types[0]["task_name"])
}

func TestRunTasksEndpoint(t *testing.T) {
	f := setupAPI(t)

	w := doRequest(t, f.router, http.MethodPost, "/api/v1/tasks/run", map[string]any{
		"task_types":  []string{"zt_pool"},
		"target_date": "2025-06-06",
	})
	require.Equal(t, http.StatusAccepted, w.Code)

	var result struct {
		TargetDate string `json:"target_date"`
		Submitted  []struct {
			TaskType    string `json:"task_type"`
			ExecutionID uint64 `json:"execution_id"`
		} `json:"submitted"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "2025-06-06", result.TargetDate)
	require.Len(t, result.Submitted, 1)
	require.NotZero(t, result.Submitted[0].ExecutionID)

	f.runner.Wait()

	// 提交的记录可以按id查到
	w = doRequest(t, f.router, http.MethodGet,
		fmt.Sprintf("/api/v1/tasks/executions/%d", result.Submitted[0].ExecutionID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"success"`)
}

func TestRunTasksUnknownTypeReturns400(t *testing.T) {
	f := setupAPI(t)

	w := doRequest(t, f.router, http.MethodPost, "/api/v1/tasks/run", map[string]any{
		"task_types": []string{"nope"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNKNOWN_TASK_TYPE")
}

func TestRunTasksInvalidDateReturns400(t *testing.T) {
	f := setupAPI(t)

	w := doRequest(t, f.router, http.MethodPost, "/api/v1/tasks/run", map[string]any{
		"target_date": "06/06/2025",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestListExecutionsEndpoint(t *testing.T) {
	f := setupAPI(t)

	w := doRequest(t, f.router, http.MethodPost, "/api/v1/tasks/run", map[string]any{
		"target_date": "2025-06-06",
	})
	require.Equal(t, http.StatusAccepted, w.Code)
	f.runner.Wait()

	w = doRequest(t, f.router, http.MethodGet, "/api/v1/tasks/executions?page=1&page_size=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items      []map[string]any `json:"items"`
		Total      int64            `json:"total"`
		Page       int              `json:"page"`
		PageSize   int              `json:"page_size"`
		TotalPages int64            `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 2, resp.Total)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 1, resp.Page)
	assert.EqualValues(t, 1, resp.TotalPages)

	// 过滤单个类型
	w = doRequest(t, f.router, http.MethodGet, "/api/v1/tasks/executions?task_type=index", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp.Total)
}

func TestListExecutionsInvalidStatusReturns400(t *testing.T) {
	f := setupAPI(t)

	w := doRequest(t, f.router, http.MethodGet, "/api/v1/tasks/executions?status=done", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetExecutionNotFoundReturns404(t *testing.T) {
	f := setupAPI(t)

	w := doRequest(t, f.router, http.MethodGet, "/api/v1/tasks/executions/99999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestGetExecutionInvalidIDReturns400(t *testing.T) {
	f := setupAPI(t)

	w := doRequest(t, f.router, http.MethodGet, "/api/v1/tasks/executions/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusSummaryEndpoint(t *testing.T) {
	f := setupAPI(t)

	w := doRequest(t, f.router, http.MethodGet, "/api/v1/tasks/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary map[string]map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Len(t, summary, 2)
	assert.Equal(t, "pending", summary["zt_pool"]["last_status"])
	assert.Equal(t, "pending", summary["index"]["last_status"])
}

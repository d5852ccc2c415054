package syncjob

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/models"
	"github.com/flyingCloudRain/tradeview-sub001/internal/provider"
	"github.com/flyingCloudRain/tradeview-sub001/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSyncer(t *testing.T, handler http.HandlerFunc) (*Syncer, *gorm.DB) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.ZtPool{}, &models.ZtPoolDown{}, &models.IndexHistory{}))

	cfg := config.Config{
		Provider: config.ProviderConfig{
			BaseURL:        srv.URL,
			RequestTimeout: 5 * time.Second,
			RatePerSecond:  100,
			RateBurst:      100,
		},
	}
	client := provider.NewClient(cfg, zap.NewNop())
	return NewSyncer(db, client, zap.NewNop()), db
}

func TestSyncZtPool(t *testing.T) {
	var gotPath, gotDate string
	s, db := setupSyncer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotDate = r.URL.Query().Get("date")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"stock_code":"000001","stock_name":"平安银行","change_percent":"10.02","latest_price":"12.50","consecutive_limit_count":2,"industry":"银行"},
			{"stock_code":"600519","stock_name":"贵州茅台","change_percent":"10.00","latest_price":"1800.00","consecutive_limit_count":1,"industry":"白酒"}
		]`))
	})

	targetDate := time.Date(2025, 6, 6, 0, 0, 0, 0, time.Local)
	result, err := s.SyncZtPool(context.Background(), targetDate)
	require.NoError(t, err)

	assert.Equal(t, "/api/public/stock_zt_pool_em", gotPath)
	assert.Equal(t, "20250606", gotDate)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Count)

	var count int64
	require.NoError(t, db.Model(&models.ZtPool{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// 重复同步同一天的数据整体替换，不累加
	result, err = s.SyncZtPool(context.Background(), targetDate)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)

	require.NoError(t, db.Model(&models.ZtPool{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestSyncZtPoolEmptyIsFailure(t *testing.T) {
	s, _ := setupSyncer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	result, err := s.SyncZtPool(context.Background(), time.Date(2025, 6, 6, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, "数据源返回空", result.Message)
	assert.Contains(t, result.Error, "2025-06-06")
}

func TestSyncZtPoolDownEmptyIsSuccess(t *testing.T) {
	s, _ := setupSyncer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	// 无跌停股属于正常情况
	result, err := s.SyncZtPoolDown(context.Background(), time.Now())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Zero(t, result.Count)
}

func TestSyncProviderHTTPError(t *testing.T) {
	s, _ := setupSyncer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := s.SyncZtPool(context.Background(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestSyncProviderBadJSON(t *testing.T) {
	s, _ := setupSyncer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	})

	_, err := s.SyncZtPool(context.Background(), time.Now())
	assert.Error(t, err)
}

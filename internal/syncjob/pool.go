package syncjob

import (
	"context"
	"fmt"
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/job"
	"github.com/flyingCloudRain/tradeview-sub001/internal/models"
	"github.com/flyingCloudRain/tradeview-sub001/internal/provider"
)

// SyncZtPool 同步涨停池
// 无数据按失败处理：交易日收盘后涨停池为空基本意味着接口异常
func (s *Syncer) SyncZtPool(ctx context.Context, targetDate time.Time) (*job.SyncResult, error) {
	var rows []models.ZtPool
	if err := s.client.FetchForDate(ctx, provider.EndpointZtPool, targetDate, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return job.FailureResult(
			fmt.Sprintf("未获取到 %s 的涨停池数据", targetDate.Format("2006-01-02")),
			"数据源返回空"), nil
	}
	for i := range rows {
		rows[i].Date = targetDate
	}
	count, err := replaceForDate(s.db, targetDate, rows)
	if err != nil {
		return nil, err
	}
	return job.SuccessResult("涨停池数据同步成功", count), nil
}

// SyncZtPoolDown 同步跌停池
func (s *Syncer) SyncZtPoolDown(ctx context.Context, targetDate time.Time) (*job.SyncResult, error) {
	var rows []models.ZtPoolDown
	if err := s.client.FetchForDate(ctx, provider.EndpointZtPoolDown, targetDate, &rows); err != nil {
		return nil, err
	}
	// 跌停池可以为空，无跌停股属于正常情况
	for i := range rows {
		rows[i].Date = targetDate
	}
	count, err := replaceForDate(s.db, targetDate, rows)
	if err != nil {
		return nil, err
	}
	return job.SuccessResult("跌停池数据同步成功", count), nil
}

// SyncIndex 同步大盘指数日线
func (s *Syncer) SyncIndex(ctx context.Context, targetDate time.Time) (*job.SyncResult, error) {
	var rows []models.IndexHistory
	if err := s.client.FetchForDate(ctx, provider.EndpointIndexDaily, targetDate, &rows); err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Date = targetDate
	}
	count, err := replaceForDate(s.db, targetDate, rows)
	if err != nil {
		return nil, err
	}
	return job.SuccessResult("大盘指数数据同步成功", count), nil
}

package syncjob

import (
	"context"
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/job"
	"github.com/flyingCloudRain/tradeview-sub001/internal/models"
	"github.com/flyingCloudRain/tradeview-sub001/internal/provider"
)

// conceptFundFlowLimit 概念榜只保留净流入前N的概念
const conceptFundFlowLimit = 200

// SyncStockFundFlow 同步个股资金流
func (s *Syncer) SyncStockFundFlow(ctx context.Context, targetDate time.Time) (*job.SyncResult, error) {
	var rows []models.StockFundFlow
	if err := s.client.FetchForDate(ctx, provider.EndpointStockFundFlow, targetDate, &rows); err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Date = targetDate
	}
	count, err := replaceForDate(s.db, targetDate, rows)
	if err != nil {
		return nil, err
	}
	return job.SuccessResult("个股资金流数据同步成功", count), nil
}

// SyncConceptFundFlow 同步概念资金流
func (s *Syncer) SyncConceptFundFlow(ctx context.Context, targetDate time.Time) (*job.SyncResult, error) {
	var rows []models.ConceptFundFlow
	if err := s.client.FetchForDate(ctx, provider.EndpointConceptFundFlow, targetDate, &rows); err != nil {
		return nil, err
	}
	if len(rows) > conceptFundFlowLimit {
		rows = rows[:conceptFundFlowLimit]
	}
	for i := range rows {
		rows[i].Date = targetDate
	}
	count, err := replaceForDate(s.db, targetDate, rows)
	if err != nil {
		return nil, err
	}
	return job.SuccessResult("概念资金流数据同步成功", count), nil
}

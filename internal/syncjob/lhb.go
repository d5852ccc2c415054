package syncjob

import (
	"context"
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/job"
	"github.com/flyingCloudRain/tradeview-sub001/internal/models"
	"github.com/flyingCloudRain/tradeview-sub001/internal/provider"
)

// SyncLhb 同步龙虎榜个股
func (s *Syncer) SyncLhb(ctx context.Context, targetDate time.Time) (*job.SyncResult, error) {
	var rows []models.LhbDetail
	if err := s.client.FetchForDate(ctx, provider.EndpointLhbDetail, targetDate, &rows); err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Date = targetDate
	}
	count, err := replaceForDate(s.db, targetDate, rows)
	if err != nil {
		return nil, err
	}
	return job.SuccessResult("龙虎榜数据同步成功", count), nil
}

// SyncLhbInstitution 同步龙虎榜机构席位明细
func (s *Syncer) SyncLhbInstitution(ctx context.Context, targetDate time.Time) (*job.SyncResult, error) {
	var rows []models.LhbInstitution
	if err := s.client.FetchForDate(ctx, provider.EndpointLhbInstitution, targetDate, &rows); err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Date = targetDate
	}
	count, err := replaceForDate(s.db, targetDate, rows)
	if err != nil {
		return nil, err
	}
	return job.SuccessResult("龙虎榜机构数据同步成功", count), nil
}

// SyncInstitutionTradingStats 同步机构每日交易统计
func (s *Syncer) SyncInstitutionTradingStats(ctx context.Context, targetDate time.Time) (*job.SyncResult, error) {
	var rows []models.InstitutionTradingStat
	if err := s.client.FetchForDate(ctx, provider.EndpointInstitutionStat, targetDate, &rows); err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Date = targetDate
	}
	count, err := replaceForDate(s.db, targetDate, rows)
	if err != nil {
		return nil, err
	}
	return job.SuccessResult("机构交易统计同步成功", count), nil
}

// SyncActiveBranch 同步活跃营业部
func (s *Syncer) SyncActiveBranch(ctx context.Context, targetDate time.Time) (*job.SyncResult, error) {
	var rows []models.ActiveBranch
	if err := s.client.FetchForDate(ctx, provider.EndpointActiveBranch, targetDate, &rows); err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Date = targetDate
	}
	count, err := replaceForDate(s.db, targetDate, rows)
	if err != nil {
		return nil, err
	}
	return job.SuccessResult("活跃营业部数据同步成功", count), nil
}

// SyncCapital 同步活跃机构（游资）
func (s *Syncer) SyncCapital(ctx context.Context, targetDate time.Time) (*job.SyncResult, error) {
	var rows []models.CapitalDetail
	if err := s.client.FetchForDate(ctx, provider.EndpointCapitalDetail, targetDate, &rows); err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Date = targetDate
	}
	count, err := replaceForDate(s.db, targetDate, rows)
	if err != nil {
		return nil, err
	}
	return job.SuccessResult("活跃机构数据同步成功", count), nil
}

package syncjob

import (
	"github.com/flyingCloudRain/tradeview-sub001/internal/biz/job"
	"github.com/google/wire"
)

var Provider = wire.NewSet(NewSyncer, NewRegistry)

// NewRegistry 注册全部同步任务类型，顺序即面板展示顺序
func NewRegistry(s *Syncer) *job.Registry {
	r := job.NewRegistry()
	r.MustRegister("lhb", "龙虎榜个股", s.SyncLhb)
	r.MustRegister("lhb_institution", "龙虎榜个股机构", s.SyncLhbInstitution)
	r.MustRegister("institution_trading_statistics", "机构每日交易统计数据同步", s.SyncInstitutionTradingStats)
	r.MustRegister("active_branch", "活跃营业部数据同步", s.SyncActiveBranch)
	r.MustRegister("zt_pool", "涨停池数据同步", s.SyncZtPool)
	r.MustRegister("zt_pool_down", "跌停池数据同步", s.SyncZtPoolDown)
	r.MustRegister("index", "大盘指数数据同步", s.SyncIndex)
	r.MustRegister("stock_fund_flow", "个股资金流数据同步", s.SyncStockFundFlow)
	r.MustRegister("fund_flow_concept", "概念资金流数据同步", s.SyncConceptFundFlow)
	r.MustRegister("capital", "活跃机构数据同步", s.SyncCapital)
	return r
}

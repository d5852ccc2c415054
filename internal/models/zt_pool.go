package models

import (
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/infra/persistence/commonrepo"
	"github.com/shopspring/decimal"
)

// ZtPool 涨停池表，每日收盘后全量替换当日数据
type ZtPool struct {
	commonrepo.Mode
	Date                  time.Time       `gorm:"column:date;type:date;not null;index:idx_zt_pool_date_code,priority:1" json:"date"`
	StockCode             string          `gorm:"column:stock_code;size:10;not null;index:idx_zt_pool_date_code,priority:2" json:"stock_code"`
	StockName             string          `gorm:"column:stock_name;size:50;not null" json:"stock_name"`
	ChangePercent         decimal.Decimal `gorm:"column:change_percent;type:decimal(5,2)" json:"change_percent"`
	LatestPrice           decimal.Decimal `gorm:"column:latest_price;type:decimal(10,2)" json:"latest_price"`
	TurnoverAmount        int64           `gorm:"column:turnover_amount" json:"turnover_amount"`
	CirculationMarketCap  decimal.Decimal `gorm:"column:circulation_market_value;type:decimal(15,2)" json:"circulation_market_value"`
	TotalMarketCap        decimal.Decimal `gorm:"column:total_market_value;type:decimal(15,2)" json:"total_market_value"`
	TurnoverRate          decimal.Decimal `gorm:"column:turnover_rate;type:decimal(5,2)" json:"turnover_rate"`
	LimitUpCapital        int64           `gorm:"column:limit_up_capital" json:"limit_up_capital"`
	FirstLimitTime        string          `gorm:"column:first_limit_time;size:8" json:"first_limit_time"`
	LastLimitTime         string          `gorm:"column:last_limit_time;size:8" json:"last_limit_time"`
	ExplosionCount        int             `gorm:"column:explosion_count;default:0" json:"explosion_count"`
	LimitUpStatistics     string          `gorm:"column:limit_up_statistics;type:text" json:"limit_up_statistics"`
	ConsecutiveLimitCount int             `gorm:"column:consecutive_limit_count" json:"consecutive_limit_count"`
	Industry              string          `gorm:"column:industry;size:100;index" json:"industry"`
	Concept               string          `gorm:"column:concept;type:text" json:"concept"`
	LimitUpReason         string          `gorm:"column:limit_up_reason;type:text" json:"limit_up_reason"`
}

func (ZtPool) TableName() string {
	return "zt_pool"
}

// ZtPoolDown 跌停池表，字段与涨停池一致
type ZtPoolDown struct {
	commonrepo.Mode
	Date                  time.Time       `gorm:"column:date;type:date;not null;index:idx_zt_pool_down_date_code,priority:1" json:"date"`
	StockCode             string          `gorm:"column:stock_code;size:10;not null;index:idx_zt_pool_down_date_code,priority:2" json:"stock_code"`
	StockName             string          `gorm:"column:stock_name;size:50;not null" json:"stock_name"`
	ChangePercent         decimal.Decimal `gorm:"column:change_percent;type:decimal(5,2)" json:"change_percent"`
	LatestPrice           decimal.Decimal `gorm:"column:latest_price;type:decimal(10,2)" json:"latest_price"`
	TurnoverAmount        int64           `gorm:"column:turnover_amount" json:"turnover_amount"`
	CirculationMarketCap  decimal.Decimal `gorm:"column:circulation_market_value;type:decimal(15,2)" json:"circulation_market_value"`
	TotalMarketCap        decimal.Decimal `gorm:"column:total_market_value;type:decimal(15,2)" json:"total_market_value"`
	TurnoverRate          decimal.Decimal `gorm:"column:turnover_rate;type:decimal(5,2)" json:"turnover_rate"`
	ExplosionCount        int             `gorm:"column:explosion_count;default:0" json:"explosion_count"`
	ConsecutiveLimitCount int             `gorm:"column:consecutive_limit_count" json:"consecutive_limit_count"`
	Industry              string          `gorm:"column:industry;size:100;index" json:"industry"`
}

func (ZtPoolDown) TableName() string {
	return "zt_pool_down"
}

package models

import (
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/infra/persistence/commonrepo"
	"github.com/shopspring/decimal"
)

// IndexHistory 大盘指数历史表
type IndexHistory struct {
	commonrepo.Mode
	Date          time.Time       `gorm:"column:date;type:date;not null;index:idx_index_history_date_code,priority:1" json:"date"`
	IndexCode     string          `gorm:"column:index_code;size:20;not null;index:idx_index_history_date_code,priority:2" json:"index_code"`
	IndexName     string          `gorm:"column:index_name;size:50;not null" json:"index_name"`
	ClosePrice    decimal.Decimal `gorm:"column:close_price;type:decimal(10,2)" json:"close_price"`
	ChangePercent decimal.Decimal `gorm:"column:change_percent;type:decimal(5,2)" json:"change_percent"`
	Volume        int64           `gorm:"column:volume" json:"volume"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(15,2)" json:"amount"`
}

func (IndexHistory) TableName() string {
	return "index_history"
}

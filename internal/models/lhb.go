package models

import (
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/infra/persistence/commonrepo"
	"github.com/shopspring/decimal"
)

// LhbDetail 龙虎榜详情表
type LhbDetail struct {
	commonrepo.Mode
	Date          time.Time       `gorm:"column:date;type:date;not null;index:idx_lhb_detail_date_code,priority:1" json:"date"`
	StockCode     string          `gorm:"column:stock_code;size:10;not null;index:idx_lhb_detail_date_code,priority:2" json:"stock_code"`
	StockName     string          `gorm:"column:stock_name;size:50;not null" json:"stock_name"`
	ClosePrice    decimal.Decimal `gorm:"column:close_price;type:decimal(10,2)" json:"close_price"`
	ChangePercent decimal.Decimal `gorm:"column:change_percent;type:decimal(5,2)" json:"change_percent"`
	NetBuyAmount  decimal.Decimal `gorm:"column:net_buy_amount;type:decimal(15,2)" json:"net_buy_amount"`
	BuyAmount     decimal.Decimal `gorm:"column:buy_amount;type:decimal(15,2)" json:"buy_amount"`
	SellAmount    decimal.Decimal `gorm:"column:sell_amount;type:decimal(15,2)" json:"sell_amount"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(15,2)" json:"total_amount"`
	TurnoverRate  decimal.Decimal `gorm:"column:turnover_rate;type:decimal(5,2)" json:"turnover_rate"`
	Concept       string          `gorm:"column:concept;size:200" json:"concept"`
}

func (LhbDetail) TableName() string {
	return "lhb_detail"
}

// LhbInstitution 龙虎榜机构明细表，flag区分买入/卖出席位
type LhbInstitution struct {
	commonrepo.Mode
	Date            time.Time       `gorm:"column:date;type:date;not null;index:idx_lhb_institution_date_code,priority:1" json:"date"`
	StockCode       string          `gorm:"column:stock_code;size:10;not null;index:idx_lhb_institution_date_code,priority:2" json:"stock_code"`
	InstitutionName string          `gorm:"column:institution_name;size:100" json:"institution_name"`
	BuyAmount       decimal.Decimal `gorm:"column:buy_amount;type:decimal(15,2)" json:"buy_amount"`
	SellAmount      decimal.Decimal `gorm:"column:sell_amount;type:decimal(15,2)" json:"sell_amount"`
	NetBuyAmount    decimal.Decimal `gorm:"column:net_buy_amount;type:decimal(15,2)" json:"net_buy_amount"`
	Flag            string          `gorm:"column:flag;size:10;index" json:"flag"`
}

func (LhbInstitution) TableName() string {
	return "lhb_institution"
}

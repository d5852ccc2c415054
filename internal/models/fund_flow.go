package models

import (
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/infra/persistence/commonrepo"
	"github.com/shopspring/decimal"
)

// StockFundFlow 个股资金流表
type StockFundFlow struct {
	commonrepo.Mode
	Date          time.Time       `gorm:"column:date;type:date;not null;index:idx_stock_fund_flow_date_stock,priority:1" json:"date"`
	StockCode     string          `gorm:"column:stock_code;size:10;not null;index:idx_stock_fund_flow_date_stock,priority:2" json:"stock_code"`
	StockName     string          `gorm:"column:stock_name;size:50;not null" json:"stock_name"`
	CurrentPrice   decimal.Decimal `gorm:"column:current_price;type:decimal(12,2)" json:"current_price"`
	ChangePercent  decimal.Decimal `gorm:"column:change_percent;type:decimal(8,2)" json:"change_percent"`
	TurnoverRate   decimal.Decimal `gorm:"column:turnover_rate;type:decimal(5,2)" json:"turnover_rate"`
	MainInflow     decimal.Decimal `gorm:"column:main_inflow;type:decimal(15,2)" json:"main_inflow"`
	MainOutflow    decimal.Decimal `gorm:"column:main_outflow;type:decimal(15,2)" json:"main_outflow"`
	MainNetInflow  decimal.Decimal `gorm:"column:main_net_inflow;type:decimal(15,2);index:idx_stock_fund_flow_date_net" json:"main_net_inflow"`
	TurnoverAmount decimal.Decimal `gorm:"column:turnover_amount;type:decimal(20,2)" json:"turnover_amount"`
	IsLimitUp      bool            `gorm:"column:is_limit_up;default:false" json:"is_limit_up"`
	IsLhb          bool            `gorm:"column:is_lhb;default:false" json:"is_lhb"`
}

func (StockFundFlow) TableName() string {
	return "stock_fund_flow"
}

// ConceptFundFlow 概念资金流表
type ConceptFundFlow struct {
	commonrepo.Mode
	Date                time.Time       `gorm:"column:date;type:date;not null;index:idx_concept_fund_flow_date,priority:1" json:"date"`
	Concept             string          `gorm:"column:concept;size:200;not null;index:idx_concept_fund_flow_date,priority:2" json:"concept"`
	IndexValue          decimal.Decimal `gorm:"column:index_value;type:decimal(12,2)" json:"index_value"`
	IndexChangePercent  decimal.Decimal `gorm:"column:index_change_percent;type:decimal(8,2)" json:"index_change_percent"`
	Inflow              decimal.Decimal `gorm:"column:inflow;type:decimal(16,2)" json:"inflow"`
	Outflow             decimal.Decimal `gorm:"column:outflow;type:decimal(16,2)" json:"outflow"`
	NetAmount           decimal.Decimal `gorm:"column:net_amount;type:decimal(16,2)" json:"net_amount"`
	StockCount          int             `gorm:"column:stock_count" json:"stock_count"`
	LeaderStock         string          `gorm:"column:leader_stock;size:100" json:"leader_stock"`
	LeaderChangePercent decimal.Decimal `gorm:"column:leader_change_percent;type:decimal(8,2)" json:"leader_change_percent"`
}

func (ConceptFundFlow) TableName() string {
	return "concept_fund_flow"
}

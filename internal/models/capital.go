package models

import (
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/infra/persistence/commonrepo"
	"github.com/shopspring/decimal"
)

// CapitalDetail 活跃机构（游资）详情表
type CapitalDetail struct {
	commonrepo.Mode
	Date         time.Time       `gorm:"column:date;type:date;not null;index:idx_capital_detail_date,priority:1" json:"date"`
	CapitalName  string          `gorm:"column:capital_name;size:100;not null;index:idx_capital_detail_date,priority:2" json:"capital_name"`
	StockCode    string          `gorm:"column:stock_code;size:10;not null;index" json:"stock_code"`
	StockName    string          `gorm:"column:stock_name;size:50;not null" json:"stock_name"`
	BuyAmount    decimal.Decimal `gorm:"column:buy_amount;type:decimal(15,2)" json:"buy_amount"`
	SellAmount   decimal.Decimal `gorm:"column:sell_amount;type:decimal(15,2)" json:"sell_amount"`
	NetBuyAmount decimal.Decimal `gorm:"column:net_buy_amount;type:decimal(15,2)" json:"net_buy_amount"`
}

func (CapitalDetail) TableName() string {
	return "capital_detail"
}

// ActiveBranch 活跃营业部表
type ActiveBranch struct {
	commonrepo.Mode
	Date           time.Time       `gorm:"column:date;type:date;not null;index:idx_active_branch_date,priority:1" json:"date"`
	BranchName     string          `gorm:"column:branch_name;size:200;not null;index:idx_active_branch_date,priority:2" json:"branch_name"`
	BranchCode     string          `gorm:"column:branch_code;size:50;index" json:"branch_code"`
	BuyStockCount  int             `gorm:"column:buy_stock_count" json:"buy_stock_count"`
	SellStockCount int             `gorm:"column:sell_stock_count" json:"sell_stock_count"`
	BuyAmount      decimal.Decimal `gorm:"column:buy_amount;type:decimal(18,2)" json:"buy_amount"`
	SellAmount     decimal.Decimal `gorm:"column:sell_amount;type:decimal(18,2)" json:"sell_amount"`
	NetAmount      decimal.Decimal `gorm:"column:net_amount;type:decimal(18,2)" json:"net_amount"`
}

func (ActiveBranch) TableName() string {
	return "active_branch"
}

// InstitutionTradingStat 机构每日交易统计表
type InstitutionTradingStat struct {
	commonrepo.Mode
	Date         time.Time       `gorm:"column:date;type:date;not null;index:idx_institution_stat_date,priority:1" json:"date"`
	StockCode    string          `gorm:"column:stock_code;size:10;not null;index:idx_institution_stat_date,priority:2" json:"stock_code"`
	StockName    string          `gorm:"column:stock_name;size:50;not null" json:"stock_name"`
	BuyCount     int             `gorm:"column:buy_count" json:"buy_count"`
	SellCount    int             `gorm:"column:sell_count" json:"sell_count"`
	BuyAmount    decimal.Decimal `gorm:"column:buy_amount;type:decimal(15,2)" json:"buy_amount"`
	SellAmount   decimal.Decimal `gorm:"column:sell_amount;type:decimal(15,2)" json:"sell_amount"`
	NetBuyAmount decimal.Decimal `gorm:"column:net_buy_amount;type:decimal(15,2)" json:"net_buy_amount"`
}

func (InstitutionTradingStat) TableName() string {
	return "institution_trading_stat"
}

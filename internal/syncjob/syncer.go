// Package syncjob 各任务类型的同步函数实现：
// 从行情数据提供方拉取目标交易日的数据，整日替换写入业务表
package syncjob

import (
	"fmt"
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/provider"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Syncer struct {
	db     *gorm.DB
	client *provider.Client
	logger *zap.Logger
}

func NewSyncer(db *gorm.DB, client *provider.Client, logger *zap.Logger) *Syncer {
	return &Syncer{
		db:     db,
		client: client,
		logger: logger,
	}
}

// replaceForDate 单事务内先删后插，保证同一天的数据整体替换
func replaceForDate[T any](db *gorm.DB, date time.Time, rows []T) (int, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var model T
		if err := tx.Where("date = ?", date).Delete(&model).Error; err != nil {
			return fmt.Errorf("failed to delete existing rows: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 200).Error; err != nil {
			return fmt.Errorf("failed to insert rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

package orm

import (
	"fmt"
	"time"

	"github.com/flyingCloudRain/tradeview-sub001/internal/infra/persistence/executionrepo"
	"github.com/flyingCloudRain/tradeview-sub001/internal/models"
	"github.com/google/wire"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var Provider = wire.NewSet(New)

type Config struct {
	Host                  string
	Port                  int
	Database              string
	User                  string
	Password              string
	MaxConnections        int
	MaxIdleConnections    int
	ConnectionMaxLifetime time.Duration
}

type Storage struct {
	db *gorm.DB
}

func New(cfg Config) (*Storage, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConnections)
	sqlDB.SetConnMaxLifetime(cfg.ConnectionMaxLifetime)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Migrate 同步执行记录表与业务数据表的结构
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&executionrepo.TaskExecution{},
		&models.ZtPool{},
		&models.ZtPoolDown{},
		&models.IndexHistory{},
		&models.StockFundFlow{},
		&models.ConceptFundFlow{},
		&models.LhbDetail{},
		&models.LhbInstitution{},
		&models.InstitutionTradingStat{},
		&models.ActiveBranch{},
		&models.CapitalDetail{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (s *Storage) DB() *gorm.DB {
	return s.db
}

func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Storage) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/flyingCloudRain/tradeview-sub001/internal/orm"
	"github.com/flyingCloudRain/tradeview-sub001/pkg/config"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// orm.New 打开连接时同步表结构
	db, err := orm.New(orm.Config{
		Host:                  cfg.Database.Host,
		Port:                  cfg.Database.Port,
		Database:              cfg.Database.Database,
		User:                  cfg.Database.User,
		Password:              cfg.Database.Password,
		MaxConnections:        cfg.Database.MaxConnections,
		MaxIdleConnections:    cfg.Database.MaxIdleConnections,
		ConnectionMaxLifetime: cfg.Database.ConnectionMaxLifetime,
	})
	if err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}
	defer db.Close()

	fmt.Println("Migration completed successfully!")
}

package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.IsDev() {
		level = logger.Info
	}

	gormCfg := &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// テーブル作成（依存順）
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Vendor{},
		&model.Category{},
		&model.Product{},
		&model.ProductDetail{},
		&model.Cart{},
		&model.Favorite{},
		&model.Purchase{},
		&model.OrderDetail{},
		&model.ProductComment{},
		&model.Notification{},
		&model.NotificationUser{},
	)
}

package config

import (
	"fmt"
	"time"

	"github.com/MildKid/DegReviews/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 初始化数据库连接，连接由调用方持有并传递
func InitDB(config Config) (*gorm.DB, error) {
	dsn := config.GetDBConnString()

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 自动迁移表结构（幂等建表）
	if err := MigrateDB(db); err != nil {
		return nil, err
	}

	return db, nil
}

// MigrateDB 进行数据库表结构迁移
func MigrateDB(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Review{},
	)
	if err != nil {
		return fmt.Errorf("数据库迁移失败: %v", err)
	}
	return nil
}

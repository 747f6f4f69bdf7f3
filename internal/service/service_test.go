package service

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"giraffe_quality_v2_202509/internal/config"
	"giraffe_quality_v2_202509/internal/model"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.QualityRecord{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func testAppConfig() *config.AppConfig {
	return &config.AppConfig{
		Branches:             []string{"חיפה", "סביון", "הרצליה"},
		Dishes:               []string{"פאד תאי", "מלאזית"},
		DuplicateWindowHours: 12,
		MinSamplesTopChef:    5,
		MinSamplesTopBranch:  3,
		CacheTTLSeconds:      15,
	}
}

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		AdminPassword: "admin123",
		SessionSecret: "test-secret",
	}
}

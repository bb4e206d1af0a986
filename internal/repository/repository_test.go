package repository

import (
	"path/filepath"
	"testing"

	"lifequest_backend/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "lifequest.db")), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&model.ActivityEvent{},
		&model.Wallet{},
		&model.SkillProgress{},
		&model.StreakRecord{},
		&model.AchievementUnlock{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

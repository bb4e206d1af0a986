package repository

import (
	"time"

	"lifequest_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AchievementRepository 成就目录（只读）与用户解锁记录
type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) WithTx(tx *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: tx}
}

func (r *AchievementRepository) FindAll() ([]model.AchievementDefinition, error) {
	var definitions []model.AchievementDefinition
	err := r.DB.Order("sort_order, id").Find(&definitions).Error
	return definitions, err
}

func (r *AchievementRepository) CreateDefinition(definition *model.AchievementDefinition) error {
	return r.DB.Create(definition).Error
}

// UnlockedKeys 用户已解锁的成就键集合
func (r *AchievementRepository) UnlockedKeys(userID uint) (map[string]bool, error) {
	var unlocks []model.AchievementUnlock
	if err := r.DB.Where("user_id = ?", userID).Find(&unlocks).Error; err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(unlocks))
	for _, unlock := range unlocks {
		keys[unlock.AchievementKey] = true
	}
	return keys, nil
}

func (r *AchievementRepository) ListUnlocks(userID uint) ([]model.AchievementUnlock, error) {
	var unlocks []model.AchievementUnlock
	err := r.DB.Where("user_id = ?", userID).Order("unlocked_at DESC").Find(&unlocks).Error
	return unlocks, err
}

// TryUnlock 插入解锁记录，（用户，成就）唯一索引冲突时不做修改
// 返回 false 表示已被解锁过（包括并发竞争输掉的情形），调用方不得再发奖励
func (r *AchievementRepository) TryUnlock(userID uint, achievementKey string, at time.Time) (bool, error) {
	unlock := model.AchievementUnlock{
		UserID:         userID,
		AchievementKey: achievementKey,
		UnlockedAt:     at,
	}
	result := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_key"}},
		DoNothing: true,
	}).Create(&unlock)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *AchievementRepository) CountUnlocks(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.AchievementUnlock{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

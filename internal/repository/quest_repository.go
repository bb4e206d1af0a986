package repository

import (
	"lifequest_backend/internal/model"

	"gorm.io/gorm"
)

// QuestRepository 任务目录（只读）与用户任务进度
type QuestRepository struct {
	DB *gorm.DB
}

func NewQuestRepository(db *gorm.DB) *QuestRepository {
	return &QuestRepository{DB: db}
}

func (r *QuestRepository) WithTx(tx *gorm.DB) *QuestRepository {
	return &QuestRepository{DB: tx}
}

// FindActive 全部启用的任务定义，触发匹配在内存中按 TriggerKinds 完成
func (r *QuestRepository) FindActive() ([]model.QuestDefinition, error) {
	var quests []model.QuestDefinition
	err := r.DB.Where("active = ?", true).Order("sort_order, id").Find(&quests).Error
	return quests, err
}

func (r *QuestRepository) FindByID(id uint) (*model.QuestDefinition, error) {
	var quest model.QuestDefinition
	err := r.DB.First(&quest, id).Error
	if err != nil {
		return nil, err
	}
	return &quest, nil
}

func (r *QuestRepository) CreateDefinition(quest *model.QuestDefinition) error {
	return r.DB.Create(quest).Error
}

func (r *QuestRepository) UpdateDefinition(quest *model.QuestDefinition) error {
	return r.DB.Save(quest).Error
}

// GetProgress 读取用户对某任务的进度行，可能不存在
func (r *QuestRepository) GetProgress(userID, questID uint) (*model.QuestProgress, error) {
	var progress model.QuestProgress
	err := r.DB.Where("user_id = ? AND quest_id = ?", userID, questID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *QuestRepository) CreateProgress(progress *model.QuestProgress) error {
	return r.DB.Create(progress).Error
}

func (r *QuestRepository) SaveProgress(progress *model.QuestProgress) error {
	return r.DB.Save(progress).Error
}

// ListProgressByUser 用户全部进度行（任务界面用）
func (r *QuestRepository) ListProgressByUser(userID uint) ([]model.QuestProgress, error) {
	var rows []model.QuestProgress
	err := r.DB.Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

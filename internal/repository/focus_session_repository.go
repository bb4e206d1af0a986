package repository

import (
	"lifequest_backend/internal/model"

	"gorm.io/gorm"
)

type FocusSessionRepository struct {
	DB *gorm.DB
}

func NewFocusSessionRepository(db *gorm.DB) *FocusSessionRepository {
	return &FocusSessionRepository{DB: db}
}

func (r *FocusSessionRepository) Create(session *model.FocusSession) error {
	return r.DB.Create(session).Error
}

func (r *FocusSessionRepository) FindByIDAndUser(id, userID uint) (*model.FocusSession, error) {
	var session model.FocusSession
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *FocusSessionRepository) Update(session *model.FocusSession) error {
	return r.DB.Save(session).Error
}

func (r *FocusSessionRepository) ListByUser(userID uint, limit int) ([]model.FocusSession, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var sessions []model.FocusSession
	err := r.DB.Where("user_id = ?", userID).Order("started_at DESC").Limit(limit).Find(&sessions).Error
	return sessions, err
}

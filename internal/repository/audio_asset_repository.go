package repository

import (
	"lifequest_backend/internal/model"

	"gorm.io/gorm"
)

type AudioAssetRepository struct {
	DB *gorm.DB
}

func NewAudioAssetRepository(db *gorm.DB) *AudioAssetRepository {
	return &AudioAssetRepository{DB: db}
}

func (r *AudioAssetRepository) Create(asset *model.AudioAsset) error {
	return r.DB.Create(asset).Error
}

func (r *AudioAssetRepository) FindByIDAndUser(id, userID uint) (*model.AudioAsset, error) {
	var asset model.AudioAsset
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *AudioAssetRepository) ListByUser(userID uint) ([]model.AudioAsset, error) {
	var assets []model.AudioAsset
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&assets).Error
	return assets, err
}

func (r *AudioAssetRepository) Delete(id, userID uint) error {
	return r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.AudioAsset{}).Error
}

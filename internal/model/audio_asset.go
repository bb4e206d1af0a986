package model

// AudioAsset 音频制作素材库条目，文件本体存放在对象存储
// swagger:model AudioAsset
type AudioAsset struct {
	BaseModel
	UserID          uint    `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Title           string  `gorm:"size:200;not null" json:"title"`
	ObjectKey       string  `gorm:"size:255;not null" json:"-"`
	ContentType     string  `gorm:"size:100" json:"contentType"`
	SizeBytes       int64   `gorm:"default:0" json:"sizeBytes"`
	DurationSeconds float64 `gorm:"default:0" json:"durationSeconds"`
}

func (AudioAsset) TableName() string {
	return "audio_assets"
}

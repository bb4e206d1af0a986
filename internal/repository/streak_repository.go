package repository

import (
	"time"

	"lifequest_backend/internal/model"

	"gorm.io/gorm"
)

// StreakRepository 连续打卡记录
type StreakRepository struct {
	DB *gorm.DB
}

func NewStreakRepository(db *gorm.DB) *StreakRepository {
	return &StreakRepository{DB: db}
}

func (r *StreakRepository) WithTx(tx *gorm.DB) *StreakRepository {
	return &StreakRepository{DB: tx}
}

func (r *StreakRepository) Get(userID uint, kind model.StreakKind) (*model.StreakRecord, error) {
	var record model.StreakRecord
	err := r.DB.Where("user_id = ? AND kind = ?", userID, kind).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Touch 按连续性规则推进打卡记录并返回最新状态：
// 当日已有活动不变；昨日有活动 +1；否则重置为 1。Longest 取历史最大值。
func (r *StreakRepository) Touch(userID uint, kind model.StreakKind, today time.Time) (*model.StreakRecord, error) {
	day := truncateToDay(today)

	record, err := r.Get(userID, kind)
	if err == gorm.ErrRecordNotFound {
		record = &model.StreakRecord{
			UserID:       userID,
			Kind:         kind,
			Current:      1,
			Longest:      1,
			LastActivity: day,
		}
		if err := r.DB.Create(record).Error; err != nil {
			return nil, err
		}
		return record, nil
	}
	if err != nil {
		return nil, err
	}

	last := truncateToDay(record.LastActivity)
	if last.Equal(day) {
		// 同日不重复计数
		return record, nil
	}

	if last.Equal(day.AddDate(0, 0, -1)) {
		record.Current++
	} else {
		record.Current = 1
	}
	if record.Current > record.Longest {
		record.Longest = record.Current
	}
	record.LastActivity = day

	if err := r.DB.Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// MapByUser 用户全部打卡记录，按类型索引
func (r *StreakRepository) MapByUser(userID uint) (map[model.StreakKind]model.StreakRecord, error) {
	var records []model.StreakRecord
	if err := r.DB.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, err
	}
	result := make(map[model.StreakKind]model.StreakRecord, len(records))
	for _, record := range records {
		result[record.Kind] = record
	}
	return result, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

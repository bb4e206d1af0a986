package repository

import (
	"fmt"
	"time"

	"lifequest_backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActivityEventRepository 活动事件账本：既是审计日志也是幂等判定的唯一依据
type ActivityEventRepository struct {
	DB *gorm.DB
}

func NewActivityEventRepository(db *gorm.DB) *ActivityEventRepository {
	return &ActivityEventRepository{DB: db}
}

// WithTx 返回绑定到事务的仓库副本
func (r *ActivityEventRepository) WithTx(tx *gorm.DB) *ActivityEventRepository {
	return &ActivityEventRepository{DB: tx}
}

// DedupKey 幂等键：带来源实体的事件按（用户，类型，实体）去重，
// 无来源实体的事件每次都是新的逻辑发生，用随机键占位
func DedupKey(userID uint, kind model.EventKind, entityType string, entityID uint) string {
	if entityType == "" {
		return uuid.NewString()
	}
	return fmt.Sprintf("%d:%s:%s:%d", userID, kind, entityType, entityID)
}

// InsertIfAbsent 原子地插入事件，幂等键冲突时不做任何修改
// 返回 false 表示该事件已处理过（并发重复投递也会正确落到这一分支）
func (r *ActivityEventRepository) InsertIfAbsent(event *model.ActivityEvent) (bool, error) {
	result := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "dedup_key"}},
		DoNothing: true,
	}).Create(event)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByOccurrence 查找已存在的同来源事件，用于重复投递时返回原始记录
func (r *ActivityEventRepository) FindByOccurrence(userID uint, kind model.EventKind, entityType string, entityID uint) (*model.ActivityEvent, error) {
	var event model.ActivityEvent
	err := r.DB.Where("dedup_key = ?", fmt.Sprintf("%d:%s:%s:%d", userID, kind, entityType, entityID)).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// CountByUserAndKind 统计用户某事件类型的累计次数（count 类成就条件用）
func (r *ActivityEventRepository) CountByUserAndKind(userID uint, kind model.EventKind) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ActivityEvent{}).
		Where("user_id = ? AND kind = ?", userID, kind).
		Count(&count).Error
	return count, err
}

// ListByUser 按时间范围列出用户事件，可选按类型过滤
func (r *ActivityEventRepository) ListByUser(userID uint, from, to time.Time, kind model.EventKind, limit int) ([]model.ActivityEvent, error) {
	query := r.DB.Where("user_id = ?", userID)
	if !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("created_at < ?", to)
	}
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if limit <= 0 || limit > 200 {
		limit = 200
	}

	var events []model.ActivityEvent
	err := query.Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}

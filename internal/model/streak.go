package model

import "time"

type StreakKind string

const (
	StreakSession       StreakKind = "session"
	StreakWorkout       StreakKind = "workout"
	StreakDailyActivity StreakKind = "daily_activity"
)

// StreakKindForEvent 返回事件参与的连续打卡类型；多数事件不参与
func StreakKindForEvent(kind EventKind) (StreakKind, bool) {
	switch kind {
	case EventSessionComplete:
		return StreakSession, true
	case EventWorkoutComplete:
		return StreakWorkout, true
	case EventHabitComplete:
		return StreakDailyActivity, true
	default:
		return "", false
	}
}

// StreakRecord 每（用户，打卡类型）一行的连续记录
// 同日活动不重复计数；昨日有活动则 +1；否则重置为 1
// swagger:model StreakRecord
type StreakRecord struct {
	BaseModel
	UserID       uint       `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_user_streak,priority:1" json:"userId"`
	Kind         StreakKind `gorm:"size:30;not null;uniqueIndex:idx_user_streak,priority:2" json:"kind"`
	Current      int        `gorm:"default:0" json:"current"`
	Longest      int        `gorm:"default:0" json:"longest"`
	LastActivity time.Time  `gorm:"type:date" json:"lastActivity"`
}

func (StreakRecord) TableName() string {
	return "streak_records"
}

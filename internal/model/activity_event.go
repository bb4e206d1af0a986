package model

import (
	"time"

	"gorm.io/datatypes"
)

// EventKind 进步系统识别的活动事件类型（封闭枚举）
type EventKind string

const (
	EventSessionStart        EventKind = "session_start"
	EventSessionComplete     EventKind = "session_complete"
	EventWorkoutStart        EventKind = "workout_start"
	EventWorkoutComplete     EventKind = "workout_complete"
	EventLessonStart         EventKind = "lesson_start"
	EventLessonComplete      EventKind = "lesson_complete"
	EventReviewComplete      EventKind = "review_complete"
	EventHabitComplete       EventKind = "habit_complete"
	EventQuestComplete       EventKind = "quest_complete"
	EventGoalMilestone       EventKind = "goal_milestone"
	EventPlannerTaskComplete EventKind = "planner_task_complete"
)

// AllEventKinds 所有合法的事件类型，用于校验入参
var AllEventKinds = []EventKind{
	EventSessionStart,
	EventSessionComplete,
	EventWorkoutStart,
	EventWorkoutComplete,
	EventLessonStart,
	EventLessonComplete,
	EventReviewComplete,
	EventHabitComplete,
	EventQuestComplete,
	EventGoalMilestone,
	EventPlannerTaskComplete,
}

func (k EventKind) Valid() bool {
	for _, known := range AllEventKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ActivityEvent 活动事件：每次被接受的活动产生一条不可变记录，
// 同时作为幂等账本（DedupKey 唯一索引保证同一来源实体只计一次奖励）
// swagger:model ActivityEvent
type ActivityEvent struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint           `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Kind        EventKind      `gorm:"size:40;not null;index:idx_user_kind,priority:2" json:"kind"`
	EntityType  string         `gorm:"size:40" json:"entityType,omitempty"`
	EntityID    uint           `gorm:"type:bigint unsigned" json:"entityId,omitempty"`
	DedupKey    string         `gorm:"size:191;uniqueIndex" json:"-"`
	XPEarned    int            `gorm:"default:0" json:"xpEarned"`
	CoinsEarned int            `gorm:"default:0" json:"coinsEarned"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func (ActivityEvent) TableName() string {
	return "activity_events"
}

package model

import (
	"time"

	"gorm.io/datatypes"
)

type QuestKind string

const (
	QuestOneTime QuestKind = "one_time"
	QuestDaily   QuestKind = "daily"
	QuestWeekly  QuestKind = "weekly"
)

// QuestDefinition 任务目录条目，由内容后台维护，进步引擎只读
// TriggerKinds 显式声明该任务响应哪些事件类型，取代按标题关键字的模糊匹配
// swagger:model QuestDefinition
type QuestDefinition struct {
	BaseModel
	Title        string                         `gorm:"size:200;not null" json:"title"`
	Description  string                         `gorm:"size:500" json:"description"`
	Kind         QuestKind                      `gorm:"size:20;default:'one_time'" json:"kind"`
	Target       int                            `gorm:"not null" json:"target"`
	TriggerKinds datatypes.JSONSlice[EventKind] `json:"triggerKinds"`
	RewardXP     int                            `gorm:"default:0" json:"rewardXp"`
	RewardCoins  int                            `gorm:"default:0" json:"rewardCoins"`
	SkillKey     string                         `gorm:"size:60" json:"skillKey,omitempty"`
	Active       bool                           `gorm:"default:true;index" json:"active"`
	SortOrder    int                            `gorm:"default:0" json:"sortOrder"`
}

func (QuestDefinition) TableName() string {
	return "quest_definitions"
}

// RespondsTo 判断任务是否响应给定事件类型
func (q *QuestDefinition) RespondsTo(kind EventKind) bool {
	for _, k := range q.TriggerKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Repeatable 每日/每周任务在新周期可被重新打开
func (q *QuestDefinition) Repeatable() bool {
	return q.Kind == QuestDaily || q.Kind == QuestWeekly
}

// QuestProgress 每（用户，任务）一行的进度
// 完成周期内进度单调不减；每日任务跨天后重开
// swagger:model QuestProgress
type QuestProgress struct {
	BaseModel
	UserID      uint       `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_user_quest,priority:1" json:"userId"`
	QuestID     uint       `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_user_quest,priority:2" json:"questId"`
	Progress    int        `gorm:"default:0" json:"progress"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (QuestProgress) TableName() string {
	return "quest_progress"
}

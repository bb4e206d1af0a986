package model

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type ConditionKind string

const (
	ConditionFirst  ConditionKind = "first"
	ConditionCount  ConditionKind = "count"
	ConditionStreak ConditionKind = "streak"
)

// AchievementCondition 解锁条件的封闭联合类型
// 每种条件只使用对应的参数字段，由 ParseCondition 负责校验
type AchievementCondition struct {
	Kind ConditionKind `json:"kind"`
	// first / count 条件的目标事件类型
	EventKind EventKind `json:"eventKind,omitempty"`
	// count 条件的目标次数
	TargetCount int64 `json:"targetCount,omitempty"`
	// streak 条件的打卡类型与目标天数
	StreakKind   StreakKind `json:"streakKind,omitempty"`
	TargetLength int        `json:"targetLength,omitempty"`
}

// AchievementDefinition 成就目录条目，由内容后台维护，进步引擎只读
// swagger:model AchievementDefinition
type AchievementDefinition struct {
	BaseModel
	Key             string         `gorm:"size:60;uniqueIndex;not null" json:"key"`
	Name            string         `gorm:"size:120;not null" json:"name"`
	Description     string         `gorm:"size:500" json:"description"`
	Icon            string         `gorm:"size:255" json:"icon,omitempty"`
	ConditionKind   ConditionKind  `gorm:"size:20;not null" json:"conditionKind"`
	ConditionConfig datatypes.JSON `json:"conditionConfig"`
	RewardXP        int            `gorm:"default:0" json:"rewardXp"`
	RewardCoins     int            `gorm:"default:0" json:"rewardCoins"`
	SkillKey        string         `gorm:"size:60" json:"skillKey,omitempty"`
	Hidden          bool           `gorm:"default:false" json:"hidden"`
	SortOrder       int            `gorm:"default:0" json:"sortOrder"`
}

func (AchievementDefinition) TableName() string {
	return "achievement_definitions"
}

// ParseCondition 将存储形式解析为带完整参数校验的条件值
// 条件类型未知或参数缺失时返回错误，由调用方记录并跳过该定义
func (d *AchievementDefinition) ParseCondition() (*AchievementCondition, error) {
	cond := &AchievementCondition{Kind: d.ConditionKind}
	if len(d.ConditionConfig) > 0 {
		if err := json.Unmarshal(d.ConditionConfig, cond); err != nil {
			return nil, fmt.Errorf("achievement %s: invalid condition config: %w", d.Key, err)
		}
	}
	cond.Kind = d.ConditionKind

	switch cond.Kind {
	case ConditionFirst:
		if !cond.EventKind.Valid() {
			return nil, fmt.Errorf("achievement %s: first condition needs a valid eventKind", d.Key)
		}
	case ConditionCount:
		if !cond.EventKind.Valid() || cond.TargetCount < 1 {
			return nil, fmt.Errorf("achievement %s: count condition needs eventKind and targetCount", d.Key)
		}
	case ConditionStreak:
		if cond.StreakKind == "" || cond.TargetLength < 1 {
			return nil, fmt.Errorf("achievement %s: streak condition needs streakKind and targetLength", d.Key)
		}
	default:
		return nil, fmt.Errorf("achievement %s: unknown condition kind %q", d.Key, cond.Kind)
	}

	return cond, nil
}

// AchievementUnlock 每（用户，成就）至多一行，唯一索引保证奖励只发一次
// swagger:model AchievementUnlock
type AchievementUnlock struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint      `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_user_achievement,priority:1" json:"userId"`
	AchievementKey string    `gorm:"size:60;not null;uniqueIndex:idx_user_achievement,priority:2" json:"achievementKey"`
	UnlockedAt     time.Time `json:"unlockedAt"`
}

func (AchievementUnlock) TableName() string {
	return "achievement_unlocks"
}

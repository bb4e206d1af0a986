package model

import "time"

// Habit 习惯条目，由习惯界面维护；完成时向进步引擎上报 habit_complete
// swagger:model Habit
type Habit struct {
	BaseModel
	UserID      uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"size:500" json:"description"`
	Archived    bool   `gorm:"default:false" json:"archived"`
}

func (Habit) TableName() string {
	return "habits"
}

// HabitCompletion 每（习惯，日期）一行的完成记录
// swagger:model HabitCompletion
type HabitCompletion struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	HabitID     uint      `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_habit_date,priority:1" json:"habitId"`
	UserID      uint      `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	CompletedOn time.Time `gorm:"type:date;not null;uniqueIndex:idx_habit_date,priority:2" json:"completedOn"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (HabitCompletion) TableName() string {
	return "habit_completions"
}

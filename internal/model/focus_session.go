package model

import "time"

type FocusSessionStatus string

const (
	FocusRunning   FocusSessionStatus = "running"
	FocusCompleted FocusSessionStatus = "completed"
	FocusAbandoned FocusSessionStatus = "abandoned"
)

// FocusSession 专注计时会话，倒计时逻辑在客户端，这里只记录起止
// swagger:model FocusSession
type FocusSession struct {
	BaseModel
	UserID         uint               `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Title          string             `gorm:"size:200" json:"title"`
	PlannedMinutes int                `gorm:"default:25" json:"plannedMinutes"`
	Status         FocusSessionStatus `gorm:"type:enum('running','completed','abandoned');default:'running'" json:"status"`
	StartedAt      time.Time          `json:"startedAt"`
	EndedAt        *time.Time         `json:"endedAt,omitempty"`
	ActualMinutes  int                `gorm:"default:0" json:"actualMinutes"`
}

func (FocusSession) TableName() string {
	return "focus_sessions"
}

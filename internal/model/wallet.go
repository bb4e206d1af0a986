package model

// Wallet 每用户一行的钱包：总经验、等级与金币
// 等级与升级所需经验始终由总经验重算得出，不允许单独写入
// swagger:model Wallet
type Wallet struct {
	BaseModel
	UserID      uint  `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"userId"`
	TotalXP     int64 `gorm:"default:0" json:"totalXp"`
	Level       int   `gorm:"default:1" json:"level"`
	XPToNext    int64 `gorm:"default:100" json:"xpToNext"`
	CoinBalance int64 `gorm:"default:0" json:"coinBalance"`
}

func (Wallet) TableName() string {
	return "wallets"
}

// SkillProgress 每（用户，技能）一行的技能经验
// swagger:model SkillProgress
type SkillProgress struct {
	BaseModel
	UserID   uint   `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_user_skill,priority:1" json:"userId"`
	SkillKey string `gorm:"size:60;not null;uniqueIndex:idx_user_skill,priority:2" json:"skillKey"`
	XP       int64  `gorm:"default:0" json:"xp"`
	Level    int    `gorm:"default:1" json:"level"`
}

func (SkillProgress) TableName() string {
	return "skill_progress"
}

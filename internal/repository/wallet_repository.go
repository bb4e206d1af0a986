package repository

import (
	"time"

	"lifequest_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletRepository 钱包与技能经验账户，所有数值更新都是冲突即累加的原子 upsert，
// 并发入账不会丢失更新
type WalletRepository struct {
	DB *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{DB: db}
}

func (r *WalletRepository) WithTx(tx *gorm.DB) *WalletRepository {
	return &WalletRepository{DB: tx}
}

// AddXPAndCoins 累加经验与金币，行不存在时按 1 级初始化
func (r *WalletRepository) AddXPAndCoins(userID uint, xp, coins int64) error {
	wallet := model.Wallet{
		UserID:      userID,
		TotalXP:     xp,
		Level:       1,
		XPToNext:    100,
		CoinBalance: coins,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_xp":     gorm.Expr("total_xp + ?", xp),
			"coin_balance": gorm.Expr("coin_balance + ?", coins),
			"updated_at":   time.Now(),
		}),
	}).Create(&wallet).Error
}

// SetLevel 回写由总经验重算出的等级信息
func (r *WalletRepository) SetLevel(userID uint, level int, xpToNext int64) error {
	return r.DB.Model(&model.Wallet{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"level": level, "xp_to_next": xpToNext}).Error
}

func (r *WalletRepository) FindByUser(userID uint) (*model.Wallet, error) {
	var wallet model.Wallet
	err := r.DB.Where("user_id = ?", userID).First(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// GetOrCreate 读取钱包，不存在时初始化一个空钱包
func (r *WalletRepository) GetOrCreate(userID uint) (*model.Wallet, error) {
	wallet, err := r.FindByUser(userID)
	if err == nil {
		return wallet, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err := r.AddXPAndCoins(userID, 0, 0); err != nil {
		return nil, err
	}
	return r.FindByUser(userID)
}

// AddSkillXP 累加技能经验，行不存在时按 1 级初始化
func (r *WalletRepository) AddSkillXP(userID uint, skillKey string, xp int64) error {
	progress := model.SkillProgress{
		UserID:   userID,
		SkillKey: skillKey,
		XP:       xp,
		Level:    1,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "skill_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"xp":         gorm.Expr("xp + ?", xp),
			"updated_at": time.Now(),
		}),
	}).Create(&progress).Error
}

// SetSkillLevel 回写技能等级
func (r *WalletRepository) SetSkillLevel(userID uint, skillKey string, level int) error {
	return r.DB.Model(&model.SkillProgress{}).
		Where("user_id = ? AND skill_key = ?", userID, skillKey).
		Update("level", level).Error
}

func (r *WalletRepository) FindSkill(userID uint, skillKey string) (*model.SkillProgress, error) {
	var progress model.SkillProgress
	err := r.DB.Where("user_id = ? AND skill_key = ?", userID, skillKey).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *WalletRepository) ListSkills(userID uint) ([]model.SkillProgress, error) {
	var skills []model.SkillProgress
	err := r.DB.Where("user_id = ?", userID).Order("xp DESC").Find(&skills).Error
	return skills, err
}

// TopByXP 排行榜查询
func (r *WalletRepository) TopByXP(limit int) ([]model.Wallet, error) {
	var wallets []model.Wallet
	err := r.DB.Order("total_xp DESC").Limit(limit).Find(&wallets).Error
	return wallets, err
}

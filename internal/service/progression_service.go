package service

import (
	"context"
	"time"

	"lifequest_backend/internal/model"
	"lifequest_backend/internal/repository"
	"lifequest_backend/internal/util"
	"lifequest_backend/pkg/logger"
	"lifequest_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgressionService 进步引擎：接收一次活动发生，按固定顺序驱动
// 幂等闸门 → 事件落账 → 钱包/技能入账 → 等级重算 → 任务推进 → 打卡推进 → 成就评估。
// 除成就评估外的全部写入处于同一事务内，任何一步失败整次发生视为未处理，调用方可安全重试。
type ProgressionService struct {
	DB              *gorm.DB
	EventRepo       *repository.ActivityEventRepository
	WalletRepo      *repository.WalletRepository
	QuestRepo       *repository.QuestRepository
	StreakRepo      *repository.StreakRepository
	AchievementRepo *repository.AchievementRepository

	// 可注入的时钟，跨天语义的测试依赖它
	Now func() time.Time
}

func NewProgressionService(
	db *gorm.DB,
	eventRepo *repository.ActivityEventRepository,
	walletRepo *repository.WalletRepository,
	questRepo *repository.QuestRepository,
	streakRepo *repository.StreakRepository,
	achievementRepo *repository.AchievementRepository,
) *ProgressionService {
	return &ProgressionService{
		DB:              db,
		EventRepo:       eventRepo,
		WalletRepo:      walletRepo,
		QuestRepo:       questRepo,
		StreakRepo:      streakRepo,
		AchievementRepo: achievementRepo,
		Now:             time.Now,
	}
}

// LogEventInput 一次活动发生的上报参数
// CustomXP/CustomCoins/SkillKey 覆盖奖励表（任务与成就加成走这条路）
type LogEventInput struct {
	Kind       model.EventKind `json:"kind" binding:"required"`
	EntityType string          `json:"entityType"`
	EntityID   uint            `json:"entityId"`
	Metadata   datatypes.JSON  `json:"metadata"`
	CustomXP   *int            `json:"customXp"`
	CustomCoin *int            `json:"customCoins"`
	SkillKey   string          `json:"skillKey"`
}

// ActivityEventSummary 返回给调用方的处理结果
// 重复投递时 Duplicate 为 true 且所有发放数额为零
type ActivityEventSummary struct {
	Event                *model.ActivityEvent `json:"event"`
	Duplicate            bool                 `json:"duplicate"`
	XPGranted            int                  `json:"xpGranted"`
	CoinsGranted         int                  `json:"coinsGranted"`
	Level                int                  `json:"level"`
	XPToNext             int64                `json:"xpToNext"`
	LeveledUp            bool                 `json:"leveledUp"`
	CompletedQuests      []string             `json:"completedQuests,omitempty"`
	UnlockedAchievements []string             `json:"unlockedAchievements,omitempty"`
	// 成就评估中被跳过的定义数，主奖励不受影响
	AchievementFailures int `json:"achievementFailures,omitempty"`
}

// LogActivityEvent 进步引擎唯一入口
func (s *ProgressionService) LogActivityEvent(ctx context.Context, userID uint, input LogEventInput) (*ActivityEventSummary, error) {
	if !input.Kind.Valid() {
		return nil, util.ErrUnknownEventKind
	}

	reward, _ := BaseReward(input.Kind)
	if input.CustomXP != nil {
		reward.XP = *input.CustomXP
	}
	if input.CustomCoin != nil {
		reward.Coins = *input.CustomCoin
	}
	if input.SkillKey != "" {
		reward.SkillKey = input.SkillKey
	}

	now := s.Now()
	summary := &ActivityEventSummary{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		events := s.EventRepo.WithTx(tx)

		event := &model.ActivityEvent{
			UserID:      userID,
			Kind:        input.Kind,
			EntityType:  input.EntityType,
			EntityID:    input.EntityID,
			DedupKey:    repository.DedupKey(userID, input.Kind, input.EntityType, input.EntityID),
			XPEarned:    reward.XP,
			CoinsEarned: reward.Coins,
			Metadata:    input.Metadata,
			CreatedAt:   now,
		}

		inserted, err := events.InsertIfAbsent(event)
		if err != nil {
			return err
		}
		if !inserted {
			// 幂等闸门：同一（用户，类型，实体）只计一次奖励
			existing, err := events.FindByOccurrence(userID, input.Kind, input.EntityType, input.EntityID)
			if err != nil {
				return err
			}
			summary.Event = existing
			summary.Duplicate = true
			return nil
		}
		summary.Event = event

		before, err := s.WalletRepo.WithTx(tx).GetOrCreate(userID)
		if err != nil {
			return err
		}

		if _, err := s.credit(tx, userID, reward.XP, reward.Coins, reward.SkillKey); err != nil {
			return err
		}
		summary.XPGranted = reward.XP
		summary.CoinsGranted = reward.Coins

		completed, err := s.advanceQuests(tx, userID, input.Kind, now, summary)
		if err != nil {
			return err
		}
		summary.CompletedQuests = completed

		if streakKind, ok := model.StreakKindForEvent(input.Kind); ok {
			if _, err := s.StreakRepo.WithTx(tx).Touch(userID, streakKind, now); err != nil {
				return err
			}
		}

		// 成就评估：单个定义失败只记录并跳过，绝不回滚已入账的主奖励
		s.evaluateAchievements(tx, userID, input.Kind, now, summary)

		// 任务/成就加成可能继续改动钱包，重新读取最终等级
		wallet, err := s.WalletRepo.WithTx(tx).FindByUser(userID)
		if err != nil {
			return err
		}
		summary.Level = wallet.Level
		summary.XPToNext = wallet.XPToNext
		summary.LeveledUp = wallet.Level > before.Level
		return nil
	})
	if err != nil {
		return nil, err
	}

	if summary.Duplicate {
		monitoring.EventsDuplicate.WithLabelValues(string(input.Kind)).Inc()
	} else {
		monitoring.EventsProcessed.WithLabelValues(string(input.Kind)).Inc()
	}

	return summary, nil
}

// credit 唯一的入账路径：钱包累加、等级重算、可选技能累加
// 成就加成与任务完成奖励同样经过这里，不允许旁路
func (s *ProgressionService) credit(tx *gorm.DB, userID uint, xp, coins int, skillKey string) (*model.Wallet, error) {
	wallets := s.WalletRepo.WithTx(tx)

	if xp != 0 || coins != 0 {
		if err := wallets.AddXPAndCoins(userID, int64(xp), int64(coins)); err != nil {
			return nil, err
		}
	}

	wallet, err := wallets.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	level, xpToNext := LevelForXP(wallet.TotalXP)
	if err := wallets.SetLevel(userID, level, xpToNext); err != nil {
		return nil, err
	}
	wallet.Level = level
	wallet.XPToNext = xpToNext

	if skillKey != "" && xp > 0 {
		if err := wallets.AddSkillXP(userID, skillKey, int64(xp)); err != nil {
			return nil, err
		}
		skill, err := wallets.FindSkill(userID, skillKey)
		if err != nil {
			return nil, err
		}
		skillLevel, _ := LevelForXP(skill.XP)
		if err := wallets.SetSkillLevel(userID, skillKey, skillLevel); err != nil {
			return nil, err
		}
	}

	return wallet, nil
}

// advanceQuests 推进所有响应该事件类型的任务进度
// 可重复任务在新周期首次触发时重开：进度重置为本次增量，清除完成标记
func (s *ProgressionService) advanceQuests(tx *gorm.DB, userID uint, kind model.EventKind, now time.Time, summary *ActivityEventSummary) ([]string, error) {
	quests := s.QuestRepo.WithTx(tx)

	definitions, err := quests.FindActive()
	if err != nil {
		return nil, err
	}

	var completed []string
	for i := range definitions {
		quest := &definitions[i]
		if !quest.RespondsTo(kind) {
			continue
		}

		progress, err := quests.GetProgress(userID, quest.ID)
		if err == gorm.ErrRecordNotFound {
			progress = &model.QuestProgress{UserID: userID, QuestID: quest.ID}
			if err := quests.CreateProgress(progress); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}

		if progress.Completed {
			if !quest.Repeatable() || progress.CompletedAt == nil || sameCycle(quest.Kind, *progress.CompletedAt, now) {
				continue
			}
			// 新周期重开
			progress.Progress = 0
			progress.Completed = false
			progress.CompletedAt = nil
		}

		progress.Progress++

		if progress.Progress >= quest.Target {
			completedAt := now
			progress.Completed = true
			progress.CompletedAt = &completedAt

			if _, err := s.credit(tx, userID, quest.RewardXP, quest.RewardCoins, quest.SkillKey); err != nil {
				return nil, err
			}
			summary.XPGranted += quest.RewardXP
			summary.CoinsGranted += quest.RewardCoins
			completed = append(completed, quest.Title)
		}

		if err := quests.SaveProgress(progress); err != nil {
			return nil, err
		}
	}

	return completed, nil
}

// sameCycle 判断完成时间与当前时间是否仍处于同一重复周期
func sameCycle(kind model.QuestKind, completedAt, now time.Time) bool {
	switch kind {
	case model.QuestDaily:
		cy, cm, cd := completedAt.Date()
		ny, nm, nd := now.Date()
		return cy == ny && cm == nm && cd == nd
	case model.QuestWeekly:
		cy, cw := completedAt.ISOWeek()
		ny, nw := now.ISOWeek()
		return cy == ny && cw == nw
	default:
		return true
	}
}

// evaluateAchievements 对每个未解锁的成就评估解锁条件
// 隐藏成就同样参与评估，隐藏只影响展示
// 单个定义的失败记入日志与指标后跳过，不影响其余定义，也不影响主奖励
func (s *ProgressionService) evaluateAchievements(tx *gorm.DB, userID uint, kind model.EventKind, now time.Time, summary *ActivityEventSummary) {
	achievements := s.AchievementRepo.WithTx(tx)

	definitions, err := achievements.FindAll()
	if err != nil {
		logger.Log.Warn("achievement definitions unavailable, skipping evaluation",
			zap.Uint("userID", userID), zap.Error(err))
		summary.AchievementFailures++
		monitoring.AchievementEvalFailures.Inc()
		return
	}

	unlocked, err := achievements.UnlockedKeys(userID)
	if err != nil {
		logger.Log.Warn("unlocked achievements unavailable, skipping evaluation",
			zap.Uint("userID", userID), zap.Error(err))
		summary.AchievementFailures++
		monitoring.AchievementEvalFailures.Inc()
		return
	}

	for i := range definitions {
		definition := &definitions[i]
		if unlocked[definition.Key] {
			continue
		}

		satisfied, err := s.conditionSatisfied(tx, userID, kind, definition)
		if err != nil {
			logger.Log.Warn("achievement evaluation skipped",
				zap.String("achievement", definition.Key), zap.Error(err))
			summary.AchievementFailures++
			monitoring.AchievementEvalFailures.Inc()
			continue
		}
		if !satisfied {
			continue
		}

		granted, err := achievements.TryUnlock(userID, definition.Key, now)
		if err != nil {
			logger.Log.Warn("achievement unlock failed",
				zap.String("achievement", definition.Key), zap.Error(err))
			summary.AchievementFailures++
			monitoring.AchievementEvalFailures.Inc()
			continue
		}
		if !granted {
			// 并发竞争输掉视为已解锁，不再发奖励
			continue
		}

		if _, err := s.credit(tx, userID, definition.RewardXP, definition.RewardCoins, definition.SkillKey); err != nil {
			logger.Log.Error("achievement reward credit failed",
				zap.String("achievement", definition.Key), zap.Error(err))
			summary.AchievementFailures++
			monitoring.AchievementEvalFailures.Inc()
			continue
		}

		summary.XPGranted += definition.RewardXP
		summary.CoinsGranted += definition.RewardCoins
		summary.UnlockedAchievements = append(summary.UnlockedAchievements, definition.Key)
		monitoring.AchievementsUnlocked.Inc()
	}
}

// conditionSatisfied 评估单个成就条件，未知条件类型由 ParseCondition 报错
func (s *ProgressionService) conditionSatisfied(tx *gorm.DB, userID uint, kind model.EventKind, definition *model.AchievementDefinition) (bool, error) {
	condition, err := definition.ParseCondition()
	if err != nil {
		return false, err
	}

	switch condition.Kind {
	case model.ConditionFirst:
		return condition.EventKind == kind, nil
	case model.ConditionCount:
		count, err := s.EventRepo.WithTx(tx).CountByUserAndKind(userID, condition.EventKind)
		if err != nil {
			return false, err
		}
		return count >= condition.TargetCount, nil
	case model.ConditionStreak:
		record, err := s.StreakRepo.WithTx(tx).Get(userID, condition.StreakKind)
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return record.Current >= condition.TargetLength, nil
	}
	return false, nil
}

// ListEvents 读接口：按时间范围与可选类型列出用户事件
func (s *ProgressionService) ListEvents(userID uint, from, to time.Time, kind model.EventKind, limit int) ([]model.ActivityEvent, error) {
	if kind != "" && !kind.Valid() {
		return nil, util.ErrUnknownEventKind
	}
	return s.EventRepo.ListByUser(userID, from, to, kind, limit)
}

// StreakMap 读接口：用户当前的全部打卡记录
func (s *ProgressionService) StreakMap(userID uint) (map[model.StreakKind]model.StreakRecord, error) {
	return s.StreakRepo.MapByUser(userID)
}

// ProgressionSummary 钱包、技能与成就概览
type ProgressionSummary struct {
	TotalXP          int64                 `json:"totalXp"`
	Level            int                   `json:"level"`
	XPToNext         int64                 `json:"xpToNext"`
	CoinBalance      int64                 `json:"coinBalance"`
	Skills           []model.SkillProgress `json:"skills"`
	AchievementCount int64                 `json:"achievementCount"`
	CurrentStreak    int                   `json:"currentStreak"`
	LongestStreak    int                   `json:"longestStreak"`
}

// Summary 读接口：面板用的进步概览
func (s *ProgressionService) Summary(userID uint) (*ProgressionSummary, error) {
	wallet, err := s.WalletRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	skills, err := s.WalletRepo.ListSkills(userID)
	if err != nil {
		return nil, err
	}
	achievementCount, err := s.AchievementRepo.CountUnlocks(userID)
	if err != nil {
		return nil, err
	}
	streaks, err := s.StreakRepo.MapByUser(userID)
	if err != nil {
		return nil, err
	}

	summary := &ProgressionSummary{
		TotalXP:          wallet.TotalXP,
		Level:            wallet.Level,
		XPToNext:         wallet.XPToNext,
		CoinBalance:      wallet.CoinBalance,
		Skills:           skills,
		AchievementCount: achievementCount,
	}
	for _, record := range streaks {
		if record.Current > summary.CurrentStreak {
			summary.CurrentStreak = record.Current
		}
		if record.Longest > summary.LongestStreak {
			summary.LongestStreak = record.Longest
		}
	}
	return summary, nil
}

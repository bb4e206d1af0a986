package service

import (
	"context"
	"encoding/json"
	"time"

	"lifequest_backend/internal/model"
	"lifequest_backend/internal/repository"
	"lifequest_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const leaderboardCacheKey = "lifequest:leaderboard"

// AchievementService 成就目录、用户解锁记录与排行榜的读取面
// 解锁判定由进步引擎完成
type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
	WalletRepo      *repository.WalletRepository
	UserRepo        *repository.UserRepository
	Redis           *redis.Client
}

func NewAchievementService(
	achievementRepo *repository.AchievementRepository,
	walletRepo *repository.WalletRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
) *AchievementService {
	return &AchievementService{
		AchievementRepo: achievementRepo,
		WalletRepo:      walletRepo,
		UserRepo:        userRepo,
		Redis:           rdb,
	}
}

// AchievementView 定义与解锁状态的组合视图，隐藏成就只在解锁后出现
type AchievementView struct {
	model.AchievementDefinition
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}

func (s *AchievementService) ListForUser(userID uint) ([]AchievementView, error) {
	definitions, err := s.AchievementRepo.FindAll()
	if err != nil {
		return nil, err
	}
	unlocks, err := s.AchievementRepo.ListUnlocks(userID)
	if err != nil {
		return nil, err
	}

	unlockedAt := make(map[string]time.Time, len(unlocks))
	for _, unlock := range unlocks {
		unlockedAt[unlock.AchievementKey] = unlock.UnlockedAt
	}

	views := make([]AchievementView, 0, len(definitions))
	for _, definition := range definitions {
		at, unlocked := unlockedAt[definition.Key]
		if definition.Hidden && !unlocked {
			continue
		}
		view := AchievementView{AchievementDefinition: definition, Unlocked: unlocked}
		if unlocked {
			view.UnlockedAt = &at
		}
		views = append(views, view)
	}
	return views, nil
}

type LeaderboardEntry struct {
	Rank  int    `json:"rank"`
	User  string `json:"user"`
	XP    int64  `json:"xp"`
	Level int    `json:"level"`
}

// GetLeaderboard 总经验排行榜，结果在 Redis 缓存 60 秒
func (s *AchievementService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, leaderboardCacheKey).Result()
		if err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil && len(entries) >= limit {
				return entries[:limit], nil
			}
		}
	}

	wallets, err := s.WalletRepo.TopByXP(limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(wallets))
	for _, wallet := range wallets {
		ids = append(ids, wallet.UserID)
	}
	users, err := s.UserRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	nameByID := make(map[uint]string, len(users))
	for _, user := range users {
		nameByID[user.ID] = user.Name
	}

	entries := make([]LeaderboardEntry, len(wallets))
	for i, wallet := range wallets {
		entries[i] = LeaderboardEntry{
			Rank:  i + 1,
			User:  nameByID[wallet.UserID],
			XP:    wallet.TotalXP,
			Level: wallet.Level,
		}
	}

	if s.Redis != nil {
		payload, _ := json.Marshal(entries)
		if err := s.Redis.Set(ctx, leaderboardCacheKey, payload, 60*time.Second).Err(); err != nil {
			logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
		}
	}

	return entries, nil
}

package database

import (
	"fmt"
	"log"

	"lifequest_backend/internal/config"
	"lifequest_backend/internal/model"

	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := SeedDefaults(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.ActivityEvent{},
		&model.Wallet{},
		&model.SkillProgress{},
		&model.QuestDefinition{},
		&model.QuestProgress{},
		&model.StreakRecord{},
		&model.AchievementDefinition{},
		&model.AchievementUnlock{},
		&model.FocusSession{},
		&model.Habit{},
		&model.HabitCompletion{},
		&model.AudioAsset{},
	)
}

// SeedDefaults 初始化默认的任务与成就目录（仅在表为空时写入）
func SeedDefaults(db *gorm.DB) error {
	var questCount int64
	db.Model(&model.QuestDefinition{}).Count(&questCount)
	if questCount == 0 {
		defaultQuests := []model.QuestDefinition{
			{
				Title:        "每日专注",
				Description:  "完成 1 次专注时段",
				Kind:         model.QuestDaily,
				TriggerKinds: datatypes.NewJSONSlice([]model.EventKind{model.EventSessionComplete}),
				Target:       1,
				RewardXP:     20,
				RewardCoins:  10,
				Active:       true,
				SortOrder:    1,
			},
			{
				Title:        "每日打卡",
				Description:  "完成 3 个习惯打卡",
				Kind:         model.QuestDaily,
				TriggerKinds: datatypes.NewJSONSlice([]model.EventKind{model.EventHabitComplete}),
				Target:       3,
				RewardXP:     30,
				RewardCoins:  15,
				Active:       true,
				SortOrder:    2,
			},
			{
				Title:        "一周五练",
				Description:  "本周完成 5 次锻炼",
				Kind:         model.QuestWeekly,
				TriggerKinds: datatypes.NewJSONSlice([]model.EventKind{model.EventWorkoutComplete}),
				Target:       5,
				RewardXP:     100,
				RewardCoins:  50,
				SkillKey:     "fitness",
				Active:       true,
				SortOrder:    3,
			},
			{
				Title:        "学而时习",
				Description:  "本周完成 3 次复习",
				Kind:         model.QuestWeekly,
				TriggerKinds: datatypes.NewJSONSlice([]model.EventKind{model.EventReviewComplete}),
				Target:       3,
				RewardXP:     60,
				RewardCoins:  30,
				SkillKey:     "knowledge",
				Active:       true,
				SortOrder:    4,
			},
		}
		for i := range defaultQuests {
			if err := db.Create(&defaultQuests[i]).Error; err != nil {
				return err
			}
		}
	}

	var achievementCount int64
	db.Model(&model.AchievementDefinition{}).Count(&achievementCount)
	if achievementCount == 0 {
		defaultAchievements := []model.AchievementDefinition{
			{
				Key:             "first_session",
				Name:            "初次专注",
				Description:     "完成第一次专注时段",
				ConditionKind:   model.ConditionFirst,
				ConditionConfig: datatypes.JSON(`{"eventKind":"session_complete"}`),
				RewardXP:        10,
				RewardCoins:     5,
				SortOrder:       1,
			},
			{
				Key:             "first_workout",
				Name:            "迈开第一步",
				Description:     "完成第一次锻炼",
				ConditionKind:   model.ConditionFirst,
				ConditionConfig: datatypes.JSON(`{"eventKind":"workout_complete"}`),
				RewardXP:        10,
				RewardCoins:     5,
				SortOrder:       2,
			},
			{
				Key:             "session_10",
				Name:            "专注十次",
				Description:     "累计完成 10 次专注时段",
				ConditionKind:   model.ConditionCount,
				ConditionConfig: datatypes.JSON(`{"eventKind":"session_complete","targetCount":10}`),
				RewardXP:        50,
				RewardCoins:     20,
				SortOrder:       3,
			},
			{
				Key:             "streak_7",
				Name:            "七日不辍",
				Description:     "连续活跃 7 天",
				ConditionKind:   model.ConditionStreak,
				ConditionConfig: datatypes.JSON(`{"streakKind":"daily_activity","targetLength":7}`),
				RewardXP:        100,
				RewardCoins:     50,
				SortOrder:       4,
			},
			{
				Key:             "streak_30",
				Name:            "月度恒心",
				Description:     "连续活跃 30 天",
				ConditionKind:   model.ConditionStreak,
				ConditionConfig: datatypes.JSON(`{"streakKind":"daily_activity","targetLength":30}`),
				RewardXP:        300,
				RewardCoins:     150,
				Hidden:          true,
				SortOrder:       5,
			},
		}
		for i := range defaultAchievements {
			if err := db.Create(&defaultAchievements[i]).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lifequest_backend/internal/model"
	"lifequest_backend/internal/repository"
	"lifequest_backend/internal/util"
	"lifequest_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newTestEngine(t *testing.T) *ProgressionService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "lifequest.db")), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&model.ActivityEvent{},
		&model.Wallet{},
		&model.SkillProgress{},
		&model.QuestDefinition{},
		&model.QuestProgress{},
		&model.StreakRecord{},
		&model.AchievementDefinition{},
		&model.AchievementUnlock{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return NewProgressionService(
		db,
		repository.NewActivityEventRepository(db),
		repository.NewWalletRepository(db),
		repository.NewQuestRepository(db),
		repository.NewStreakRepository(db),
		repository.NewAchievementRepository(db),
	)
}

func logEvent(t *testing.T, engine *ProgressionService, userID uint, input LogEventInput) *ActivityEventSummary {
	t.Helper()
	summary, err := engine.LogActivityEvent(context.Background(), userID, input)
	if err != nil {
		t.Fatalf("LogActivityEvent(%s) error: %v", input.Kind, err)
	}
	return summary
}

func TestLogActivityEvent_UnknownKind(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.LogActivityEvent(context.Background(), 1, LogEventInput{Kind: "teleport_complete"})
	if err != util.ErrUnknownEventKind {
		t.Fatalf("error = %v, want ErrUnknownEventKind", err)
	}
}

func TestLogActivityEvent_BaseReward(t *testing.T) {
	engine := newTestEngine(t)

	summary := logEvent(t, engine, 1, LogEventInput{
		Kind:       model.EventSessionComplete,
		EntityType: "focus_session",
		EntityID:   1,
	})

	if summary.Duplicate {
		t.Fatal("first occurrence marked duplicate")
	}
	if summary.XPGranted != 25 || summary.CoinsGranted != 10 {
		t.Errorf("granted xp=%d coins=%d, want 25/10", summary.XPGranted, summary.CoinsGranted)
	}
	if summary.Level != 1 || summary.XPToNext != 75 {
		t.Errorf("level=%d toNext=%d, want 1/75", summary.Level, summary.XPToNext)
	}

	wallet, err := engine.WalletRepo.FindByUser(1)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if wallet.TotalXP != 25 || wallet.CoinBalance != 10 {
		t.Errorf("wallet xp=%d coins=%d, want 25/10", wallet.TotalXP, wallet.CoinBalance)
	}

	skill, err := engine.WalletRepo.FindSkill(1, "knowledge")
	if err != nil {
		t.Fatalf("FindSkill: %v", err)
	}
	if skill.XP != 25 {
		t.Errorf("skill xp = %d, want 25", skill.XP)
	}
}

func TestLogActivityEvent_IdempotentForSameEntity(t *testing.T) {
	engine := newTestEngine(t)

	first := logEvent(t, engine, 1, LogEventInput{
		Kind:       model.EventWorkoutComplete,
		EntityType: "workout",
		EntityID:   7,
	})
	second := logEvent(t, engine, 1, LogEventInput{
		Kind:       model.EventWorkoutComplete,
		EntityType: "workout",
		EntityID:   7,
	})

	if !second.Duplicate {
		t.Fatal("second occurrence not marked duplicate")
	}
	if second.XPGranted != 0 || second.CoinsGranted != 0 {
		t.Errorf("duplicate granted xp=%d coins=%d, want 0/0", second.XPGranted, second.CoinsGranted)
	}
	if second.Event.ID != first.Event.ID {
		t.Errorf("duplicate returned event %d, want original %d", second.Event.ID, first.Event.ID)
	}

	wallet, err := engine.WalletRepo.FindByUser(1)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if wallet.TotalXP != 30 {
		t.Errorf("wallet xp = %d, want 30 (single workout)", wallet.TotalXP)
	}
}

func TestLogActivityEvent_EntityLessOccurrencesAreDistinct(t *testing.T) {
	engine := newTestEngine(t)

	logEvent(t, engine, 1, LogEventInput{Kind: model.EventHabitComplete})
	summary := logEvent(t, engine, 1, LogEventInput{Kind: model.EventHabitComplete})

	if summary.Duplicate {
		t.Fatal("entity-less occurrence should never dedup")
	}

	wallet, err := engine.WalletRepo.FindByUser(1)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if wallet.TotalXP != 20 {
		t.Errorf("wallet xp = %d, want 20 (two habit completions)", wallet.TotalXP)
	}
}

func TestLogActivityEvent_LevelUp(t *testing.T) {
	engine := newTestEngine(t)

	xp := 150
	summary := logEvent(t, engine, 1, LogEventInput{
		Kind:     model.EventGoalMilestone,
		CustomXP: &xp,
	})

	if !summary.LeveledUp {
		t.Error("expected level up")
	}
	if summary.Level != 2 {
		t.Errorf("level = %d, want 2", summary.Level)
	}
	if summary.XPToNext != 150 {
		t.Errorf("toNext = %d, want 150", summary.XPToNext)
	}
}

func TestQuests_CompleteAndDailyReopen(t *testing.T) {
	engine := newTestEngine(t)

	quest := &model.QuestDefinition{
		Title:        "每日专注",
		Kind:         model.QuestDaily,
		Target:       1,
		TriggerKinds: datatypes.NewJSONSlice([]model.EventKind{model.EventSessionComplete}),
		RewardXP:     20,
		RewardCoins:  10,
		Active:       true,
	}
	if err := engine.QuestRepo.CreateDefinition(quest); err != nil {
		t.Fatalf("CreateDefinition: %v", err)
	}

	day1 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	engine.Now = func() time.Time { return day1 }

	summary := logEvent(t, engine, 1, LogEventInput{
		Kind: model.EventSessionComplete, EntityType: "focus_session", EntityID: 1,
	})
	if len(summary.CompletedQuests) != 1 || summary.CompletedQuests[0] != "每日专注" {
		t.Fatalf("completed quests = %v, want [每日专注]", summary.CompletedQuests)
	}
	if summary.XPGranted != 45 {
		t.Errorf("granted xp = %d, want 45 (base 25 + quest 20)", summary.XPGranted)
	}

	// 同一天再次完成：任务本周期已完成，不再计酬
	summary = logEvent(t, engine, 1, LogEventInput{
		Kind: model.EventSessionComplete, EntityType: "focus_session", EntityID: 2,
	})
	if len(summary.CompletedQuests) != 0 {
		t.Fatalf("same-day completion should not reopen quest, got %v", summary.CompletedQuests)
	}

	// 次日：每日任务重开，进度从零重新累计
	engine.Now = func() time.Time { return day1.AddDate(0, 0, 1) }
	summary = logEvent(t, engine, 1, LogEventInput{
		Kind: model.EventSessionComplete, EntityType: "focus_session", EntityID: 3,
	})
	if len(summary.CompletedQuests) != 1 {
		t.Fatalf("next-day completion should reopen daily quest, got %v", summary.CompletedQuests)
	}

	progress, err := engine.QuestRepo.GetProgress(1, quest.ID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if !progress.Completed || progress.Progress != 1 {
		t.Errorf("progress = %+v, want completed with progress 1", progress)
	}
}

func TestQuests_IgnoreUnrelatedEvents(t *testing.T) {
	engine := newTestEngine(t)

	quest := &model.QuestDefinition{
		Title:        "一周五练",
		Kind:         model.QuestWeekly,
		Target:       5,
		TriggerKinds: datatypes.NewJSONSlice([]model.EventKind{model.EventWorkoutComplete}),
		RewardXP:     100,
		Active:       true,
	}
	if err := engine.QuestRepo.CreateDefinition(quest); err != nil {
		t.Fatalf("CreateDefinition: %v", err)
	}

	logEvent(t, engine, 1, LogEventInput{Kind: model.EventLessonComplete, EntityType: "lesson", EntityID: 1})

	if _, err := engine.QuestRepo.GetProgress(1, quest.ID); err != gorm.ErrRecordNotFound {
		t.Errorf("unrelated event should not create progress, err = %v", err)
	}
}

func TestStreaks_ConsecutiveDays(t *testing.T) {
	engine := newTestEngine(t)

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	for day := 0; day < 3; day++ {
		current := base.AddDate(0, 0, day)
		engine.Now = func() time.Time { return current }
		logEvent(t, engine, 1, LogEventInput{
			Kind: model.EventSessionComplete, EntityType: "focus_session", EntityID: uint(day + 1),
		})
	}

	record, err := engine.StreakRepo.Get(1, model.StreakSession)
	if err != nil {
		t.Fatalf("Get streak: %v", err)
	}
	if record.Current != 3 || record.Longest != 3 {
		t.Errorf("streak current=%d longest=%d, want 3/3", record.Current, record.Longest)
	}

	// 隔两天再来：连续中断，重置为 1，历史最长保留
	gap := base.AddDate(0, 0, 5)
	engine.Now = func() time.Time { return gap }
	logEvent(t, engine, 1, LogEventInput{
		Kind: model.EventSessionComplete, EntityType: "focus_session", EntityID: 99,
	})

	record, err = engine.StreakRepo.Get(1, model.StreakSession)
	if err != nil {
		t.Fatalf("Get streak: %v", err)
	}
	if record.Current != 1 || record.Longest != 3 {
		t.Errorf("after gap current=%d longest=%d, want 1/3", record.Current, record.Longest)
	}
}

func TestStreaks_SameDayDoesNotDoubleCount(t *testing.T) {
	engine := newTestEngine(t)

	day := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	engine.Now = func() time.Time { return day }
	logEvent(t, engine, 1, LogEventInput{Kind: model.EventWorkoutComplete, EntityType: "workout", EntityID: 1})

	engine.Now = func() time.Time { return day.Add(6 * time.Hour) }
	logEvent(t, engine, 1, LogEventInput{Kind: model.EventWorkoutComplete, EntityType: "workout", EntityID: 2})

	record, err := engine.StreakRepo.Get(1, model.StreakWorkout)
	if err != nil {
		t.Fatalf("Get streak: %v", err)
	}
	if record.Current != 1 {
		t.Errorf("same-day current = %d, want 1", record.Current)
	}
}

func seedAchievement(t *testing.T, engine *ProgressionService, definition *model.AchievementDefinition) {
	t.Helper()
	if err := engine.AchievementRepo.CreateDefinition(definition); err != nil {
		t.Fatalf("CreateDefinition(%s): %v", definition.Key, err)
	}
}

func TestAchievements_FirstCondition(t *testing.T) {
	engine := newTestEngine(t)
	seedAchievement(t, engine, &model.AchievementDefinition{
		Key:             "first_workout",
		Name:            "迈开第一步",
		ConditionKind:   model.ConditionFirst,
		ConditionConfig: datatypes.JSON(`{"eventKind":"workout_complete"}`),
		RewardXP:        10,
		RewardCoins:     5,
	})

	summary := logEvent(t, engine, 1, LogEventInput{
		Kind: model.EventWorkoutComplete, EntityType: "workout", EntityID: 1,
	})

	if len(summary.UnlockedAchievements) != 1 || summary.UnlockedAchievements[0] != "first_workout" {
		t.Fatalf("unlocked = %v, want [first_workout]", summary.UnlockedAchievements)
	}
	if summary.XPGranted != 40 {
		t.Errorf("granted xp = %d, want 40 (base 30 + bonus 10)", summary.XPGranted)
	}

	// 再次触发：唯一索引保证只解锁一次
	summary = logEvent(t, engine, 1, LogEventInput{
		Kind: model.EventWorkoutComplete, EntityType: "workout", EntityID: 2,
	})
	if len(summary.UnlockedAchievements) != 0 {
		t.Errorf("second unlock granted: %v", summary.UnlockedAchievements)
	}

	count, err := engine.AchievementRepo.CountUnlocks(1)
	if err != nil {
		t.Fatalf("CountUnlocks: %v", err)
	}
	if count != 1 {
		t.Errorf("unlock count = %d, want 1", count)
	}
}

func TestAchievements_CountCondition(t *testing.T) {
	engine := newTestEngine(t)
	seedAchievement(t, engine, &model.AchievementDefinition{
		Key:             "session_3",
		Name:            "专注三次",
		ConditionKind:   model.ConditionCount,
		ConditionConfig: datatypes.JSON(`{"eventKind":"session_complete","targetCount":3}`),
		RewardXP:        50,
	})

	for i := 1; i <= 2; i++ {
		summary := logEvent(t, engine, 1, LogEventInput{
			Kind: model.EventSessionComplete, EntityType: "focus_session", EntityID: uint(i),
		})
		if len(summary.UnlockedAchievements) != 0 {
			t.Fatalf("unlocked after %d events: %v", i, summary.UnlockedAchievements)
		}
	}

	summary := logEvent(t, engine, 1, LogEventInput{
		Kind: model.EventSessionComplete, EntityType: "focus_session", EntityID: 3,
	})
	if len(summary.UnlockedAchievements) != 1 || summary.UnlockedAchievements[0] != "session_3" {
		t.Fatalf("unlocked = %v, want [session_3]", summary.UnlockedAchievements)
	}
}

func TestAchievements_StreakCondition(t *testing.T) {
	engine := newTestEngine(t)
	seedAchievement(t, engine, &model.AchievementDefinition{
		Key:             "streak_3",
		Name:            "三日不辍",
		ConditionKind:   model.ConditionStreak,
		ConditionConfig: datatypes.JSON(`{"streakKind":"session","targetLength":3}`),
		RewardXP:        100,
		Hidden:          true,
	})

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	var last *ActivityEventSummary
	for day := 0; day < 3; day++ {
		current := base.AddDate(0, 0, day)
		engine.Now = func() time.Time { return current }
		last = logEvent(t, engine, 1, LogEventInput{
			Kind: model.EventSessionComplete, EntityType: "focus_session", EntityID: uint(day + 1),
		})
	}

	// 隐藏成就同样可解锁
	if len(last.UnlockedAchievements) != 1 || last.UnlockedAchievements[0] != "streak_3" {
		t.Fatalf("unlocked = %v, want [streak_3]", last.UnlockedAchievements)
	}
}

func TestAchievements_BrokenDefinitionIsObservableAndNonFatal(t *testing.T) {
	engine := newTestEngine(t)
	seedAchievement(t, engine, &model.AchievementDefinition{
		Key:             "broken",
		Name:            "坏定义",
		ConditionKind:   model.ConditionKind("lottery"),
		ConditionConfig: datatypes.JSON(`{}`),
	})

	summary := logEvent(t, engine, 1, LogEventInput{
		Kind: model.EventSessionComplete, EntityType: "focus_session", EntityID: 1,
	})

	if summary.AchievementFailures == 0 {
		t.Error("broken definition should be counted as an evaluation failure")
	}
	if summary.XPGranted != 25 {
		t.Errorf("main reward affected by broken definition: xp = %d, want 25", summary.XPGranted)
	}
}

func TestThreeConsecutiveSessionDays(t *testing.T) {
	engine := newTestEngine(t)

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	for day := 0; day < 3; day++ {
		current := base.AddDate(0, 0, day)
		engine.Now = func() time.Time { return current }
		logEvent(t, engine, 1, LogEventInput{
			Kind: model.EventSessionComplete, EntityType: "focus_session", EntityID: uint(day + 1),
		})
	}

	wallet, err := engine.WalletRepo.FindByUser(1)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if wallet.TotalXP != 75 || wallet.CoinBalance != 30 {
		t.Errorf("wallet xp=%d coins=%d, want 75/30", wallet.TotalXP, wallet.CoinBalance)
	}
	if wallet.Level != 1 || wallet.XPToNext != 25 {
		t.Errorf("level=%d toNext=%d, want 1/25", wallet.Level, wallet.XPToNext)
	}

	skill, err := engine.WalletRepo.FindSkill(1, "knowledge")
	if err != nil {
		t.Fatalf("FindSkill: %v", err)
	}
	if skill.XP != 75 {
		t.Errorf("knowledge xp = %d, want 75", skill.XP)
	}

	streaks, err := engine.StreakRepo.MapByUser(1)
	if err != nil {
		t.Fatalf("MapByUser: %v", err)
	}
	record, ok := streaks[model.StreakSession]
	if !ok || record.Current != 3 || record.Longest != 3 {
		t.Errorf("session streak = %+v, want current 3, longest 3", record)
	}
}

func TestSummary_AggregatesWalletSkillsAndStreaks(t *testing.T) {
	engine := newTestEngine(t)

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	for day := 0; day < 2; day++ {
		current := base.AddDate(0, 0, day)
		engine.Now = func() time.Time { return current }
		logEvent(t, engine, 1, LogEventInput{
			Kind: model.EventSessionComplete, EntityType: "focus_session", EntityID: uint(day + 1),
		})
	}

	summary, err := engine.Summary(1)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.TotalXP != 50 {
		t.Errorf("total xp = %d, want 50", summary.TotalXP)
	}
	if summary.CurrentStreak != 2 {
		t.Errorf("current streak = %d, want 2", summary.CurrentStreak)
	}
	if len(summary.Skills) != 1 || summary.Skills[0].SkillKey != "knowledge" {
		t.Errorf("skills = %+v, want single knowledge entry", summary.Skills)
	}
}

package repository

import (
	"testing"
	"time"

	"lifequest_backend/internal/model"
)

func TestStreakTouch_FirstActivity(t *testing.T) {
	repo := NewStreakRepository(newTestDB(t))

	day := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	record, err := repo.Touch(1, model.StreakSession, day)
	if err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if record.Current != 1 || record.Longest != 1 {
		t.Errorf("current=%d longest=%d, want 1/1", record.Current, record.Longest)
	}
}

func TestStreakTouch_SameDayIsNoop(t *testing.T) {
	repo := NewStreakRepository(newTestDB(t))

	day := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo.Touch(1, model.StreakSession, day)
	record, err := repo.Touch(1, model.StreakSession, day.Add(10*time.Hour))
	if err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if record.Current != 1 {
		t.Errorf("current = %d, want 1", record.Current)
	}
}

func TestStreakTouch_YesterdayExtends(t *testing.T) {
	repo := NewStreakRepository(newTestDB(t))

	day := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo.Touch(1, model.StreakSession, day)
	record, err := repo.Touch(1, model.StreakSession, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if record.Current != 2 || record.Longest != 2 {
		t.Errorf("current=%d longest=%d, want 2/2", record.Current, record.Longest)
	}
}

func TestStreakTouch_GapResets(t *testing.T) {
	repo := NewStreakRepository(newTestDB(t))

	day := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo.Touch(1, model.StreakSession, day)
	repo.Touch(1, model.StreakSession, day.AddDate(0, 0, 1))
	repo.Touch(1, model.StreakSession, day.AddDate(0, 0, 2))

	record, err := repo.Touch(1, model.StreakSession, day.AddDate(0, 0, 10))
	if err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if record.Current != 1 {
		t.Errorf("current = %d, want 1 after gap", record.Current)
	}
	if record.Longest != 3 {
		t.Errorf("longest = %d, want 3 preserved", record.Longest)
	}
}

func TestStreak_KindsAreIndependent(t *testing.T) {
	repo := NewStreakRepository(newTestDB(t))

	day := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo.Touch(1, model.StreakSession, day)
	repo.Touch(1, model.StreakSession, day.AddDate(0, 0, 1))
	repo.Touch(1, model.StreakWorkout, day.AddDate(0, 0, 1))

	streaks, err := repo.MapByUser(1)
	if err != nil {
		t.Fatalf("MapByUser: %v", err)
	}
	if streaks[model.StreakSession].Current != 2 {
		t.Errorf("session current = %d, want 2", streaks[model.StreakSession].Current)
	}
	if streaks[model.StreakWorkout].Current != 1 {
		t.Errorf("workout current = %d, want 1", streaks[model.StreakWorkout].Current)
	}
}

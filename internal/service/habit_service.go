package service

import (
	"context"
	"time"

	"lifequest_backend/internal/model"
	"lifequest_backend/internal/repository"
	"lifequest_backend/internal/util"
)

// HabitService 习惯表面：完成当日打卡时向进步引擎上报 habit_complete
type HabitService struct {
	HabitRepo   *repository.HabitRepository
	Progression *ProgressionService
}

func NewHabitService(habitRepo *repository.HabitRepository, progression *ProgressionService) *HabitService {
	return &HabitService{
		HabitRepo:   habitRepo,
		Progression: progression,
	}
}

type HabitRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (s *HabitService) CreateHabit(userID uint, req HabitRequest) (*model.Habit, error) {
	habit := &model.Habit{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.HabitRepo.Create(habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *HabitService) ListHabits(userID uint) ([]model.Habit, error) {
	return s.HabitRepo.ListByUser(userID)
}

func (s *HabitService) ArchiveHabit(userID, habitID uint) error {
	habit, err := s.HabitRepo.FindByIDAndUser(habitID, userID)
	if err != nil {
		return util.ErrHabitNotFound
	}
	habit.Archived = true
	return s.HabitRepo.Update(habit)
}

// CompleteToday 当日打卡：一天只记一次，完成记录本身就是事件的来源实体
func (s *HabitService) CompleteToday(ctx context.Context, userID, habitID uint) (*ActivityEventSummary, error) {
	if _, err := s.HabitRepo.FindByIDAndUser(habitID, userID); err != nil {
		return nil, util.ErrHabitNotFound
	}

	completion, err := s.HabitRepo.MarkCompleted(habitID, userID, time.Now())
	if err != nil {
		return nil, err
	}
	if completion == nil {
		return nil, util.ErrHabitAlreadyDone
	}

	// 完成记录本身是事件的来源实体，引擎的幂等闸门与完成表的唯一索引双重兜底
	return s.Progression.LogActivityEvent(ctx, userID, LogEventInput{
		Kind:       model.EventHabitComplete,
		EntityType: "habit_completion",
		EntityID:   completion.ID,
	})
}

func (s *HabitService) ListCompletions(userID, habitID uint, from, to time.Time) ([]model.HabitCompletion, error) {
	if _, err := s.HabitRepo.FindByIDAndUser(habitID, userID); err != nil {
		return nil, util.ErrHabitNotFound
	}
	return s.HabitRepo.ListCompletions(habitID, from, to)
}

package repository

import (
	"time"

	"lifequest_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HabitRepository struct {
	DB *gorm.DB
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{DB: db}
}

func (r *HabitRepository) Create(habit *model.Habit) error {
	return r.DB.Create(habit).Error
}

func (r *HabitRepository) FindByIDAndUser(id, userID uint) (*model.Habit, error) {
	var habit model.Habit
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&habit).Error
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

func (r *HabitRepository) Update(habit *model.Habit) error {
	return r.DB.Save(habit).Error
}

func (r *HabitRepository) ListByUser(userID uint) ([]model.Habit, error) {
	var habits []model.Habit
	err := r.DB.Where("user_id = ? AND archived = ?", userID, false).
		Order("created_at DESC").Find(&habits).Error
	return habits, err
}

// MarkCompleted 记录当日完成，（习惯，日期）唯一索引保证一天一条
// 当日已完成过时返回 nil 记录
func (r *HabitRepository) MarkCompleted(habitID, userID uint, day time.Time) (*model.HabitCompletion, error) {
	completion := model.HabitCompletion{
		HabitID:     habitID,
		UserID:      userID,
		CompletedOn: time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()),
	}
	result := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "habit_id"}, {Name: "completed_on"}},
		DoNothing: true,
	}).Create(&completion)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &completion, nil
}

func (r *HabitRepository) ListCompletions(habitID uint, from, to time.Time) ([]model.HabitCompletion, error) {
	var completions []model.HabitCompletion
	query := r.DB.Where("habit_id = ?", habitID)
	if !from.IsZero() {
		query = query.Where("completed_on >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("completed_on < ?", to)
	}
	err := query.Order("completed_on DESC").Find(&completions).Error
	return completions, err
}

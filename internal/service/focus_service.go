package service

import (
	"context"
	"time"

	"lifequest_backend/internal/model"
	"lifequest_backend/internal/repository"
	"lifequest_backend/internal/util"
)

// FocusService 专注会话表面：记录起止并向进步引擎上报事件
// 倒计时本身由客户端负责
type FocusService struct {
	SessionRepo *repository.FocusSessionRepository
	Progression *ProgressionService
}

func NewFocusService(sessionRepo *repository.FocusSessionRepository, progression *ProgressionService) *FocusService {
	return &FocusService{
		SessionRepo: sessionRepo,
		Progression: progression,
	}
}

type StartFocusRequest struct {
	Title          string `json:"title"`
	PlannedMinutes int    `json:"plannedMinutes"`
}

// StartSession 开始一次专注会话并上报 session_start
func (s *FocusService) StartSession(ctx context.Context, userID uint, req StartFocusRequest) (*model.FocusSession, error) {
	if req.PlannedMinutes <= 0 {
		req.PlannedMinutes = 25
	}

	session := &model.FocusSession{
		UserID:         userID,
		Title:          req.Title,
		PlannedMinutes: req.PlannedMinutes,
		Status:         model.FocusRunning,
		StartedAt:      time.Now(),
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}

	// 开始事件零奖励，只为审计与成就条件留痕
	_, err := s.Progression.LogActivityEvent(ctx, userID, LogEventInput{
		Kind:       model.EventSessionStart,
		EntityType: "focus_session",
		EntityID:   session.ID,
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// CompleteSession 结束会话并上报 session_complete，奖励由进步引擎发放
func (s *FocusService) CompleteSession(ctx context.Context, userID, sessionID uint) (*model.FocusSession, *ActivityEventSummary, error) {
	session, err := s.SessionRepo.FindByIDAndUser(sessionID, userID)
	if err != nil {
		return nil, nil, util.ErrSessionNotFound
	}
	if session.Status != model.FocusRunning {
		return nil, nil, util.ErrSessionNotRunning
	}

	now := time.Now()
	session.Status = model.FocusCompleted
	session.EndedAt = &now
	session.ActualMinutes = int(now.Sub(session.StartedAt).Minutes())
	if err := s.SessionRepo.Update(session); err != nil {
		return nil, nil, err
	}

	summary, err := s.Progression.LogActivityEvent(ctx, userID, LogEventInput{
		Kind:       model.EventSessionComplete,
		EntityType: "focus_session",
		EntityID:   session.ID,
	})
	if err != nil {
		return nil, nil, err
	}

	return session, summary, nil
}

// AbandonSession 放弃会话，不产生任何进步事件
func (s *FocusService) AbandonSession(userID, sessionID uint) (*model.FocusSession, error) {
	session, err := s.SessionRepo.FindByIDAndUser(sessionID, userID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if session.Status != model.FocusRunning {
		return nil, util.ErrSessionNotRunning
	}

	now := time.Now()
	session.Status = model.FocusAbandoned
	session.EndedAt = &now
	if err := s.SessionRepo.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *FocusService) ListSessions(userID uint, limit int) ([]model.FocusSession, error) {
	return s.SessionRepo.ListByUser(userID, limit)
}

package service

import (
	"lifequest_backend/internal/model"
	"lifequest_backend/internal/repository"
	"lifequest_backend/internal/util"
)

// QuestService 任务目录的编辑面与用户进度的读取面
// 进度推进本身完全由进步引擎负责
type QuestService struct {
	QuestRepo *repository.QuestRepository
}

func NewQuestService(questRepo *repository.QuestRepository) *QuestService {
	return &QuestService{QuestRepo: questRepo}
}

type QuestDefinitionRequest struct {
	Title        string            `json:"title" binding:"required"`
	Description  string            `json:"description"`
	Kind         model.QuestKind   `json:"kind" binding:"required"`
	Target       int               `json:"target" binding:"required"`
	TriggerKinds []model.EventKind `json:"triggerKinds" binding:"required"`
	RewardXP     int               `json:"rewardXp"`
	RewardCoins  int               `json:"rewardCoins"`
	SkillKey     string            `json:"skillKey"`
}

func (s *QuestService) CreateDefinition(req QuestDefinitionRequest) (*model.QuestDefinition, error) {
	for _, kind := range req.TriggerKinds {
		if !kind.Valid() {
			return nil, util.ErrUnknownEventKind
		}
	}

	quest := &model.QuestDefinition{
		Title:        req.Title,
		Description:  req.Description,
		Kind:         req.Kind,
		Target:       req.Target,
		TriggerKinds: req.TriggerKinds,
		RewardXP:     req.RewardXP,
		RewardCoins:  req.RewardCoins,
		SkillKey:     req.SkillKey,
		Active:       true,
	}
	if err := s.QuestRepo.CreateDefinition(quest); err != nil {
		return nil, err
	}
	return quest, nil
}

func (s *QuestService) SetActive(questID uint, active bool) error {
	quest, err := s.QuestRepo.FindByID(questID)
	if err != nil {
		return util.ErrQuestNotFound
	}
	quest.Active = active
	return s.QuestRepo.UpdateDefinition(quest)
}

func (s *QuestService) ListDefinitions() ([]model.QuestDefinition, error) {
	return s.QuestRepo.FindActive()
}

// QuestWithProgress 任务定义与当前用户进度的组合视图
type QuestWithProgress struct {
	model.QuestDefinition
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`
}

// ListForUser 用户任务界面：定义与进度合并
func (s *QuestService) ListForUser(userID uint) ([]QuestWithProgress, error) {
	definitions, err := s.QuestRepo.FindActive()
	if err != nil {
		return nil, err
	}
	rows, err := s.QuestRepo.ListProgressByUser(userID)
	if err != nil {
		return nil, err
	}

	progressByQuest := make(map[uint]model.QuestProgress, len(rows))
	for _, row := range rows {
		progressByQuest[row.QuestID] = row
	}

	result := make([]QuestWithProgress, 0, len(definitions))
	for _, definition := range definitions {
		entry := QuestWithProgress{QuestDefinition: definition}
		if progress, ok := progressByQuest[definition.ID]; ok {
			entry.Progress = progress.Progress
			entry.Completed = progress.Completed
		}
		result = append(result, entry)
	}
	return result, nil
}

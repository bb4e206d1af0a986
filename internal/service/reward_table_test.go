package service

import (
	"testing"

	"lifequest_backend/internal/model"
)

func TestBaseReward_AllKindsCovered(t *testing.T) {
	for _, kind := range model.AllEventKinds {
		if _, ok := BaseReward(kind); !ok {
			t.Errorf("no base reward entry for %s", kind)
		}
	}
}

func TestBaseReward_StartEventsAreFree(t *testing.T) {
	for _, kind := range []model.EventKind{
		model.EventSessionStart,
		model.EventWorkoutStart,
		model.EventLessonStart,
		model.EventQuestComplete,
	} {
		reward, _ := BaseReward(kind)
		if reward.XP != 0 || reward.Coins != 0 {
			t.Errorf("%s should carry no base reward, got xp=%d coins=%d", kind, reward.XP, reward.Coins)
		}
	}
}

func TestBaseReward_CompletionEventsPay(t *testing.T) {
	for _, kind := range []model.EventKind{
		model.EventSessionComplete,
		model.EventWorkoutComplete,
		model.EventLessonComplete,
		model.EventReviewComplete,
		model.EventHabitComplete,
		model.EventGoalMilestone,
		model.EventPlannerTaskComplete,
	} {
		reward, _ := BaseReward(kind)
		if reward.XP <= 0 {
			t.Errorf("%s should grant xp, got %d", kind, reward.XP)
		}
	}
}

func TestBaseReward_UnknownKind(t *testing.T) {
	if _, ok := BaseReward(model.EventKind("teleport_complete")); ok {
		t.Error("unknown kind should not have a reward entry")
	}
}

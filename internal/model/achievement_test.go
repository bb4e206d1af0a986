package model

import (
	"testing"

	"gorm.io/datatypes"
)

func TestParseCondition(t *testing.T) {
	tests := []struct {
		name    string
		kind    ConditionKind
		config  string
		wantErr bool
	}{
		{"valid first", ConditionFirst, `{"eventKind":"session_complete"}`, false},
		{"first without event", ConditionFirst, `{}`, true},
		{"first with unknown event", ConditionFirst, `{"eventKind":"teleport"}`, true},
		{"valid count", ConditionCount, `{"eventKind":"workout_complete","targetCount":10}`, false},
		{"count without target", ConditionCount, `{"eventKind":"workout_complete"}`, true},
		{"valid streak", ConditionStreak, `{"streakKind":"daily_activity","targetLength":7}`, false},
		{"streak without length", ConditionStreak, `{"streakKind":"daily_activity"}`, true},
		{"unknown kind", ConditionKind("lottery"), `{}`, true},
		{"malformed json", ConditionFirst, `{`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			definition := &AchievementDefinition{
				Key:             "test",
				ConditionKind:   tt.kind,
				ConditionConfig: datatypes.JSON(tt.config),
			}
			_, err := definition.ParseCondition()
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseCondition() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEventKindValid(t *testing.T) {
	for _, kind := range AllEventKinds {
		if !kind.Valid() {
			t.Errorf("%s should be valid", kind)
		}
	}
	if EventKind("teleport_complete").Valid() {
		t.Error("unknown kind should be invalid")
	}
}

func TestStreakKindForEvent(t *testing.T) {
	if kind, ok := StreakKindForEvent(EventSessionComplete); !ok || kind != StreakSession {
		t.Errorf("session_complete -> %s/%v, want session/true", kind, ok)
	}
	if kind, ok := StreakKindForEvent(EventHabitComplete); !ok || kind != StreakDailyActivity {
		t.Errorf("habit_complete -> %s/%v, want daily_activity/true", kind, ok)
	}
	if _, ok := StreakKindForEvent(EventSessionStart); ok {
		t.Error("start events should not feed a streak")
	}
}

func TestQuestRespondsTo(t *testing.T) {
	quest := &QuestDefinition{
		TriggerKinds: []EventKind{EventSessionComplete, EventLessonComplete},
	}
	if !quest.RespondsTo(EventSessionComplete) {
		t.Error("should respond to session_complete")
	}
	if quest.RespondsTo(EventWorkoutComplete) {
		t.Error("should not respond to workout_complete")
	}
}

func TestQuestRepeatable(t *testing.T) {
	if (&QuestDefinition{Kind: QuestOneTime}).Repeatable() {
		t.Error("one_time quests must not reopen")
	}
	if !(&QuestDefinition{Kind: QuestDaily}).Repeatable() {
		t.Error("daily quests must reopen")
	}
	if !(&QuestDefinition{Kind: QuestWeekly}).Repeatable() {
		t.Error("weekly quests must reopen")
	}
}

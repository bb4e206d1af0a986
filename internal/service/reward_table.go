package service

import "lifequest_backend/internal/model"

// Reward 事件的基础奖励三元组
type Reward struct {
	XP       int
	Coins    int
	SkillKey string
}

// rewardTable 事件类型到基础奖励的静态映射
// quest_complete 一类由任务匹配器计酬的事件刻意映射为零奖励
var rewardTable = map[model.EventKind]Reward{
	model.EventSessionStart:        {XP: 0, Coins: 0},
	model.EventSessionComplete:     {XP: 25, Coins: 10, SkillKey: "knowledge"},
	model.EventWorkoutStart:        {XP: 0, Coins: 0},
	model.EventWorkoutComplete:     {XP: 30, Coins: 10, SkillKey: "fitness"},
	model.EventLessonStart:         {XP: 0, Coins: 0},
	model.EventLessonComplete:      {XP: 20, Coins: 5, SkillKey: "knowledge"},
	model.EventReviewComplete:      {XP: 15, Coins: 5, SkillKey: "knowledge"},
	model.EventHabitComplete:       {XP: 10, Coins: 5},
	model.EventQuestComplete:       {XP: 0, Coins: 0},
	model.EventGoalMilestone:       {XP: 50, Coins: 20},
	model.EventPlannerTaskComplete: {XP: 10, Coins: 5},
}

// BaseReward 查基础奖励表，未知类型返回零值与 false
func BaseReward(kind model.EventKind) (Reward, bool) {
	reward, ok := rewardTable[kind]
	return reward, ok
}

package util

import "errors"

var (
	ErrUserNotFound         = errors.New("用户不存在")
	ErrEmailRegistered      = errors.New("该邮箱已被注册")
	ErrUnknownEventKind     = errors.New("unknown event kind")
	ErrSessionNotFound      = errors.New("focus session not found")
	ErrSessionNotRunning    = errors.New("focus session is not running")
	ErrHabitNotFound        = errors.New("habit not found")
	ErrHabitAlreadyDone     = errors.New("habit already completed today")
	ErrQuestNotFound        = errors.New("quest not found")
	ErrAssetNotFound        = errors.New("audio asset not found")
	ErrUnsupportedAudioType = errors.New("unsupported audio file type")
)

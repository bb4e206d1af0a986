package controller

import (
	"errors"
	"strconv"
	"time"

	"lifequest_backend/internal/service"
	"lifequest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HabitController struct {
	HabitService *service.HabitService
}

func NewHabitController(habitService *service.HabitService) *HabitController {
	return &HabitController{HabitService: habitService}
}

// CreateHabit godoc
// @Summary 创建习惯
// @Description 为当前用户创建一个新的每日习惯
// @Tags 习惯
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.HabitRequest true "习惯信息"
// @Success 201 {object} util.Response{data=model.Habit} "创建成功"
// @Failure 400 {object} util.Response "参数错误"
// @Router /api/habits [post]
func (c *HabitController) CreateHabit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.HabitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	habit, err := c.HabitService.CreateHabit(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, habit)
}

// ListHabits godoc
// @Summary 查询习惯列表
// @Description 当前用户未归档的习惯
// @Tags 习惯
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Habit} "成功"
// @Router /api/habits [get]
func (c *HabitController) ListHabits(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	habits, err := c.HabitService.ListHabits(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, habits)
}

// CompleteHabit godoc
// @Summary 习惯打卡
// @Description 完成当日打卡并上报 habit_complete，一天只记一次
// @Tags 习惯
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "习惯ID"
// @Success 200 {object} util.Response{data=service.ActivityEventSummary} "成功"
// @Failure 404 {object} util.Response "习惯不存在"
// @Failure 409 {object} util.Response "今天已经打过卡"
// @Router /api/habits/{id}/complete [post]
func (c *HabitController) CompleteHabit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	habitID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid habit id")
		return
	}

	summary, err := c.HabitService.CompleteToday(ctx.Request.Context(), claims.UserID, uint(habitID))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrHabitNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrHabitAlreadyDone):
			util.Error(ctx, 409, "今天已经打过卡")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, summary)
}

// ArchiveHabit godoc
// @Summary 归档习惯
// @Description 归档后不再出现在习惯列表中
// @Tags 习惯
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "习惯ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "习惯不存在"
// @Router /api/habits/{id}/archive [post]
func (c *HabitController) ArchiveHabit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	habitID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid habit id")
		return
	}

	if err := c.HabitService.ArchiveHabit(claims.UserID, uint(habitID)); err != nil {
		if errors.Is(err, util.ErrHabitNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// ListCompletions godoc
// @Summary 查询打卡记录
// @Description 某习惯在时间范围内的完成记录
// @Tags 习惯
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "习惯ID"
// @Param   from query string false "起始日期（RFC3339）"
// @Param   to query string false "结束日期（RFC3339）"
// @Success 200 {object} util.Response{data=[]model.HabitCompletion} "成功"
// @Failure 404 {object} util.Response "习惯不存在"
// @Router /api/habits/{id}/completions [get]
func (c *HabitController) ListCompletions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	habitID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid habit id")
		return
	}

	var from, to time.Time
	if v := ctx.Query("from"); v != "" {
		if from, err = time.Parse(time.RFC3339, v); err != nil {
			util.BadRequest(ctx, "invalid from time")
			return
		}
	}
	if v := ctx.Query("to"); v != "" {
		if to, err = time.Parse(time.RFC3339, v); err != nil {
			util.BadRequest(ctx, "invalid to time")
			return
		}
	}

	completions, err := c.HabitService.ListCompletions(claims.UserID, uint(habitID), from, to)
	if err != nil {
		if errors.Is(err, util.ErrHabitNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, completions)
}

package controller

import (
	"errors"
	"strconv"
	"time"

	"lifequest_backend/internal/model"
	"lifequest_backend/internal/service"
	"lifequest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ProgressionController 进步引擎的 HTTP 表面：事件上报与各类读接口
type ProgressionController struct {
	Progression *service.ProgressionService
}

func NewProgressionController(progression *service.ProgressionService) *ProgressionController {
	return &ProgressionController{Progression: progression}
}

// LogEvent godoc
// @Summary 上报活动事件
// @Description 上报一次活动发生，引擎幂等地发放奖励并推进任务、打卡与成就
// @Tags 进步
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.LogEventInput true "事件内容"
// @Success 200 {object} util.Response{data=service.ActivityEventSummary} "成功（重复投递时 duplicate 为 true）"
// @Failure 400 {object} util.Response "未知的事件类型"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/activity/events [post]
func (c *ProgressionController) LogEvent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.LogEventInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.Progression.LogActivityEvent(ctx.Request.Context(), claims.UserID, input)
	if err != nil {
		if errors.Is(err, util.ErrUnknownEventKind) {
			util.BadRequest(ctx, "未知的事件类型")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, summary)
}

// ListEvents godoc
// @Summary 查询活动事件
// @Description 按时间范围与可选类型列出当前用户的活动事件
// @Tags 进步
// @Produce  json
// @Security ApiKeyAuth
// @Param   from query string false "起始时间（RFC3339）"
// @Param   to query string false "结束时间（RFC3339）"
// @Param   kind query string false "事件类型"
// @Param   limit query int false "返回条数上限"
// @Success 200 {object} util.Response{data=[]model.ActivityEvent} "成功"
// @Failure 400 {object} util.Response "参数错误"
// @Router /api/activity/events [get]
func (c *ProgressionController) ListEvents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var from, to time.Time
	if v := ctx.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			util.BadRequest(ctx, "invalid from time")
			return
		}
		from = t
	}
	if v := ctx.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			util.BadRequest(ctx, "invalid to time")
			return
		}
		to = t
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	events, err := c.Progression.ListEvents(claims.UserID, from, to, model.EventKind(ctx.Query("kind")), limit)
	if err != nil {
		if errors.Is(err, util.ErrUnknownEventKind) {
			util.BadRequest(ctx, "未知的事件类型")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, events)
}

// GetStreaks godoc
// @Summary 查询打卡状态
// @Description 当前用户各打卡类型的连续天数与历史最长记录
// @Tags 进步
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "成功"
// @Router /api/activity/streaks [get]
func (c *ProgressionController) GetStreaks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	streaks, err := c.Progression.StreakMap(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, streaks)
}

// GetSummary godoc
// @Summary 进步概览
// @Description 面板用的钱包、技能、成就与打卡概览
// @Tags 进步
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ProgressionSummary} "成功"
// @Router /api/activity/summary [get]
func (c *ProgressionController) GetSummary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.Progression.Summary(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

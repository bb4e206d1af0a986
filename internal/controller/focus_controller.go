package controller

import (
	"errors"
	"strconv"

	"lifequest_backend/internal/service"
	"lifequest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FocusController struct {
	FocusService *service.FocusService
}

func NewFocusController(focusService *service.FocusService) *FocusController {
	return &FocusController{FocusService: focusService}
}

// StartSession godoc
// @Summary 开始专注会话
// @Description 创建一个进行中的专注会话并上报 session_start 事件
// @Tags 专注
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.StartFocusRequest true "会话信息"
// @Success 201 {object} util.Response{data=model.FocusSession} "创建成功"
// @Failure 400 {object} util.Response "参数错误"
// @Router /api/focus/sessions [post]
func (c *FocusController) StartSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.StartFocusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.FocusService.StartSession(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, session)
}

// CompleteSession godoc
// @Summary 完成专注会话
// @Description 结束会话并上报 session_complete，返回奖励结算结果
// @Tags 专注
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "会话ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Failure 409 {object} util.Response "会话不在进行中"
// @Router /api/focus/sessions/{id}/complete [post]
func (c *FocusController) CompleteSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	session, summary, err := c.FocusService.CompleteSession(ctx.Request.Context(), claims.UserID, uint(sessionID))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSessionNotRunning):
			util.Error(ctx, 409, "会话不在进行中")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"session": session,
		"reward":  summary,
	})
}

// AbandonSession godoc
// @Summary 放弃专注会话
// @Description 放弃进行中的会话，不产生任何奖励
// @Tags 专注
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "会话ID"
// @Success 200 {object} util.Response{data=model.FocusSession} "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/focus/sessions/{id}/abandon [post]
func (c *FocusController) AbandonSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	session, err := c.FocusService.AbandonSession(claims.UserID, uint(sessionID))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSessionNotRunning):
			util.Error(ctx, 409, "会话不在进行中")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, session)
}

// ListSessions godoc
// @Summary 查询专注会话
// @Description 当前用户最近的专注会话记录
// @Tags 专注
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "返回条数上限"
// @Success 200 {object} util.Response{data=[]model.FocusSession} "成功"
// @Router /api/focus/sessions [get]
func (c *FocusController) ListSessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	sessions, err := c.FocusService.ListSessions(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, sessions)
}

package controller

import (
	"errors"
	"strconv"

	"lifequest_backend/internal/service"
	"lifequest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestController struct {
	QuestService *service.QuestService
}

func NewQuestController(questService *service.QuestService) *QuestController {
	return &QuestController{QuestService: questService}
}

// ListQuests godoc
// @Summary 查询任务列表
// @Description 当前激活的任务目录及当前用户的进度
// @Tags 任务
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.QuestWithProgress} "成功"
// @Router /api/quests [get]
func (c *QuestController) ListQuests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quests, err := c.QuestService.ListForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, quests)
}

// CreateQuest godoc
// @Summary 创建任务定义
// @Description 管理员向任务目录添加新任务
// @Tags 任务
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.QuestDefinitionRequest true "任务定义"
// @Success 201 {object} util.Response{data=model.QuestDefinition} "创建成功"
// @Failure 400 {object} util.Response "参数错误或未知的事件类型"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/admin/quests [post]
func (c *QuestController) CreateQuest(ctx *gin.Context) {
	var req service.QuestDefinitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quest, err := c.QuestService.CreateDefinition(req)
	if err != nil {
		if errors.Is(err, util.ErrUnknownEventKind) {
			util.BadRequest(ctx, "未知的触发事件类型")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, quest)
}

// SetQuestActiveRequest 任务上下架请求
type SetQuestActiveRequest struct {
	Active bool `json:"active"`
}

// SetQuestActive godoc
// @Summary 任务上下架
// @Description 管理员启用或停用某个任务定义
// @Tags 任务
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "任务ID"
// @Param   body body SetQuestActiveRequest true "上下架状态"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "任务不存在"
// @Router /api/admin/quests/{id}/active [patch]
func (c *QuestController) SetQuestActive(ctx *gin.Context) {
	questID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid quest id")
		return
	}

	var req SetQuestActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.QuestService.SetActive(uint(questID), req.Active); err != nil {
		if errors.Is(err, util.ErrQuestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

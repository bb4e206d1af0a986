package controller

import (
	"errors"
	"strconv"

	"lifequest_backend/internal/service"
	"lifequest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssetController struct {
	AssetService *service.AssetService
}

func NewAssetController(assetService *service.AssetService) *AssetController {
	return &AssetController{AssetService: assetService}
}

// UploadAsset godoc
// @Summary 上传音频素材
// @Description 上传白噪音等专注用音频，自动探测时长
// @Tags 素材
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "音频文件"
// @Param   title formData string false "素材标题，默认取文件名"
// @Success 201 {object} util.Response{data=model.AudioAsset} "创建成功"
// @Failure 400 {object} util.Response "不支持的音频格式"
// @Router /api/assets/audio [post]
func (c *AssetController) UploadAsset(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	asset, err := c.AssetService.Upload(ctx.Request.Context(), claims.UserID, ctx.PostForm("title"), file)
	if err != nil {
		if errors.Is(err, util.ErrUnsupportedAudioType) {
			util.BadRequest(ctx, "不支持的音频格式")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, asset)
}

// ListAssets godoc
// @Summary 查询音频素材
// @Description 当前用户上传的音频素材列表
// @Tags 素材
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.AudioAsset} "成功"
// @Router /api/assets/audio [get]
func (c *AssetController) ListAssets(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	assets, err := c.AssetService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, assets)
}

// GetAssetURL godoc
// @Summary 获取素材访问地址
// @Tags 素材
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "素材ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "素材不存在"
// @Router /api/assets/audio/{id}/url [get]
func (c *AssetController) GetAssetURL(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	assetID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid asset id")
		return
	}

	url, err := c.AssetService.DownloadURL(claims.UserID, uint(assetID))
	if err != nil {
		if errors.Is(err, util.ErrAssetNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"url": url})
}

// DeleteAsset godoc
// @Summary 删除音频素材
// @Tags 素材
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "素材ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "素材不存在"
// @Router /api/assets/audio/{id} [delete]
func (c *AssetController) DeleteAsset(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	assetID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid asset id")
		return
	}

	if err := c.AssetService.Delete(ctx.Request.Context(), claims.UserID, uint(assetID)); err != nil {
		if errors.Is(err, util.ErrAssetNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

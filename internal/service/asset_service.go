package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"lifequest_backend/internal/model"
	"lifequest_backend/internal/repository"
	"lifequest_backend/internal/util"
	"lifequest_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssetService 音频制作素材库：文件进对象存储，元数据进数据库
type AssetService struct {
	AssetRepo *repository.AudioAssetRepository
	Storage   *StorageService
}

func NewAssetService(assetRepo *repository.AudioAssetRepository, storage *StorageService) *AssetService {
	return &AssetService{
		AssetRepo: assetRepo,
		Storage:   storage,
	}
}

// Upload 保存音频文件并用 ffmpeg 探测时长
func (s *AssetService) Upload(ctx context.Context, userID uint, title string, file *multipart.FileHeader) (*model.AudioAsset, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range util.AllowedAudioExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, util.ErrUnsupportedAudioType
	}

	// 先落到临时文件，探测元数据后再上传
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "audio-*"+ext)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	size, err := tmp.ReadFrom(src)
	if err != nil {
		return nil, err
	}

	var duration float64
	if info, err := util.GetAudioInfo(tmp.Name()); err != nil {
		// 探测失败不阻塞上传，时长留空
		logger.Log.Warn("audio probe failed", zap.String("file", file.Filename), zap.Error(err))
	} else {
		duration = info.Duration
	}

	if _, err := tmp.Seek(0, 0); err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("audio/%d/%s%s", userID, uuid.NewString(), ext)
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, util.MimeAudio) {
		contentType = util.MimeOctetStream
	}
	if _, err := s.Storage.Provider.Upload(ctx, objectKey, tmp, size, contentType); err != nil {
		return nil, err
	}

	if title == "" {
		title = file.Filename
	}
	asset := &model.AudioAsset{
		UserID:          userID,
		Title:           title,
		ObjectKey:       objectKey,
		ContentType:     contentType,
		SizeBytes:       size,
		DurationSeconds: duration,
	}
	if err := s.AssetRepo.Create(asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *AssetService) List(userID uint) ([]model.AudioAsset, error) {
	return s.AssetRepo.ListByUser(userID)
}

// DownloadURL 素材的访问地址
func (s *AssetService) DownloadURL(userID, assetID uint) (string, error) {
	asset, err := s.AssetRepo.FindByIDAndUser(assetID, userID)
	if err != nil {
		return "", util.ErrAssetNotFound
	}
	return s.Storage.Provider.GetURL(asset.ObjectKey), nil
}

func (s *AssetService) Delete(ctx context.Context, userID, assetID uint) error {
	asset, err := s.AssetRepo.FindByIDAndUser(assetID, userID)
	if err != nil {
		return util.ErrAssetNotFound
	}
	if err := s.Storage.Provider.Delete(ctx, asset.ObjectKey); err != nil {
		logger.Log.Warn("asset object delete failed", zap.String("objectKey", asset.ObjectKey), zap.Error(err))
	}
	return s.AssetRepo.Delete(assetID, userID)
}

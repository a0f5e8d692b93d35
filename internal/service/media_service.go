package service

import (
	"Picgram/internal/dto"
	"Picgram/internal/model"
	"Picgram/internal/pkg/consts"
	"Picgram/internal/pkg/minio"
	"Picgram/internal/pkg/util"
	"Picgram/internal/repository"
	"context"
	"errors"
	"fmt"
	"io"
	log "log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectStorage 媒体文件的对象存储
type ObjectStorage interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
	List(ctx context.Context, prefix string) ([]minio.ObjectInfo, error)
	PublicURL(objectName string) string
	ObjectName(url string) (string, bool)
}

type MediaService interface {
	UploadMedia(ctx context.Context, req *dto.UploadMediaDTO) (*model.Media, error)
	AttachMedia(ctx context.Context, req *dto.AttachMediaDTO) (*model.Media, error)
	GetMedia(ctx context.Context, id uint64) (*model.Media, error)
	GetPostMedia(ctx context.Context, postID uint64) (map[string]any, error)
	GetUserMedia(ctx context.Context, userID uint64, limit, offset int) ([]*model.Media, error)
	DeleteMedia(ctx context.Context, userID, mediaID uint64) error
	CleanOrphanObjects(ctx context.Context, minAge time.Duration) (int, error)
}

type MediaServiceImpl struct {
	mediaRepo repository.MediaRepo
	postRepo  repository.PostRepo
	storage   ObjectStorage
}

func NewMediaService(mediaRepo repository.MediaRepo, postRepo repository.PostRepo, storage ObjectStorage) MediaService {
	return &MediaServiceImpl{
		mediaRepo: mediaRepo,
		postRepo:  postRepo,
		storage:   storage,
	}
}

// UploadMedia 先写对象存储再写库，写库失败时删除已上传的对象
func (s *MediaServiceImpl) UploadMedia(ctx context.Context, req *dto.UploadMediaDTO) (*model.Media, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParamInvalid, err)
	}
	if !isSupportedMime(req.ContentType) {
		return nil, ErrFileNotSupported
	}
	if err := s.checkPostOwner(ctx, req.UserID, req.PostID); err != nil {
		return nil, err
	}

	objectName := consts.MediaObjectPrefix + uuid.NewString() + strings.ToLower(filepath.Ext(req.FileName))
	key, err := s.storage.Upload(ctx, objectName, req.Reader, req.Size, req.ContentType)
	if err != nil {
		return nil, err
	}

	media := &model.Media{
		UserID:    req.UserID,
		PostID:    req.PostID,
		MediaType: req.ContentType,
		MediaURL:  s.storage.PublicURL(key),
	}
	if err = s.createMedia(ctx, media); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			log.ErrorContext(ctx, "rollback uploaded media failed", "object", key, "err", delErr)
		}
		return nil, err
	}
	return media, nil
}

func (s *MediaServiceImpl) AttachMedia(ctx context.Context, req *dto.AttachMediaDTO) (*model.Media, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParamInvalid, err)
	}
	if err := s.checkPostOwner(ctx, req.UserID, req.PostID); err != nil {
		return nil, err
	}
	media := &model.Media{
		UserID:    req.UserID,
		PostID:    req.PostID,
		MediaType: req.MediaType,
		MediaURL:  req.MediaURL,
	}
	if err := s.createMedia(ctx, media); err != nil {
		return nil, err
	}
	return media, nil
}

func (s *MediaServiceImpl) GetMedia(ctx context.Context, id uint64) (*model.Media, error) {
	media, err := s.mediaRepo.GetMedia(ctx, id)
	if err != nil {
		return nil, err
	}
	if media == nil {
		return nil, ErrMediaNotFound
	}
	return media, nil
}

// GetPostMedia 返回帖子媒体的字段映射
func (s *MediaServiceImpl) GetPostMedia(ctx context.Context, postID uint64) (map[string]any, error) {
	media, err := s.mediaRepo.GetMediaByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if media == nil {
		return nil, ErrMediaNotFound
	}
	return media.ToMap(), nil
}

func (s *MediaServiceImpl) GetUserMedia(ctx context.Context, userID uint64, limit, offset int) ([]*model.Media, error) {
	limit, offset = util.NormalizePage(limit, offset)
	return s.mediaRepo.GetMediaByUser(ctx, userID, limit, offset)
}

func (s *MediaServiceImpl) DeleteMedia(ctx context.Context, userID, mediaID uint64) error {
	media, err := s.GetMedia(ctx, mediaID)
	if err != nil {
		return err
	}
	if media.UserID != userID {
		return UnauthorizedError
	}
	if _, err = s.mediaRepo.DeleteMedia(ctx, mediaID); err != nil {
		return err
	}
	if objectName, ok := s.storage.ObjectName(media.MediaURL); ok {
		if err = s.storage.Delete(ctx, objectName); err != nil {
			// 残留对象由孤儿清理任务回收
			log.WarnContext(ctx, "delete media object failed", "object", objectName, "err", err)
		}
	}
	return nil
}

// CleanOrphanObjects 删除早于 minAge 且没有 media 行引用的对象，返回删除数量
func (s *MediaServiceImpl) CleanOrphanObjects(ctx context.Context, minAge time.Duration) (int, error) {
	objects, err := s.storage.List(ctx, consts.MediaObjectPrefix)
	if err != nil {
		return 0, err
	}

	deadline := time.Now().Add(-minAge)
	cleaned := 0
	for _, obj := range objects {
		if obj.LastModified.After(deadline) {
			continue
		}
		exists, err := s.mediaRepo.ExistsMediaURL(ctx, s.storage.PublicURL(obj.Key))
		if err != nil {
			return cleaned, err
		}
		if exists {
			continue
		}
		if err = s.storage.Delete(ctx, obj.Key); err != nil {
			log.ErrorContext(ctx, "delete orphan media object failed", "object", obj.Key, "err", err)
			continue
		}
		cleaned++
	}
	return cleaned, nil
}

func (s *MediaServiceImpl) createMedia(ctx context.Context, media *model.Media) error {
	err := s.mediaRepo.CreateMedia(ctx, media)
	if err != nil && errors.Is(err, repository.ErrUniquenessViolation) {
		return fmt.Errorf("%w: %w", ErrMediaExist, err)
	}
	return err
}

func (s *MediaServiceImpl) checkPostOwner(ctx context.Context, userID, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return UnauthorizedError
	}
	if post.Media != nil {
		return ErrMediaExist
	}
	return nil
}

func isSupportedMime(contentType string) bool {
	for _, prefix := range []string{consts.MimePrefixImage, consts.MimePrefixVideo, consts.MimePrefixAudio} {
		if strings.HasPrefix(contentType, prefix+"/") {
			return true
		}
	}
	return false
}

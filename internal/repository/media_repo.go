package repository

import (
	"Picgram/internal/model"
	"Picgram/internal/pkg/util"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type MediaRepo interface {
	CreateMedia(ctx context.Context, media *model.Media) error
	GetMedia(ctx context.Context, id uint64) (*model.Media, error)
	GetMediaByPost(ctx context.Context, postID uint64) (*model.Media, error)
	GetMediaByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Media, error)
	ExistsMediaURL(ctx context.Context, url string) (bool, error)
	DeleteMedia(ctx context.Context, id uint64) (int64, error)
}

type MediaRepoImpl struct {
	db *gorm.DB
}

func NewMediaRepo(db *gorm.DB) MediaRepo {
	return &MediaRepoImpl{db: db}
}

// CreateMedia 同一帖子的第二条媒体违反 post_id 唯一索引
func (s *MediaRepoImpl) CreateMedia(ctx context.Context, media *model.Media) error {
	if err := util.ValidateStruct(media); err != nil {
		return translateError(media.TableName(), err)
	}
	return translateError(media.TableName(), s.db.WithContext(ctx).Omit("User", "Post").Create(media).Error)
}

func (s *MediaRepoImpl) GetMedia(ctx context.Context, id uint64) (*model.Media, error) {
	var media model.Media
	err := s.db.WithContext(ctx).First(&media, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &media, nil
}

func (s *MediaRepoImpl) GetMediaByPost(ctx context.Context, postID uint64) (*model.Media, error) {
	var media model.Media
	err := s.db.WithContext(ctx).Where("post_id = ?", postID).First(&media).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &media, nil
}

func (s *MediaRepoImpl) GetMediaByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Media, error) {
	list := make([]*model.Media, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("upload_date DESC, media_id DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

func (s *MediaRepoImpl) ExistsMediaURL(ctx context.Context, url string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Media{}).
		Where("media_url = ?", url).
		Count(&count).Error
	return count > 0, err
}

func (s *MediaRepoImpl) DeleteMedia(ctx context.Context, id uint64) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&model.Media{}, id)
	return result.RowsAffected, result.Error
}

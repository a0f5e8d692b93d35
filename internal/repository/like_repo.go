package repository

import (
	"Picgram/internal/model"
	"Picgram/internal/pkg/util"
	"context"

	"gorm.io/gorm"
)

type LikeRepo interface {
	CreateLike(ctx context.Context, like *model.Like) error
	DeleteLike(ctx context.Context, userID, postID uint64) (int64, error)
	CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error)
	GetLikesByPost(ctx context.Context, postID uint64, limit, offset int) ([]*model.Like, error)
	GetLikedPostIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error)
	GetLikeCountByPost(ctx context.Context, postID uint64) (int64, error)
	WithTx(tx *gorm.DB) LikeRepo
}

type LikeRepoImpl struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) LikeRepo {
	return &LikeRepoImpl{db: db}
}

func (s *LikeRepoImpl) WithTx(tx *gorm.DB) LikeRepo {
	return &LikeRepoImpl{db: tx}
}

func (s *LikeRepoImpl) CreateLike(ctx context.Context, like *model.Like) error {
	if err := util.ValidateStruct(like); err != nil {
		return translateError(like.TableName(), err)
	}
	return translateError(like.TableName(), s.db.WithContext(ctx).Omit("User", "Post").Create(like).Error)
}

func (s *LikeRepoImpl) DeleteLike(ctx context.Context, userID, postID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{})
	return result.RowsAffected, result.Error
}

func (s *LikeRepoImpl) CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (s *LikeRepoImpl) GetLikesByPost(ctx context.Context, postID uint64, limit, offset int) ([]*model.Like, error) {
	likes := make([]*model.Like, 0)
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("like_date DESC, like_id DESC").
		Limit(limit).Offset(offset).
		Find(&likes).Error
	return likes, err
}

func (s *LikeRepoImpl) GetLikedPostIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error) {
	var postIDs []uint64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ?", userID).
		Order("like_date DESC, like_id DESC").
		Limit(limit).Offset(offset).
		Pluck("post_id", &postIDs).Error
	return postIDs, err
}

func (s *LikeRepoImpl) GetLikeCountByPost(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

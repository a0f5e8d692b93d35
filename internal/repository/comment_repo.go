package repository

import (
	"Picgram/internal/model"
	"Picgram/internal/pkg/util"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, id uint64) (*model.Comment, error)
	GetCommentsByPost(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error)
	GetCommentsByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Comment, error)
	GetCommentCountByPost(ctx context.Context, postID uint64) (int64, error)
	DeleteComment(ctx context.Context, id uint64) (int64, error)
	WithTx(tx *gorm.DB) CommentRepo
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) WithTx(tx *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: tx}
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	if err := util.ValidateStruct(comment); err != nil {
		return translateError(comment.TableName(), err)
	}
	return translateError(comment.TableName(), s.db.WithContext(ctx).Omit("User", "Post").Create(comment).Error)
}

func (s *CommentRepoImpl) GetComment(ctx context.Context, id uint64) (*model.Comment, error) {
	var comment model.Comment
	err := s.db.WithContext(ctx).First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPost 按时间正序分页
func (s *CommentRepoImpl) GetCommentsByPost(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("comment_date ASC, comment_id ASC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (s *CommentRepoImpl) GetCommentsByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("comment_date DESC, comment_id DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (s *CommentRepoImpl) GetCommentCountByPost(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (s *CommentRepoImpl) DeleteComment(ctx context.Context, id uint64) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&model.Comment{}, id)
	return result.RowsAffected, result.Error
}

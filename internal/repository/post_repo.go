package repository

import (
	"Picgram/internal/model"
	"Picgram/internal/pkg/util"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostsByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Post, error)
	DeletePost(ctx context.Context, id uint64) (int64, error)
	AddLikesCount(ctx context.Context, id uint64, delta int) (int64, error)
	AddCommentsCount(ctx context.Context, id uint64, delta int) (int64, error)
	ReconcileCounters(ctx context.Context, ids []uint64) (int64, error)
	ReconcileAllCounters(ctx context.Context) (int64, error)
	WithTx(tx *gorm.DB) PostRepo
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) WithTx(tx *gorm.DB) PostRepo {
	return &PostRepoImpl{db: tx}
}

// CreatePost 计数字段总是从 0 开始
func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	post.LikesCount = 0
	post.CommentsCount = 0
	if err := util.ValidateStruct(post); err != nil {
		return translateError(post.TableName(), err)
	}
	return translateError(post.TableName(), s.db.WithContext(ctx).Omit("User").Create(post).Error)
}

// GetPost 带上作者和媒体
func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Preload("User").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var media model.Media
	err = s.db.WithContext(ctx).Where("post_id = ?", id).Limit(1).Find(&media).Error
	if err != nil {
		return nil, errors.WithMessage(err, "load post media")
	}
	if media.ID != 0 {
		post.Media = &media
	}
	return &post, nil
}

func (s *PostRepoImpl) GetPostsByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("post_date DESC, post_id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost 评论、点赞、媒体由外键级联删除
func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&model.Post{}, id)
	return result.RowsAffected, translateError("posts", result.Error)
}

func (s *PostRepoImpl) AddLikesCount(ctx context.Context, id uint64, delta int) (int64, error) {
	return s.addCount(ctx, id, "likes_count", delta)
}

func (s *PostRepoImpl) AddCommentsCount(ctx context.Context, id uint64, delta int) (int64, error) {
	return s.addCount(ctx, id, "comments_count", delta)
}

// addCount 在数据库侧做原子加减，结果不小于 0
func (s *PostRepoImpl) addCount(ctx context.Context, id uint64, column string, delta int) (int64, error) {
	expr := gorm.Expr(column+" + ?", delta)
	if delta < 0 {
		expr = gorm.Expr("CASE WHEN "+column+" + ? < 0 THEN 0 ELSE "+column+" + ? END", delta, delta)
	}
	result := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("post_id = ?", id).
		UpdateColumn(column, expr)
	return result.RowsAffected, result.Error
}

// ReconcileCounters 用 likes/comments 的真实行数覆盖指定帖子的计数
func (s *PostRepoImpl) ReconcileCounters(ctx context.Context, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("post_id IN ?", ids).
		UpdateColumns(s.countColumns())
	if result.Error != nil {
		return 0, errors.WithMessage(result.Error, "reconcile post counters")
	}
	return result.RowsAffected, nil
}

// ReconcileAllCounters 只修正计数与真实行数不一致的帖子，返回修正的行数
func (s *PostRepoImpl) ReconcileAllCounters(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("likes_count <> (?) OR comments_count <> (?)", s.likesSubQuery(), s.commentsSubQuery()).
		UpdateColumns(s.countColumns())
	if result.Error != nil {
		return 0, errors.WithMessage(result.Error, "reconcile all post counters")
	}
	return result.RowsAffected, nil
}

func (s *PostRepoImpl) countColumns() map[string]any {
	return map[string]any{
		"likes_count":    s.likesSubQuery(),
		"comments_count": s.commentsSubQuery(),
	}
}

func (s *PostRepoImpl) likesSubQuery() *gorm.DB {
	return s.db.Session(&gorm.Session{NewDB: true}).
		Model(&model.Like{}).
		Select("COUNT(*)").
		Where("likes.post_id = posts.post_id")
}

func (s *PostRepoImpl) commentsSubQuery() *gorm.DB {
	return s.db.Session(&gorm.Session{NewDB: true}).
		Model(&model.Comment{}).
		Select("COUNT(*)").
		Where("comments.post_id = posts.post_id")
}

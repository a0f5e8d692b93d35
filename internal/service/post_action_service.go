package service

import (
	"Picgram/internal/dto"
	"Picgram/internal/model"
	"Picgram/internal/pkg/util"
	"Picgram/internal/repository"
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type PostActionService interface {
	LikePost(ctx context.Context, userID, postID uint64) error
	CancelLikePost(ctx context.Context, userID, postID uint64) error
	IsLiked(ctx context.Context, userID, postID uint64) (bool, error)
	GetPostLikes(ctx context.Context, postID uint64, limit, offset int) ([]*model.Like, error)
	GetLikedPostIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error)
	GetPostLikeCount(ctx context.Context, postID uint64) (int64, error)

	CreateComment(ctx context.Context, req *dto.CreateCommentDTO) (*model.Comment, error)
	DeleteComment(ctx context.Context, userID, commentID uint64) error
	GetCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error)
	GetPostCommentCount(ctx context.Context, postID uint64) (int64, error)
}

type postActionServiceImpl struct {
	db          *gorm.DB
	postRepo    repository.PostRepo
	likeRepo    repository.LikeRepo
	commentRepo repository.CommentRepo
}

func NewPostActionService(
	db *gorm.DB,
	postRepo repository.PostRepo,
	likeRepo repository.LikeRepo,
	commentRepo repository.CommentRepo,
) PostActionService {
	return &postActionServiceImpl{
		db:          db,
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
	}
}

// LikePost 点赞行和 likes_count 在同一事务内写入
func (s *postActionServiceImpl) LikePost(ctx context.Context, userID, postID uint64) error {
	return s.performAction(ctx, s.getPostCheck(ctx, postID), func(tx *gorm.DB) error {
		if err := s.likeRepo.WithTx(tx).CreateLike(ctx, &model.Like{UserID: userID, PostID: postID}); err != nil {
			return err
		}
		_, err := s.postRepo.WithTx(tx).AddLikesCount(ctx, postID, 1)
		return err
	})
}

// CancelLikePost 未点过赞时什么也不做
func (s *postActionServiceImpl) CancelLikePost(ctx context.Context, userID, postID uint64) error {
	return s.revokeAction(ctx, s.getPostCheck(ctx, postID), func(tx *gorm.DB) error {
		rows, err := s.likeRepo.WithTx(tx).DeleteLike(ctx, userID, postID)
		if err != nil || rows == 0 {
			return err
		}
		_, err = s.postRepo.WithTx(tx).AddLikesCount(ctx, postID, -1)
		return err
	})
}

func (s *postActionServiceImpl) IsLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.likeRepo.CheckLikeExists(ctx, userID, postID)
}

func (s *postActionServiceImpl) GetPostLikes(ctx context.Context, postID uint64, limit, offset int) ([]*model.Like, error) {
	limit, offset = util.NormalizePage(limit, offset)
	return s.likeRepo.GetLikesByPost(ctx, postID, limit, offset)
}

func (s *postActionServiceImpl) GetLikedPostIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error) {
	limit, offset = util.NormalizePage(limit, offset)
	return s.likeRepo.GetLikedPostIDs(ctx, userID, limit, offset)
}

func (s *postActionServiceImpl) GetPostLikeCount(ctx context.Context, postID uint64) (int64, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return 0, err
	}
	return int64(post.LikesCount), nil
}

func (s *postActionServiceImpl) CreateComment(ctx context.Context, req *dto.CreateCommentDTO) (*model.Comment, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParamInvalid, err)
	}
	comment := &model.Comment{}
	if err := copier.Copy(comment, req); err != nil {
		return nil, err
	}
	err := s.performAction(ctx, s.getPostCheck(ctx, req.PostID), func(tx *gorm.DB) error {
		if err := s.commentRepo.WithTx(tx).CreateComment(ctx, comment); err != nil {
			return err
		}
		_, err := s.postRepo.WithTx(tx).AddCommentsCount(ctx, req.PostID, 1)
		return err
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment 评论作者或帖子作者可删除
func (s *postActionServiceImpl) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.commentRepo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrPostCommentNotFound
	}
	if comment.UserID != userID {
		post, err := s.getPost(ctx, comment.PostID)
		if err != nil {
			return err
		}
		if post.UserID != userID {
			return UnauthorizedError
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.commentRepo.WithTx(tx).DeleteComment(ctx, commentID)
		if err != nil || rows == 0 {
			return err
		}
		_, err = s.postRepo.WithTx(tx).AddCommentsCount(ctx, comment.PostID, -1)
		return err
	})
}

func (s *postActionServiceImpl) GetCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error) {
	limit, offset = util.NormalizePage(limit, offset)
	return s.commentRepo.GetCommentsByPost(ctx, postID, limit, offset)
}

func (s *postActionServiceImpl) GetPostCommentCount(ctx context.Context, postID uint64) (int64, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return 0, err
	}
	return int64(post.CommentsCount), nil
}

func (s *postActionServiceImpl) performAction(ctx context.Context, checkFunc func() error, txFunc func(tx *gorm.DB) error) error {
	if err := checkFunc(); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Transaction(txFunc); err != nil {
		if errors.Is(err, repository.ErrUniquenessViolation) {
			return fmt.Errorf("%w: %w", ErrActionDuplicate, err)
		}
		return err
	}
	return nil
}

func (s *postActionServiceImpl) revokeAction(ctx context.Context, checkFunc func() error, txFunc func(tx *gorm.DB) error) error {
	if err := checkFunc(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(txFunc)
}

func (s *postActionServiceImpl) getPostCheck(ctx context.Context, postID uint64) func() error {
	return func() error {
		_, err := s.getPost(ctx, postID)
		return err
	}
}

func (s *postActionServiceImpl) getPost(ctx context.Context, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

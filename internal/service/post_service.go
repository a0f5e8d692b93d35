package service

import (
	"Picgram/internal/dto"
	"Picgram/internal/model"
	"Picgram/internal/pkg/consts"
	"Picgram/internal/pkg/redis"
	"Picgram/internal/pkg/util"
	"Picgram/internal/repository"
	"context"
	"fmt"
	log "log/slog"

	"github.com/jinzhu/copier"
)

type PostService interface {
	CreatePost(ctx context.Context, dto *dto.CreatePostDTO) (*model.Post, error)
	GetPostById(ctx context.Context, id uint64) (*model.Post, error)
	GetPostsByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Post, error)
	DeletePost(ctx context.Context, id uint64) error
	ReconcileCounters(ctx context.Context, ids []uint64) (int64, error)
	ReconcileAllCounters(ctx context.Context) (int64, error)
	MarkCountersDirty(ctx context.Context, postIDs ...uint64) error
}

type PostServiceImpl struct {
	postRepo repository.PostRepo
	userRepo repository.UserRepo
}

func NewPostService(postRepo repository.PostRepo, userRepo repository.UserRepo) PostService {
	return &PostServiceImpl{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

func (s *PostServiceImpl) CreatePost(ctx context.Context, postDTO *dto.CreatePostDTO) (*model.Post, error) {
	if err := util.ValidateStruct(postDTO); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParamInvalid, err)
	}
	user, err := s.userRepo.GetUserByID(ctx, postDTO.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	post := &model.Post{}
	if err = copier.Copy(post, postDTO); err != nil {
		return nil, err
	}
	if err = s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostServiceImpl) GetPostById(ctx context.Context, id uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostServiceImpl) GetPostsByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Post, error) {
	limit, offset = util.NormalizePage(limit, offset)
	return s.postRepo.GetPostsByUser(ctx, userID, limit, offset)
}

func (s *PostServiceImpl) DeletePost(ctx context.Context, id uint64) error {
	rows, err := s.postRepo.DeletePost(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (s *PostServiceImpl) ReconcileCounters(ctx context.Context, ids []uint64) (int64, error) {
	return s.postRepo.ReconcileCounters(ctx, ids)
}

func (s *PostServiceImpl) ReconcileAllCounters(ctx context.Context) (int64, error) {
	fixed, err := s.postRepo.ReconcileAllCounters(ctx)
	if err != nil {
		return 0, err
	}
	if fixed > 0 {
		log.WarnContext(ctx, "post counters drifted", "fixed", fixed)
	}
	return fixed, nil
}

// MarkCountersDirty 记入待校正集合，由定时任务批量处理
func (s *PostServiceImpl) MarkCountersDirty(ctx context.Context, postIDs ...uint64) error {
	if len(postIDs) == 0 {
		return nil
	}
	members := make([]interface{}, 0, len(postIDs))
	for _, id := range postIDs {
		members = append(members, id)
	}
	return redis.AddToSet(ctx, consts.PostCounterDirtyKey, members...)
}

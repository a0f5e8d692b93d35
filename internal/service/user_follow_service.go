package service

import (
	"Picgram/internal/model"
	"Picgram/internal/pkg/consts"
	"Picgram/internal/pkg/redis"
	"Picgram/internal/pkg/util"
	"Picgram/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strconv"
	"time"
)

const followCountExpiration = time.Hour

type UserFollowService interface {
	GetUserFollowers(ctx context.Context, userId uint64, limit, offset int) ([]*model.Follow, error)
	GetUserFollowing(ctx context.Context, userId uint64, limit, offset int) ([]*model.Follow, error)
	GetUserFollowerCount(ctx context.Context, userId uint64) (int64, error)
	GetUserFollowingCount(ctx context.Context, userId uint64) (int64, error)
	GetSomeoneIsFollowing(ctx context.Context, userId, followingId uint64) (bool, error)
	CreateUserFollow(ctx context.Context, followerId, followingId uint64) (*model.Follow, error)
	DeleteUserFollow(ctx context.Context, followerId, followingId uint64) error
	InvalidateFollowCounts(ctx context.Context, userIds ...uint64)
}

type UserFollowServiceImpl struct {
	followRepo repository.FollowRepo
	userRepo   repository.UserRepo
}

func NewUserFollowService(followRepo repository.FollowRepo, userRepo repository.UserRepo) UserFollowService {
	return &UserFollowServiceImpl{followRepo: followRepo, userRepo: userRepo}
}

type fetchCountFunc func(ctx context.Context, userId uint64) (int64, error)

func (s *UserFollowServiceImpl) GetUserFollowers(ctx context.Context, userId uint64, limit, offset int) ([]*model.Follow, error) {
	limit, offset = util.NormalizePage(limit, offset)
	return s.followRepo.GetFollowers(ctx, userId, limit, offset)
}

func (s *UserFollowServiceImpl) GetUserFollowing(ctx context.Context, userId uint64, limit, offset int) ([]*model.Follow, error) {
	limit, offset = util.NormalizePage(limit, offset)
	return s.followRepo.GetFollowing(ctx, userId, limit, offset)
}

func (s *UserFollowServiceImpl) GetUserFollowerCount(ctx context.Context, userId uint64) (int64, error) {
	return s.getCountCommon(ctx, userId, consts.UserFollowerCountKey, s.followRepo.GetFollowerCount)
}

func (s *UserFollowServiceImpl) GetUserFollowingCount(ctx context.Context, userId uint64) (int64, error) {
	return s.getCountCommon(ctx, userId, consts.UserFollowingCountKey, s.followRepo.GetFollowingCount)
}

func (s *UserFollowServiceImpl) GetSomeoneIsFollowing(ctx context.Context, userId, followingId uint64) (bool, error) {
	follow, err := s.followRepo.GetFollow(ctx, userId, followingId)
	if err != nil {
		return false, err
	}
	return follow != nil, nil
}

func (s *UserFollowServiceImpl) CreateUserFollow(ctx context.Context, followerId, followingId uint64) (*model.Follow, error) {
	if followerId == followingId {
		return nil, ErrUserFollowSelf
	}
	target, err := s.userRepo.GetUserByID(ctx, followingId)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	isFollowing, err := s.GetSomeoneIsFollowing(ctx, followerId, followingId)
	if err != nil {
		return nil, err
	}
	if isFollowing {
		return nil, ErrUserFollowExist
	}

	follow := &model.Follow{FollowerID: followerId, FollowingID: followingId}
	if err = s.followRepo.CreateFollow(ctx, follow); err != nil {
		if errors.Is(err, repository.ErrUniquenessViolation) {
			return nil, fmt.Errorf("%w: %w", ErrUserFollowExist, err)
		}
		return nil, err
	}
	s.InvalidateFollowCounts(ctx, followerId, followingId)
	return follow, nil
}

func (s *UserFollowServiceImpl) DeleteUserFollow(ctx context.Context, followerId, followingId uint64) error {
	rows, err := s.followRepo.DeleteFollow(ctx, followerId, followingId)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserFollowNotExist
	}
	s.InvalidateFollowCounts(ctx, followerId, followingId)
	return nil
}

// InvalidateFollowCounts 删除相关用户的粉丝数、关注数缓存
func (s *UserFollowServiceImpl) InvalidateFollowCounts(ctx context.Context, userIds ...uint64) {
	keys := make([]string, 0, len(userIds)*2)
	for _, id := range userIds {
		idStr := strconv.FormatUint(id, 10)
		keys = append(keys, consts.UserFollowerCountKey+idStr, consts.UserFollowingCountKey+idStr)
	}
	if len(keys) == 0 {
		return
	}
	err := redis.DeleteKey(ctx, keys...)
	if err != nil && !errors.Is(err, redis.ErrNotInitialized) {
		log.WarnContext(ctx, "invalidate follow counts failed", "user_ids", userIds, "err", err)
	}
}

func (s *UserFollowServiceImpl) getCountCommon(
	ctx context.Context,
	userId uint64,
	keyPrefix string,
	fetchDB fetchCountFunc,
) (int64, error) {
	key := keyPrefix + strconv.FormatUint(userId, 10)

	valStr, err := redis.GetValue(ctx, key)
	if err == nil && valStr != "" {
		if count, err := strconv.ParseInt(valStr, 10, 64); err == nil {
			return count, nil
		}
	}

	count, err := fetchDB(ctx, userId)
	if err != nil {
		return 0, err
	}

	_ = redis.SetWithExpiration(ctx, key, count, followCountExpiration)
	return count, nil
}

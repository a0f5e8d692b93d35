package repository

import (
	"Picgram/internal/model"
	"Picgram/internal/pkg/util"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uint64) (*model.User, error)
	GetUserByIDs(ctx context.Context, ids []uint64) ([]*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUserProfile(ctx context.Context, id uint64, profilePicture, bio *string) (int64, error)
	DeleteUser(ctx context.Context, id uint64) (int64, error)
	GetPostIDsTouchedBy(ctx context.Context, userID uint64) ([]uint64, error)
	WithTx(tx *gorm.DB) UserRepo
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) WithTx(tx *gorm.DB) UserRepo {
	return &UserRepoImpl{db: tx}
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	if err := util.ValidateStruct(user); err != nil {
		return translateError(user.TableName(), err)
	}
	return translateError(user.TableName(), s.db.WithContext(ctx).Create(user).Error)
}

func (s *UserRepoImpl) GetUserByID(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).First(user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return user, nil
}

func (s *UserRepoImpl) GetUserByIDs(ctx context.Context, ids []uint64) ([]*model.User, error) {
	users := make([]*model.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	result := s.db.WithContext(ctx).
		Where("user_id IN ?", ids).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.getUserBy(ctx, "username", username)
}

func (s *UserRepoImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUserBy(ctx, "email", email)
}

func (s *UserRepoImpl) getUserBy(ctx context.Context, column, value string) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Where(column+" = ?", value).
		First(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return user, nil
}

// UpdateUserProfile 只改头像和简介，nil 表示不修改，空串表示清空
func (s *UserRepoImpl) UpdateUserProfile(ctx context.Context, id uint64, profilePicture, bio *string) (int64, error) {
	updates := make(map[string]any, 2)
	if profilePicture != nil {
		if err := util.ValidateVar(*profilePicture, "max=200"); err != nil {
			return 0, &ConstraintError{Kind: ErrValidation, Table: "users", Field: "profile_picture", Err: err}
		}
		updates["profile_picture"] = nullIfEmpty(*profilePicture)
	}
	if bio != nil {
		if err := util.ValidateVar(*bio, "max=500"); err != nil {
			return 0, &ConstraintError{Kind: ErrValidation, Table: "users", Field: "bio", Err: err}
		}
		updates["bio"] = nullIfEmpty(*bio)
	}
	if len(updates) == 0 {
		return 0, nil
	}

	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", id).
		Updates(updates)
	return result.RowsAffected, translateError("users", result.Error)
}

// DeleteUser 物理删除，帖子、评论、点赞、媒体、关注关系由外键级联删除
func (s *UserRepoImpl) DeleteUser(ctx context.Context, id uint64) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&model.User{}, id)
	return result.RowsAffected, translateError("users", result.Error)
}

// GetPostIDsTouchedBy 用户点过赞或评论过的他人帖子
func (s *UserRepoImpl) GetPostIDsTouchedBy(ctx context.Context, userID uint64) ([]uint64, error) {
	var liked, commented []uint64
	db := s.db.WithContext(ctx)

	err := db.Model(&model.Like{}).
		Joins("JOIN posts ON posts.post_id = likes.post_id").
		Where("likes.user_id = ? AND posts.user_id <> ?", userID, userID).
		Distinct().
		Pluck("likes.post_id", &liked).Error
	if err != nil {
		return nil, errors.WithMessage(err, "collect liked posts")
	}

	err = db.Model(&model.Comment{}).
		Joins("JOIN posts ON posts.post_id = comments.post_id").
		Where("comments.user_id = ? AND posts.user_id <> ?", userID, userID).
		Distinct().
		Pluck("comments.post_id", &commented).Error
	if err != nil {
		return nil, errors.WithMessage(err, "collect commented posts")
	}

	return mergeIDs(liked, commented), nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func mergeIDs(lists ...[]uint64) []uint64 {
	seen := make(map[uint64]struct{})
	out := make([]uint64, 0)
	for _, list := range lists {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

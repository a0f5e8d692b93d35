package service

import (
	"Picgram/internal/dto"
	"Picgram/internal/model"
	"Picgram/internal/pkg/consts"
	"Picgram/internal/pkg/redis"
	"Picgram/internal/pkg/security"
	"Picgram/internal/pkg/util"
	"Picgram/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

const userInfoExpiration = time.Hour

type UserService interface {
	Register(ctx context.Context, dto *dto.RegisterDTO) (*model.User, error)
	Login(ctx context.Context, dto *dto.CredentialDTO) (*model.User, error)
	GetUserInfo(ctx context.Context, id uint64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserSimpleInfoByIds(ctx context.Context, ids []uint64) ([]*model.User, error)
	UpdateProfile(ctx context.Context, id uint64, dto *dto.UpdateProfileDTO) error
	DeleteUser(ctx context.Context, id uint64) error
}

type UserServiceImpl struct {
	db       *gorm.DB
	userRepo repository.UserRepo
	postRepo repository.PostRepo
}

func NewUserService(db *gorm.DB, userRepo repository.UserRepo, postRepo repository.PostRepo) UserService {
	return &UserServiceImpl{
		db:       db,
		userRepo: userRepo,
		postRepo: postRepo,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) (*model.User, error) {
	if regDTO.Password == "" {
		return nil, ErrPasswordEmpty
	}
	if err := util.ValidateStruct(regDTO); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParamInvalid, err)
	}

	findUser, err := s.userRepo.GetUserByUsername(ctx, regDTO.Username)
	if err != nil {
		return nil, err
	}
	if findUser != nil {
		return nil, ErrUserUsernameExist
	}
	findUser, err = s.userRepo.GetUserByEmail(ctx, regDTO.Email)
	if err != nil {
		return nil, err
	}
	if findUser != nil {
		return nil, ErrUserEmailExist
	}

	user := &model.User{}
	if err = copier.Copy(user, regDTO); err != nil {
		return nil, err
	}
	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return nil, err
	}
	user.Password = passwordHash

	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		// 并发注册时由唯一索引兜底
		var cErr *repository.ConstraintError
		if errors.As(err, &cErr) && errors.Is(err, repository.ErrUniquenessViolation) {
			switch cErr.Field {
			case "username":
				return nil, fmt.Errorf("%w: %w", ErrUserUsernameExist, err)
			case "email":
				return nil, fmt.Errorf("%w: %w", ErrUserEmailExist, err)
			}
		}
		return nil, err
	}
	log.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, credDTO *dto.CredentialDTO) (*model.User, error) {
	if err := util.ValidateStruct(credDTO); err != nil {
		return nil, ErrParamInvalid
	}
	user, err := s.userRepo.GetUserByUsername(ctx, credDTO.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if err = security.CheckPasswordHash(credDTO.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}
	return user, nil
}

// GetUserInfo 读缓存，未命中回源并回填
func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*model.User, error) {
	key := consts.UserInfoKey + strconv.FormatUint(id, 10)
	value, err := redis.GetValue(ctx, key)
	if err == nil && value != "" {
		user := &model.User{}
		if err = json.Unmarshal([]byte(value), user); err == nil {
			return user, nil
		}
	}

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if jsonStr, err := json.Marshal(user); err == nil {
		_ = redis.SetWithExpiration(ctx, key, string(jsonStr), userInfoExpiration)
	}
	return user, nil
}

func (s *UserServiceImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserServiceImpl) GetUserSimpleInfoByIds(ctx context.Context, ids []uint64) ([]*model.User, error) {
	return s.userRepo.GetUserByIDs(ctx, ids)
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id uint64, profileDTO *dto.UpdateProfileDTO) error {
	if err := util.ValidateStruct(profileDTO); err != nil {
		return fmt.Errorf("%w: %w", ErrParamInvalid, err)
	}
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if _, err = s.userRepo.UpdateUserProfile(ctx, id, profileDTO.ProfilePicture, profileDTO.Bio); err != nil {
		return err
	}
	s.evictUserInfo(ctx, id)
	return nil
}

// DeleteUser 删除用户并在同一事务内校正其点赞、评论过的帖子的计数
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userRepo := s.userRepo.WithTx(tx)
		touched, err := userRepo.GetPostIDsTouchedBy(ctx, id)
		if err != nil {
			return err
		}
		rows, err := userRepo.DeleteUser(ctx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrUserNotFound
		}
		if _, err = s.postRepo.WithTx(tx).ReconcileCounters(ctx, touched); err != nil {
			return err
		}
		log.InfoContext(ctx, "user deleted", "user_id", id, "reconciled_posts", len(touched))
		return nil
	})
	if err != nil {
		return err
	}
	s.evictUserInfo(ctx, id)
	return nil
}

func (s *UserServiceImpl) evictUserInfo(ctx context.Context, id uint64) {
	err := redis.DeleteKey(ctx, consts.UserInfoKey+strconv.FormatUint(id, 10))
	if err != nil && !errors.Is(err, redis.ErrNotInitialized) {
		log.WarnContext(ctx, "evict user info cache failed", "user_id", id, "err", err)
	}
}

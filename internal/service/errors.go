package service

import (
	"Picgram/internal/repository"
	"errors"
)

const (
	OK                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	Conflict            = 409
	UnprocessableEntity = 422
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrUserUsernameExist   = errors.New("用户名已存在")
	ErrUserEmailExist      = errors.New("邮箱已注册")
	ErrPasswordEmpty       = errors.New("密码不能为空")
	ErrPasswordIncorrect   = errors.New("密码错误")
	ErrUserFollowExist     = errors.New("用户已关注")
	ErrUserFollowNotExist  = errors.New("用户未关注")
	ErrUserFollowSelf      = errors.New("用户不能关注自己")
	ErrPostNotFound        = errors.New("帖子不存在")
	ErrPostCommentNotFound = errors.New("评论不存在")
	ErrMediaNotFound       = errors.New("媒体不存在")
	ErrMediaExist          = errors.New("帖子已有媒体")
	ErrFileNotSupported    = errors.New("不支持的文件类型")
	ErrActionDuplicate     = errors.New("重复操作")
	UnauthorizedError      = errors.New("权限不足")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrUserNotFound:        NotFound,
	ErrUserUsernameExist:   Conflict,
	ErrUserEmailExist:      Conflict,
	ErrPasswordEmpty:       BadRequest,
	ErrPasswordIncorrect:   Unauthorized,
	ErrUserFollowExist:     Conflict,
	ErrUserFollowNotExist:  NotFound,
	ErrUserFollowSelf:      BadRequest,
	ErrPostNotFound:        NotFound,
	ErrPostCommentNotFound: NotFound,
	ErrMediaNotFound:       NotFound,
	ErrMediaExist:          Conflict,
	ErrFileNotSupported:    BadRequest,
	ErrActionDuplicate:     Conflict,
	UnauthorizedError:      Unauthorized,
	UnExpectedError:        InternalServerError,

	repository.ErrValidation:           UnprocessableEntity,
	repository.ErrUniquenessViolation:  Conflict,
	repository.ErrReferentialIntegrity: UnprocessableEntity,
}

// wrapOrder 包装了存储层错误的领域错误排在前面
var wrapOrder = []error{
	ErrParamInvalid, ErrUserNotFound, ErrUserUsernameExist, ErrUserEmailExist, ErrPasswordEmpty,
	ErrPasswordIncorrect, ErrUserFollowExist, ErrUserFollowNotExist, ErrUserFollowSelf, ErrPostNotFound,
	ErrPostCommentNotFound, ErrMediaNotFound, ErrMediaExist, ErrFileNotSupported, ErrActionDuplicate,
	UnauthorizedError, UnExpectedError,
	repository.ErrValidation, repository.ErrUniquenessViolation, repository.ErrReferentialIntegrity,
}

// CodeOf 返回错误对应的状态码
func CodeOf(err error) int {
	if err == nil {
		return OK
	}
	for _, target := range wrapOrder {
		if errors.Is(err, target) {
			return ErrorMap[target]
		}
	}
	return InternalServerError
}

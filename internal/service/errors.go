package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrUserEmailExist       = errors.New("邮箱已注册")
	ErrPasswordIncorrect    = errors.New("密码错误")
	ErrWorkspaceNotFound    = errors.New("工作区不存在")
	ErrMemberNotFound       = errors.New("不是该工作区成员")
	ErrMemberExist          = errors.New("已经是该工作区成员")
	ErrJoinCodeIncorrect    = errors.New("加入码错误")
	ErrChannelNotFound      = errors.New("频道不存在")
	ErrConversationNotFound = errors.New("会话不存在")
	ErrConversationSelf     = errors.New("不能与自己建立会话")
	ErrMessageNotFound      = errors.New("消息不存在")
	ErrMessageEmpty         = errors.New("消息内容不能为空")
	ErrScopeInvalid         = errors.New("消息范围参数错误")
	ErrFileNotSupported     = errors.New("不支持的文件类型")
	ErrFileNotExist         = errors.New("文件不存在")
	ErrAdminSelfDemote      = errors.New("不能修改自己的角色")
	ErrAdminSelfLeave       = errors.New("管理员不能退出自己的工作区")
	UnauthorizedError       = errors.New("权限不足")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrUserNotFound:         NotFound,
	ErrUserEmailExist:       BadRequest,
	ErrPasswordIncorrect:    Unauthorized,
	ErrWorkspaceNotFound:    NotFound,
	ErrMemberNotFound:       Forbidden,
	ErrMemberExist:          BadRequest,
	ErrJoinCodeIncorrect:    BadRequest,
	ErrChannelNotFound:      NotFound,
	ErrConversationNotFound: NotFound,
	ErrConversationSelf:     BadRequest,
	ErrMessageNotFound:      NotFound,
	ErrMessageEmpty:         BadRequest,
	ErrScopeInvalid:         BadRequest,
	ErrFileNotSupported:     BadRequest,
	ErrFileNotExist:         NotFound,
	ErrAdminSelfDemote:      BadRequest,
	ErrAdminSelfLeave:       BadRequest,
	UnauthorizedError:       Unauthorized,
	UnExpectedError:         InternalServerError,
}

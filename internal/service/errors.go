package service

import (
	"errors"
	"strings"
)

var (
	// ErrDuplicateUsername 用户名已被注册
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateDataFile 派生的用户数据文件名与已有账户冲突
	ErrDuplicateDataFile = errors.New("user data file already exists")
	// ErrAccountNotFound 账户不存在
	ErrAccountNotFound = errors.New("account not found")
	// ErrEntryNotFound 排班记录不存在
	ErrEntryNotFound = errors.New("schedule entry not found")
	// ErrShiftNotFound 班次不存在
	ErrShiftNotFound = errors.New("shift not found")
	// ErrAuthDenied 缺少密码或密码错误
	ErrAuthDenied = errors.New("authentication denied")
	// ErrStorageUnavailable 无法打开或初始化数据库
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrValidationFailed 表单校验失败
	ErrValidationFailed = errors.New("validation failed")
	// ErrNoActiveSession 尚未登录任何账户
	ErrNoActiveSession = errors.New("no active session")
)

// ValidationError 记录校验失败的字段，errors.Is 可匹配 ErrValidationFailed。
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	msg := ErrValidationFailed.Error()
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if len(e.Fields) > 0 {
		msg += " (" + strings.Join(e.Fields, ", ") + ")"
	}
	return msg
}

// Unwrap 使 errors.Is(err, ErrValidationFailed) 成立。
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

func validationError(reason string, fields ...string) error {
	return &ValidationError{Fields: fields, Reason: reason}
}

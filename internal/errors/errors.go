package errors

import (
	"errors"
	"fmt"
)

// ErrorType 定义错误类型
type ErrorType int

const (
	// ErrTypeUnknown 未知错误
	ErrTypeUnknown ErrorType = iota
	// ErrTypeGit Git 相关错误
	ErrTypeGit
	// ErrTypeValidation 输入验证错误
	ErrTypeValidation
	// ErrTypeConfig 配置相关错误
	ErrTypeConfig
	// ErrTypeTimeout 超时错误
	ErrTypeTimeout
)

// QuickmitError 统一错误结构
type QuickmitError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
}

// Error 实现 error 接口
func (e *QuickmitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap 支持 errors.Is 和 errors.As
func (e *QuickmitError) Unwrap() error {
	return e.Cause
}

// WithSuggestion 添加解决建议
func (e *QuickmitError) WithSuggestion(suggestion string) *QuickmitError {
	e.Suggestion = suggestion
	return e
}

// New 创建指定类型的错误
func New(t ErrorType, message string) *QuickmitError {
	return &QuickmitError{Type: t, Message: message}
}

// Wrap 包装底层错误
func Wrap(t ErrorType, message string, cause error) *QuickmitError {
	return &QuickmitError{Type: t, Message: message, Cause: cause}
}

// TypeOf 返回错误的类型；非 QuickmitError 返回 ErrTypeUnknown。
func TypeOf(err error) ErrorType {
	var qe *QuickmitError
	if errors.As(err, &qe) {
		return qe.Type
	}
	return ErrTypeUnknown
}

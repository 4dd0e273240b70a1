package errors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/penwyp/quickmit/collector"
)

// ErrorHandler 将底层错误映射为用户可读的 CLIError
type ErrorHandler struct{}

// NewErrorHandler 创建新的错误处理器
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle 处理错误，返回结构化的错误信息
func (h *ErrorHandler) Handle(err error) CLIError {
	if err == nil {
		return CLIError{ExitCode: ExitCodeSuccess}
	}

	if errors.Is(err, collector.ErrNotGitRepository) {
		return CLIError{
			Message:    "The target directory is not a Git repository",
			Suggestion: "Run quickmit inside a repository, or point --dir at one",
			ExitCode:   ExitCodeGitError,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return CLIError{
			Message:    "Operation timed out",
			Details:    err.Error(),
			Suggestion: "Large repositories may need a higher --timeout",
			ExitCode:   ExitCodeTimeout,
		}
	}

	switch TypeOf(err) {
	case ErrTypeValidation:
		return CLIError{
			Message:  err.Error(),
			ExitCode: ExitCodeValidationError,
		}
	case ErrTypeConfig:
		return CLIError{
			Message:    "Configuration error",
			Details:    err.Error(),
			Suggestion: "Check the syntax of your config file",
			ExitCode:   ExitCodeConfigError,
		}
	}

	errStr := err.Error()

	// git 不可用
	if strings.Contains(errStr, "executable file not found") {
		return CLIError{
			Message:    "git is not installed or not on PATH",
			Suggestion: "Install git: https://git-scm.com/downloads",
			ExitCode:   ExitCodeGitError,
		}
	}

	// 权限问题
	if strings.Contains(errStr, "permission denied") {
		return CLIError{
			Message:    "Permission denied while reading the repository",
			Details:    errStr,
			Suggestion: "Check the ownership of the target directory",
			ExitCode:   ExitCodeGitError,
		}
	}

	if strings.Contains(errStr, "git diff") || strings.Contains(errStr, "git status") {
		return CLIError{
			Message:  "Git command failed",
			Details:  errStr,
			ExitCode: ExitCodeGitError,
		}
	}

	return CLIError{
		Message:  "An unexpected error occurred",
		Details:  errStr,
		ExitCode: ExitCodeGenericError,
	}
}

// Render 将 CLIError 渲染到 w，错误消息着色，建议保持原色。
func (h *ErrorHandler) Render(w io.Writer, ce CLIError) {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)

	_, _ = red.Fprintf(w, "Error: %s\n", ce.Message)
	if ce.Details != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", ce.Details)
	}
	if ce.Suggestion != "" {
		_, _ = yellow.Fprintf(w, "Hint: %s\n", ce.Suggestion)
	}
}

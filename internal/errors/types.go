package errors

// Exit codes for different error types
const (
	ExitCodeSuccess         = 0
	ExitCodeGenericError    = 1
	ExitCodeValidationError = 2
	ExitCodeConfigError     = 3
	ExitCodeGitError        = 8
	ExitCodeTimeout         = 124 // Standard timeout exit code
)

// CLIError 包含展示给用户的错误信息
type CLIError struct {
	Message    string // 用户友好的错误消息
	Details    string // 详细的错误信息（可选）
	Suggestion string // 建议的解决方案
	ExitCode   int    // 退出码
}

package collector

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Runner 抽象出命令执行器，方便在单元测试中注入 Mock。
// 实际运行时使用 exec.Command 实现。
//
// 返回值约定：成功时输出字节数组，错误时返回非 nil error。
// 日志输出由调用方处理。
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// FileChange 表示一个变更文件及其单字母状态码（A/M/D/R）。
type FileChange struct {
	Path   string
	Status byte
}

// DiffRecord 为单个文件的 unified diff 文本。
// 每个变更文件在一次分析中只生成一条记录，生成后不再修改。
type DiffRecord struct {
	File string `json:"file"`
	Diff string `json:"diff"`
}

// Collector 收集工作区的变更文件列表与逐文件 diff。
// 通过依赖注入的 Runner 以实现可测试性。
// 所有方法均以 context 控制生命周期；对仓库只读。
type Collector struct {
	runner  Runner
	exclude *ExclusionList
}

// New 创建 Collector 实例。exclude 为 nil 时使用默认排除列表。
func New(r Runner, exclude *ExclusionList) *Collector {
	if exclude == nil {
		exclude = DefaultExclusions()
	}
	return &Collector{runner: r, exclude: exclude}
}

// ErrNoChanges 表示工作区没有可分析的变更。
var ErrNoChanges = fmt.Errorf("no changes detected")

// ErrNotGitRepository 表示目标目录不是 Git 仓库。
var ErrNotGitRepository = fmt.Errorf("not a git repository")

// 安全验证：清理输出中的控制字符，文件路径保留路径分隔符
var dangerousChars = regexp.MustCompile(`[;&|$\x00-\x1f\x7f-\x9f]`)

func sanitizeOutput(s string) string {
	return dangerousChars.ReplaceAllString(s, "")
}

// wrapGitError 将 git 的失败输出归一化为单一错误值。
func wrapGitError(op string, out []byte, err error) error {
	msg := strings.ToLower(string(out) + err.Error())
	if strings.Contains(msg, "not a git repository") {
		return ErrNotGitRepository
	}
	trimmed := strings.TrimSpace(string(out))
	if trimmed != "" {
		return fmt.Errorf("%s failed: %w: %s", op, err, sanitizeOutput(trimmed))
	}
	return fmt.Errorf("%s failed: %w", op, err)
}

// ChangedFiles 返回工作区相对 HEAD 的变更文件及状态码，已应用排除列表。
// 等价于 `git diff HEAD --name-status`，输出顺序与 git 一致。
func (c *Collector) ChangedFiles(ctx context.Context, dir string) ([]FileChange, error) {
	out, err := c.runner.Run(ctx, "git", "-C", dir, "diff", "HEAD", "--name-status", "--no-ext-diff")
	if err != nil {
		return nil, wrapGitError("git diff --name-status", out, err)
	}

	var changes []FileChange
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 || fields[0] == "" {
			continue
		}
		// 状态列形如 M / A / D / R100，仅取首字母。
		status := fields[0][0]
		// rename 行为 "R100\told\tnew"，取新路径。
		path := sanitizeOutput(fields[len(fields)-1])
		if path == "" || c.exclude.Excluded(path) {
			continue
		}
		changes = append(changes, FileChange{Path: path, Status: status})
	}
	return changes, nil
}

// FileDiff 返回单个文件相对 HEAD 的 unified diff，原样透传 git 输出。
func (c *Collector) FileDiff(ctx context.Context, dir, path string) (string, error) {
	out, err := c.runner.Run(ctx, "git", "-C", dir, "diff", "HEAD", "--no-ext-diff", "--", path)
	if err != nil {
		return "", wrapGitError("git diff", out, err)
	}
	return string(out), nil
}

// Collect 枚举变更文件并逐个拉取 diff。文件按 git 报告的顺序
// 依次处理，下游的分类与格式化依赖这一稳定顺序。
// 无可分析变更时返回 ErrNoChanges。
func (c *Collector) Collect(ctx context.Context, dir string) ([]FileChange, []DiffRecord, error) {
	changes, err := c.ChangedFiles(ctx, dir)
	if err != nil {
		return nil, nil, err
	}
	if len(changes) == 0 {
		return nil, nil, ErrNoChanges
	}

	records := make([]DiffRecord, 0, len(changes))
	for _, fc := range changes {
		// 删除的文件同样有 diff（全部为删除行）。
		diff, err := c.FileDiff(ctx, dir, fc.Path)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, DiffRecord{File: fc.Path, Diff: diff})
	}
	return changes, records, nil
}

// CombinedDiff 返回所有 DiffRecord 拼接后的文本，供内容分析使用。
func CombinedDiff(records []DiffRecord) string {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(r.Diff)
		if !strings.HasSuffix(r.Diff, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

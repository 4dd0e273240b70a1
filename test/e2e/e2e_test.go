package e2e

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildBinary 构建 quickmit 可执行文件并返回路径。
func buildBinary(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "quickmit-bin")

	cmd := exec.Command("go", "build", "-o", binPath, "github.com/penwyp/quickmit")
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build binary: %v, output: %s", err, string(out))
	}
	if runtime.GOOS == "windows" {
		binPath += ".exe"
	}
	return binPath
}

// initGitRepo 创建临时 Git 仓库（含初始提交）并返回路径。
func initGitRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v, %s", args, err, out)
		}
	}
	run("init")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "tester")

	_ = os.WriteFile(filepath.Join(dir, "base.txt"), []byte("base\n"), 0644)
	run("add", "base.txt")
	run("commit", "-m", "chore: init")

	return dir
}

// runQuickmit 在 repo 目录上执行二进制，返回合并输出与错误。
func runQuickmit(t *testing.T, bin, repo string, extra ...string) (string, error) {
	t.Helper()
	args := append([]string{"-C", repo, "--config", filepath.Join(t.TempDir(), "config.yaml")}, extra...)
	cmd := exec.Command(bin, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestE2E_GenerateMessage(t *testing.T) {
	bin := buildBinary(t)
	repo := initGitRepo(t)

	// 修改已跟踪文件，工作区即有变更
	require.NoError(t, os.WriteFile(filepath.Join(repo, "base.txt"), []byte("base\nlorem\nipsum\n"), 0644))

	out, err := runQuickmit(t, bin, repo)
	require.NoError(t, err, out)
	require.Contains(t, out, "feat: add new features in base.txt")
}

func TestE2E_NoChanges(t *testing.T) {
	bin := buildBinary(t)
	repo := initGitRepo(t)

	out, err := runQuickmit(t, bin, repo)
	require.NoError(t, err, out)
	require.Contains(t, out, "No changes detected to commit")
}

func TestE2E_NotARepository(t *testing.T) {
	bin := buildBinary(t)
	dir := t.TempDir()

	out, err := runQuickmit(t, bin, dir)
	require.Error(t, err)
	require.Contains(t, out, "not a Git repository")

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 8, exitErr.ExitCode())
}

func TestE2E_JSONOutput(t *testing.T) {
	bin := buildBinary(t)
	repo := initGitRepo(t)

	require.NoError(t, os.WriteFile(filepath.Join(repo, "base.txt"), []byte("base\nlorem\nipsum\n"), 0644))

	out, err := runQuickmit(t, bin, repo, "--json")
	require.NoError(t, err, out)

	var resp struct {
		Message  *string `json:"message"`
		Analysis struct {
			Type        string `json:"type"`
			Description string `json:"description"`
		} `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.Message)
	require.Equal(t, "feat", resp.Analysis.Type)
	require.Equal(t, "add new features", resp.Analysis.Description)
}

func TestE2E_DetailedStyle(t *testing.T) {
	bin := buildBinary(t)
	repo := initGitRepo(t)

	require.NoError(t, os.WriteFile(filepath.Join(repo, "base.txt"), []byte("base\nlorem\nipsum\n"), 0644))

	out, err := runQuickmit(t, bin, repo, "--style", "detailed")
	require.NoError(t, err, out)
	require.Contains(t, out, "Files changed:")
	require.Contains(t, out, "- Modified: base.txt")
}

func TestE2E_ChangesSubcommand(t *testing.T) {
	bin := buildBinary(t)
	repo := initGitRepo(t)

	require.NoError(t, os.WriteFile(filepath.Join(repo, "base.txt"), []byte("base\nlorem\n"), 0644))

	out, err := runQuickmit(t, bin, repo, "changes")
	require.NoError(t, err, out)
	require.Contains(t, out, "base.txt")
	require.Contains(t, out, "+lorem")
}

func TestE2E_ExcludedFilesIgnored(t *testing.T) {
	bin := buildBinary(t)
	repo := initGitRepo(t)

	// 提交一个 lockfile，然后只修改它：分析应视为无变更
	lock := filepath.Join(repo, "yarn.lock")
	require.NoError(t, os.WriteFile(lock, []byte("v1\n"), 0644))
	gitRun(t, repo, "add", "yarn.lock")
	gitRun(t, repo, "commit", "-m", "chore: lockfile")
	require.NoError(t, os.WriteFile(lock, []byte("v2\n"), 0644))

	out, err := runQuickmit(t, bin, repo)
	require.NoError(t, err, out)
	require.Contains(t, out, "No changes detected to commit")
}

func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v, %s", args, err, strings.TrimSpace(string(out)))
	}
}

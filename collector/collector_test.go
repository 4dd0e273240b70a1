package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// mockRunner 用于单元测试，按调用顺序返回预设结果。
type mockRunner struct {
	outputs [][]byte
	errs    []error
	idx     int
	calls   [][]string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.calls = append(m.calls, append([]string{name}, args...))
	if m.idx >= len(m.outputs) {
		return nil, errors.New("unexpected call")
	}
	out := m.outputs[m.idx]
	err := m.errs[m.idx]
	m.idx++
	return out, err
}

func TestCollector_ChangedFiles(t *testing.T) {
	t.Parallel()

	t.Run("statuses_and_order", func(t *testing.T) {
		mr := &mockRunner{
			outputs: [][]byte{[]byte("M\tmain.go\nA\tfoo/new.go\nD\told.go\nR100\ta.go\tb.go\n")},
			errs:    []error{nil},
		}
		c := New(mr, nil)

		changes, err := c.ChangedFiles(context.Background(), ".")
		require.NoError(t, err)
		require.Len(t, changes, 4)
		require.Equal(t, FileChange{Path: "main.go", Status: 'M'}, changes[0])
		require.Equal(t, FileChange{Path: "foo/new.go", Status: 'A'}, changes[1])
		require.Equal(t, FileChange{Path: "old.go", Status: 'D'}, changes[2])
		// rename 行取新路径，状态只保留首字母
		require.Equal(t, FileChange{Path: "b.go", Status: 'R'}, changes[3])
	})

	t.Run("applies_exclusions", func(t *testing.T) {
		mr := &mockRunner{
			outputs: [][]byte{[]byte("M\tmain.go\nM\tgo.sum\nA\tnode_modules/pkg/index.js\nM\tdocs/readme.md")},
			errs:    []error{nil},
		}
		c := New(mr, nil)

		changes, err := c.ChangedFiles(context.Background(), ".")
		require.NoError(t, err)
		require.Len(t, changes, 2)
		require.Equal(t, "main.go", changes[0].Path)
		require.Equal(t, "docs/readme.md", changes[1].Path)
	})

	t.Run("extra_exclusions_from_config", func(t *testing.T) {
		mr := &mockRunner{
			outputs: [][]byte{[]byte("M\tmain.go\nM\tgenerated.pb.go")},
			errs:    []error{nil},
		}
		c := New(mr, NewExclusionList([]string{"generated.pb.go"}))

		changes, err := c.ChangedFiles(context.Background(), ".")
		require.NoError(t, err)
		require.Len(t, changes, 1)
		require.Equal(t, "main.go", changes[0].Path)
	})

	t.Run("empty_output", func(t *testing.T) {
		mr := &mockRunner{outputs: [][]byte{[]byte("")}, errs: []error{nil}}
		c := New(mr, nil)

		changes, err := c.ChangedFiles(context.Background(), ".")
		require.NoError(t, err)
		require.Empty(t, changes)
	})

	t.Run("not_a_repository", func(t *testing.T) {
		mr := &mockRunner{
			outputs: [][]byte{[]byte("fatal: not a git repository (or any of the parent directories): .git")},
			errs:    []error{errors.New("exit status 128")},
		}
		c := New(mr, nil)

		_, err := c.ChangedFiles(context.Background(), "/tmp/nowhere")
		require.ErrorIs(t, err, ErrNotGitRepository)
	})

	t.Run("other_failure_is_wrapped", func(t *testing.T) {
		cause := errors.New("exit status 1")
		mr := &mockRunner{
			outputs: [][]byte{[]byte("fatal: bad revision 'HEAD'")},
			errs:    []error{cause},
		}
		c := New(mr, nil)

		_, err := c.ChangedFiles(context.Background(), ".")
		require.Error(t, err)
		require.ErrorIs(t, err, cause)
		require.Contains(t, err.Error(), "git diff --name-status")
	})

	t.Run("uses_target_dir", func(t *testing.T) {
		mr := &mockRunner{outputs: [][]byte{[]byte("")}, errs: []error{nil}}
		c := New(mr, nil)

		_, err := c.ChangedFiles(context.Background(), "/work/repo")
		require.NoError(t, err)
		require.Equal(t, []string{"git", "-C", "/work/repo", "diff", "HEAD", "--name-status", "--no-ext-diff"}, mr.calls[0])
	})
}

func TestCollector_FileDiff(t *testing.T) {
	t.Parallel()

	t.Run("verbatim_output", func(t *testing.T) {
		raw := "diff --git a/main.go b/main.go\n--- a/main.go\n+++ b/main.go\n@@ -1 +1 @@\n-old\n+new\n"
		mr := &mockRunner{outputs: [][]byte{[]byte(raw)}, errs: []error{nil}}
		c := New(mr, nil)

		diff, err := c.FileDiff(context.Background(), ".", "main.go")
		require.NoError(t, err)
		// diff 文本必须原样透传，不做清理或裁剪
		require.Equal(t, raw, diff)
	})

	t.Run("failure", func(t *testing.T) {
		mr := &mockRunner{outputs: [][]byte{nil}, errs: []error{errors.New("boom")}}
		c := New(mr, nil)

		_, err := c.FileDiff(context.Background(), ".", "main.go")
		require.Error(t, err)
		require.Contains(t, err.Error(), "git diff failed")
	})
}

func TestCollector_Collect(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		mr := &mockRunner{
			outputs: [][]byte{
				[]byte("M\ta.go\nA\tb.go"),
				[]byte("diff a"),
				[]byte("diff b"),
			},
			errs: []error{nil, nil, nil},
		}
		c := New(mr, nil)

		changes, records, err := c.Collect(context.Background(), ".")
		require.NoError(t, err)
		require.Len(t, changes, 2)
		require.Equal(t, []DiffRecord{
			{File: "a.go", Diff: "diff a"},
			{File: "b.go", Diff: "diff b"},
		}, records)
		// 逐文件 diff 按枚举顺序依次拉取
		require.Len(t, mr.calls, 3)
		require.Equal(t, "a.go", mr.calls[1][len(mr.calls[1])-1])
		require.Equal(t, "b.go", mr.calls[2][len(mr.calls[2])-1])
	})

	t.Run("no_changes", func(t *testing.T) {
		mr := &mockRunner{outputs: [][]byte{[]byte("")}, errs: []error{nil}}
		c := New(mr, nil)

		_, _, err := c.Collect(context.Background(), ".")
		require.ErrorIs(t, err, ErrNoChanges)
	})

	t.Run("all_files_excluded_is_no_changes", func(t *testing.T) {
		mr := &mockRunner{
			outputs: [][]byte{[]byte("M\tgo.sum\nM\tyarn.lock")},
			errs:    []error{nil},
		}
		c := New(mr, nil)

		_, _, err := c.Collect(context.Background(), ".")
		require.ErrorIs(t, err, ErrNoChanges)
	})

	t.Run("diff_failure_aborts", func(t *testing.T) {
		mr := &mockRunner{
			outputs: [][]byte{[]byte("M\ta.go"), nil},
			errs:    []error{nil, errors.New("io error")},
		}
		c := New(mr, nil)

		_, _, err := c.Collect(context.Background(), ".")
		require.Error(t, err)
	})
}

func TestCombinedDiff(t *testing.T) {
	t.Parallel()

	records := []DiffRecord{
		{File: "a.go", Diff: "+one\n"},
		{File: "b.go", Diff: "+two"},
	}
	require.Equal(t, "+one\n+two\n", CombinedDiff(records))
}

func TestExclusionList(t *testing.T) {
	t.Parallel()

	e := NewExclusionList([]string{"coverage"})

	require.True(t, e.Excluded("go.sum"))
	require.True(t, e.Excluded("node_modules"))
	require.True(t, e.Excluded("web/node_modules/lodash/index.js"))
	require.True(t, e.Excluded("coverage/report.html"))
	require.False(t, e.Excluded("main.go"))
	require.False(t, e.Excluded("internal/dist.go"))
}

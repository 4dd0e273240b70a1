package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/penwyp/quickmit/collector"
	"github.com/penwyp/quickmit/formatter"
	"github.com/penwyp/quickmit/internal/config"
	qerrors "github.com/penwyp/quickmit/internal/errors"
	"github.com/penwyp/quickmit/internal/logger"
	"github.com/penwyp/quickmit/tool"
	"github.com/penwyp/quickmit/ui"
)

// version holds the current version of quickmit
// This will be set at build time via ldflags
var version = "dev"

// GetVersionString returns a formatted version string
func GetVersionString() string {
	return fmt.Sprintf("quickmit version %s", version)
}

// 将引擎构造抽象为函数变量以便测试时注入 Mock。
var engineProvider func() *tool.Engine = defaultEngineProvider

var appLogger *zap.Logger

func defaultEngineProvider() *tool.Engine {
	return tool.NewEngine(collector.New(realRunner{debug: flagDebug}, exclusions), appLogger)
}

// exclusions 为进程级排除列表，启动时根据配置构建一次，之后只读。
var exclusions *collector.ExclusionList

// realRunner 实际执行系统命令；仅在生产模式使用。
type realRunner struct {
	debug bool
}

func (r realRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if r.debug && appLogger != nil {
		appLogger.Debug("Running command",
			zap.String("command", name),
			zap.Strings("args", args))
	}
	output, err := cmd.CombinedOutput()
	if r.debug && appLogger != nil {
		appLogger.Debug("Command output",
			zap.Int("output_length", len(output)),
			zap.Error(err))
	}
	return output, err
}

var rootCmd = &cobra.Command{
	Use:   "quickmit",
	Short: "Rule-based commit message generator",
	Long: `quickmit inspects the working-tree changes of a Git repository and
derives a commit message from them without calling any language model.

The analysis is deterministic: changed files are bucketed by status
(added/modified/deleted/renamed), the combined diff is classified by a
fixed keyword table into a conventional-commit type, and the message is
rendered in one of three styles (conventional, simple, detailed).`,
	RunE: run,
}

var (
	flagDir     string
	flagStyle   string
	flagJSON    bool
	flagReview  bool
	flagCopy    bool
	flagDebug   bool
	flagTimeout int
	flagConfig  string
	flagVersion bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "C", ".", "repository directory to analyze")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit the structured result as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug output for troubleshooting")
	rootCmd.PersistentFlags().IntVarP(&flagTimeout, "timeout", "t", 30, "overall timeout in seconds")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default ~/.config/quickmit/config.yaml)")
	rootCmd.Flags().StringVarP(&flagStyle, "style", "s", "", "message style: conventional, simple or detailed")
	rootCmd.Flags().BoolVarP(&flagReview, "review", "r", false, "interactively review the message before printing")
	rootCmd.Flags().BoolVarP(&flagCopy, "copy", "y", false, "copy the message to the clipboard")
	rootCmd.Flags().BoolVar(&flagVersion, "version", false, "show version information")
}

func Execute() error { return rootCmd.Execute() }

func ExecuteContext(ctx context.Context) error { return rootCmd.ExecuteContext(ctx) }

// setup 初始化日志、配置与排除列表；root 与子命令共用。
func setup() (*config.Config, error) {
	var err error
	appLogger, err = logger.New(flagDebug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	path := flagConfig
	if path == "" {
		if path, err = config.DefaultPath(); err != nil {
			return nil, qerrors.Wrap(qerrors.ErrTypeConfig, "cannot resolve config path", err)
		}
	}
	mgr, err := config.NewManager(path)
	if err != nil {
		return nil, qerrors.Wrap(qerrors.ErrTypeConfig, "invalid config path", err)
	}
	cfg, err := mgr.Load()
	if err != nil {
		return nil, qerrors.Wrap(qerrors.ErrTypeConfig, "cannot load config", err)
	}

	if cfg.Debug && !flagDebug {
		flagDebug = true
		if appLogger, err = logger.New(true); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	exclusions = collector.NewExclusionList(cfg.Exclude)
	if flagDebug {
		appLogger.Debug("exclusion list built", zap.Strings("entries", exclusions.Entries()))
	}
	return cfg, nil
}

func run(cmd *cobra.Command, _ []string) error {
	if flagVersion {
		fmt.Println(GetVersionString())
		return nil
	}

	cfg, err := setup()
	if err != nil {
		return reportError(cmd, err)
	}
	defer func() { _ = appLogger.Sync() }()

	styleName := flagStyle
	if styleName == "" {
		styleName = cfg.DefaultStyle
	}
	style, err := formatter.ParseStyle(styleName)
	if err != nil {
		return reportError(cmd, qerrors.Wrap(qerrors.ErrTypeValidation, "invalid style", err))
	}

	// 整体超时由最外层包裹，流水线内部不做取消
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(flagTimeout)*time.Second)
	defer cancel()

	engine := engineProvider()

	if flagJSON {
		resp := engine.GenerateCommitMessage(ctx, tool.GenerateCommitMessageRequest{
			RootDir: flagDir,
			Style:   string(style),
		})
		return printJSON(cmd, resp)
	}

	if flagReview {
		return runReview(cmd, ctx, engine, style)
	}

	res, err := engine.Run(ctx, flagDir, style)
	if err != nil {
		if err == collector.ErrNoChanges {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tool.NoChangesError)
			return nil
		}
		return reportError(cmd, err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	if flagCopy {
		copyToClipboard(cmd, res.Message)
	}
	return nil
}

// runReview 进入交互式预览：先跑加载界面，再进入确认界面。
func runReview(cmd *cobra.Command, ctx context.Context, engine *tool.Engine, style formatter.Style) error {
	loading := ui.NewLoadingModel(ctx, engine, flagDir, style)
	finalModel, err := tea.NewProgram(loading).Run()
	if err != nil {
		return reportError(cmd, err)
	}
	lm, ok := finalModel.(*ui.LoadingModel)
	if !ok {
		return fmt.Errorf("internal error: unexpected model type, got %T", finalModel)
	}
	res, err := lm.IsDone()
	if err != nil {
		if err == collector.ErrNoChanges {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tool.NoChangesError)
			return nil
		}
		if err == context.Canceled {
			return nil
		}
		return reportError(cmd, err)
	}

	review := ui.NewReviewModel(res, style)
	finalModel, err = tea.NewProgram(review).Run()
	if err != nil {
		return reportError(cmd, err)
	}
	rm, ok := finalModel.(*ui.ReviewModel)
	if !ok {
		return fmt.Errorf("internal error: unexpected model type, got %T", finalModel)
	}
	done, decision, message := rm.IsDone()
	if !done || decision != ui.DecisionAccept {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
		return nil
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), message)
	if flagCopy {
		copyToClipboard(cmd, message)
	}
	return nil
}

func copyToClipboard(cmd *cobra.Command, message string) {
	if err := clipboard.WriteAll(message); err != nil {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "clipboard unavailable:", err)
		return
	}
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), ui.RenderStatusBar("Copied to clipboard", true))
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// reportError 渲染友好的错误信息并返回携带退出码的错误。
func reportError(cmd *cobra.Command, err error) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	handler := qerrors.NewErrorHandler()
	ce := handler.Handle(err)
	handler.Render(cmd.ErrOrStderr(), ce)
	return &exitError{code: ce.ExitCode}
}

// exitError 将退出码传递到 main。
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// ExitCodeFor 返回 err 对应的进程退出码。
func ExitCodeFor(err error) int {
	if err == nil {
		return qerrors.ExitCodeSuccess
	}
	if ee, ok := err.(*exitError); ok {
		return ee.code
	}
	return qerrors.ExitCodeGenericError
}

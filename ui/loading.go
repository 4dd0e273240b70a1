package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/penwyp/quickmit/formatter"
	"github.com/penwyp/quickmit/tool"
)

// Stage 表示进度阶段
type Stage int

const (
	StageCollect Stage = iota
	StageAnalyze
	StageDone
)

// engineInterface 与 tool.Engine 解耦，便于测试注入。
type engineInterface interface {
	Run(ctx context.Context, dir string, style formatter.Style) (*tool.Result, error)
}

// LoadingModel 在执行分析流水线时展示 Spinner，
// 完成后通过 tea.Quit 退出，将 result 或 err 写回自身字段。
type LoadingModel struct {
	stage   Stage
	spinner spinner.Model

	ctx    context.Context
	engine engineInterface
	dir    string
	style  formatter.Style

	result *tool.Result
	err    error
}

// NewLoadingModel 创建初始模型。
func NewLoadingModel(ctx context.Context, engine engineInterface, dir string, style formatter.Style) *LoadingModel {
	sp := spinner.New()
	sp.Spinner = spinner.Line
	return &LoadingModel{
		stage:   StageCollect,
		spinner: sp,
		ctx:     ctx,
		engine:  engine,
		dir:     dir,
		style:   style,
	}
}

// Init 启动分析
func (m *LoadingModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, analyzeCmd(m.ctx, m.engine, m.dir, m.style))
}

// Update 处理消息
func (m *LoadingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.err = context.Canceled
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		// Run 是一次性调用，收集结束即进入分析阶段的展示
		if m.stage == StageCollect {
			m.stage = StageAnalyze
		}
		return m, cmd
	case resultMsg:
		m.stage = StageDone
		m.result = msg.result
		return m, tea.Quit
	case errorMsg:
		m.stage = StageDone
		m.err = msg.err
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View 根据阶段显示文字
func (m *LoadingModel) View() string {
	var statusStyle lipgloss.Style
	var status string

	switch m.stage {
	case StageCollect:
		status = "Collecting changes…"
		statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	case StageAnalyze:
		status = "Analyzing diff…"
		statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	default:
		status = "Done"
		statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	}

	return m.spinner.View() + " " + statusStyle.Render(status)
}

// IsDone 返回结果
func (m *LoadingModel) IsDone() (*tool.Result, error) {
	return m.result, m.err
}

// ---------------- tea.Msg 定义 ----------------

type resultMsg struct{ result *tool.Result }

type errorMsg struct{ err error }

// ---------------- Cmd 实现 --------------------

func analyzeCmd(ctx context.Context, engine engineInterface, dir string, style formatter.Style) tea.Cmd {
	return func() tea.Msg {
		res, err := engine.Run(ctx, dir, style)
		if err != nil {
			return errorMsg{err}
		}
		return resultMsg{result: res}
	}
}

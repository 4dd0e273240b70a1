package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/penwyp/quickmit/formatter"
	"github.com/penwyp/quickmit/tool"
)

// Decision 表示用户在 Review 界面的选择
type Decision int

const (
	DecisionNone Decision = iota
	DecisionAccept
	DecisionCancel
)

// buttonState 定义按钮的索引
type buttonState int

const (
	buttonAccept buttonState = iota
	buttonStyle
	buttonCopy
	buttonCancel
)

// styleOrder 定义 [S] 键循环切换的顺序
var styleOrder = []formatter.Style{
	formatter.StyleConventional,
	formatter.StyleSimple,
	formatter.StyleDetailed,
}

// ReviewModel 展示生成的 commit message 供用户确认。
// 支持 a/s/y/c 快捷键：接受、切换风格、复制到剪贴板、取消。
// 切换风格不重新读取仓库，直接用已有分析结果重新渲染。
type ReviewModel struct {
	result   *tool.Result
	style    formatter.Style
	message  string
	copied   bool
	decision Decision
	done     bool
	selected buttonState
	styles   UIStyles
}

// NewReviewModel 创建初始模型。
func NewReviewModel(result *tool.Result, style formatter.Style) *ReviewModel {
	return &ReviewModel{
		result:   result,
		style:    style,
		message:  result.Message,
		selected: buttonAccept,
		styles:   DefaultStyles(),
	}
}

// Init 实现 tea.Model 接口
func (m *ReviewModel) Init() tea.Cmd { return nil }

// Update 处理按键事件
func (m *ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "c", "C", "q", "Q":
		m.decision = DecisionCancel
		m.done = true
		return m, tea.Quit
	case "left", "h", "up", "k":
		m.selected--
		if m.selected < buttonAccept {
			m.selected = buttonCancel
		}
	case "right", "l", "down", "j":
		m.selected++
		if m.selected > buttonCancel {
			m.selected = buttonAccept
		}
	case "a", "A":
		m.decision = DecisionAccept
		m.done = true
		return m, tea.Quit
	case "s", "S":
		m.cycleStyle()
	case "y", "Y":
		m.copyMessage()
	case "enter":
		switch m.selected {
		case buttonAccept:
			m.decision = DecisionAccept
			m.done = true
			return m, tea.Quit
		case buttonStyle:
			m.cycleStyle()
		case buttonCopy:
			m.copyMessage()
		case buttonCancel:
			m.decision = DecisionCancel
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// cycleStyle 切换到下一个消息风格并重新渲染
func (m *ReviewModel) cycleStyle() {
	for i, s := range styleOrder {
		if s == m.style {
			m.style = styleOrder[(i+1)%len(styleOrder)]
			break
		}
	}
	m.message = formatter.Format(m.style, m.result.Changes, m.result.Analysis)
	m.copied = false
}

func (m *ReviewModel) copyMessage() {
	// 剪贴板在 headless 环境下不可用，失败时静默忽略
	if err := clipboard.WriteAll(m.message); err == nil {
		m.copied = true
	}
}

// View 渲染
func (m *ReviewModel) View() string {
	selectedStyle := lipgloss.NewStyle().Background(lipgloss.Color("240")).Foreground(lipgloss.Color("255")).Padding(0, 1)
	normalStyle := lipgloss.NewStyle().Padding(0, 1)
	boxStyle := lipgloss.NewStyle().PaddingLeft(2)

	titleText := fmt.Sprintf("Commit Preview (%s)", m.style)
	padding := strings.Repeat("─", 56-1-len(titleText))
	header := fmt.Sprintf("┌ %s %s┐\n", titleText, padding)

	var bodyLines []string
	for _, l := range strings.Split(m.message, "\n") {
		l = strings.ReplaceAll(l, "\r", "")
		bodyLines = append(bodyLines, boxStyle.Render(fmt.Sprintf("%-56s", l)))
	}
	body := "│" + strings.Join(bodyLines, "│\n│") + "│\n"

	labels := []string{"[A] Accept", "[S] Style", "[Y] Copy", "[C] Cancel"}
	if m.copied {
		labels[buttonCopy] = "[Y] Copied!"
	}
	buttons := make([]string, len(labels))
	for i, label := range labels {
		if buttonState(i) == m.selected {
			buttons[i] = selectedStyle.Render(label)
		} else {
			buttons[i] = normalStyle.Render(label)
		}
	}

	buttonRow := "│" + boxStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	rightPadding := 58 - lipgloss.Width(buttonRow)
	if rightPadding < 0 {
		rightPadding = 0
	}
	buttonRow = buttonRow + strings.Repeat(" ", rightPadding) + "│\n"

	blankLine := fmt.Sprintf("│ %-56s │\n", "")
	footer := blankLine + buttonRow + "└──────────────────────────────────────────────────────────┘"

	return header + body + footer
}

// IsDone 返回模型是否结束，以及决策和最终消息。
func (m *ReviewModel) IsDone() (bool, Decision, string) {
	return m.done, m.decision, m.message
}

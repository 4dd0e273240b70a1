package ui

import "github.com/charmbracelet/lipgloss"

// UIColors 定义统一的颜色主题
type UIColors struct {
	Gray   lipgloss.Color
	Blue   lipgloss.Color
	Green  lipgloss.Color
	Yellow lipgloss.Color
	Red    lipgloss.Color
	White  lipgloss.Color
}

// DefaultColors 返回默认的颜色主题
func DefaultColors() UIColors {
	return UIColors{
		Gray:   lipgloss.Color("245"),
		Blue:   lipgloss.Color("39"),
		Green:  lipgloss.Color("42"),
		Yellow: lipgloss.Color("220"),
		Red:    lipgloss.Color("196"),
		White:  lipgloss.Color("255"),
	}
}

// UIStyles 定义统一的样式
type UIStyles struct {
	Colors   UIColors
	Border   lipgloss.Style
	Title    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Progress lipgloss.Style
	Message  lipgloss.Style
	Muted    lipgloss.Style
}

// DefaultStyles 返回默认的样式集
func DefaultStyles() UIStyles {
	colors := DefaultColors()
	return UIStyles{
		Colors:   colors,
		Border:   lipgloss.NewStyle().Foreground(colors.Blue),
		Title:    lipgloss.NewStyle().Foreground(colors.White).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(colors.Green),
		Error:    lipgloss.NewStyle().Foreground(colors.Red),
		Progress: lipgloss.NewStyle().Foreground(colors.Yellow),
		Message:  lipgloss.NewStyle().Foreground(colors.White),
		Muted:    lipgloss.NewStyle().Foreground(colors.Gray),
	}
}

// RenderStatusBar 渲染带样式的状态条
func RenderStatusBar(message string, isSuccess bool) string {
	var style lipgloss.Style
	if isSuccess {
		style = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Background(lipgloss.Color("22")).
			Bold(true).
			Padding(0, 1)
	} else {
		style = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("19")).
			Bold(true).
			Padding(0, 1)
	}

	indicator := "▶"
	if isSuccess {
		indicator = "✓"
	}
	return style.Render(indicator + " " + message)
}

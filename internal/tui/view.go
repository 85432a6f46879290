package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ Loading " + m.scenarioPath + "..."))
	}
	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneEstimate:
		content = m.estimateModel.View()
	case SceneScenarios:
		content = m.scenariosModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneSolve:
		content = m.solveModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 4 // title (2) + status (1) + padding (1)
	if contentHeight < 1 {
		contentHeight = 1
	}

	container := lipgloss.NewStyle().Height(contentHeight).Render(content)

	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		container,
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("SETAX - Self-Employment Tax Estimator")

	breadcrumb := m.currentScene.String()
	if m.currentScene == SceneEstimate {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.estimateModel.Name())
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb))
}

func (m Model) renderStatusBar() string {
	bindings := []key.Binding{keys.Help, keys.Estimate, keys.Scenarios, keys.Compare, keys.Solve, keys.Quit}
	shortcuts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		shortcuts = append(shortcuts, formatShortcut(b.Help().Key, b.Help().Desc))
	}
	statusText := strings.Join(shortcuts, " • ")

	if m.status != "" {
		spacer := strings.Repeat(" ", max(0, m.width-lipgloss.Width(statusText)-lipgloss.Width(m.status)-4))
		statusText += spacer + SubtitleStyle.Render(m.status)
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

func formatShortcut(k, desc string) string {
	return StatusKeyStyle.Render(k) + " " + desc
}

func (m Model) renderError() string {
	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()),
	)
	return m.renderApp(content)
}

func (m Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Keyboard Shortcuts"))
	sb.WriteString("\n\n")

	rows := [][2]string{
		{"F1", "Show this help"},
		{"F2", "Estimator form"},
		{"F3", "Scenario list"},
		{"F4", "Compare scenarios"},
		{"F5", "Break-even solver for the current form"},
		{"Tab / ↓", "Next field"},
		{"Shift+Tab / ↑", "Previous field"},
		{"← / →", "Change filing status"},
		{"Ctrl+T", "Toggle state tax"},
		{"Enter", "Select"},
		{"Esc", "Back"},
		{"Ctrl+C", "Quit"},
	}
	for _, r := range rows {
		sb.WriteString(HelpKeyStyle.Width(16).Render(r[0]))
		sb.WriteString(HelpDescStyle.Render(r[1]))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(InfoStyle.Render("Estimates recompute on every keystroke."))
	return BorderStyle.Render(sb.String())
}

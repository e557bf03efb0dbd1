package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/nhath/ezchart/internal/ui/icons"
	"github.com/nhath/ezchart/internal/ui/styles"
)

// View renders the screen
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.navbar.View(),
		m.canvas.View(),
		m.renderStatusBar(),
	)
	main = lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, main)

	if drop, x := m.navbar.DropdownView(); drop != "" {
		main = overlay.Composite(drop, main, overlay.Left, overlay.Top, x, m.navbar.Height())
	}
	if k, ok := m.dialogs.Active(); ok {
		main = overlay.Composite(m.dialogView(k), main, overlay.Center, overlay.Center, 0, 0)
	}
	if m.help.Visible() {
		main = overlay.Composite(m.help.View(), main, overlay.Center, overlay.Center, 0, 0)
	}
	return main
}

func (m Model) renderStatusBar() string {
	var parts []string

	if d := m.diagram; d != nil {
		parts = append(parts, styles.ModeStyle.Render(fmt.Sprintf("%s %s", icons.DatabaseIcon(d.DatabaseType), d.DatabaseType.Label())))
		parts = append(parts, styles.MetaStyle.Render(fmt.Sprintf(" %d tables %s %d relationships ", len(d.Tables), icons.IconBullet, len(d.Relationships))))
	} else {
		parts = append(parts, styles.ModeStyle.Render("NO DIAGRAM"))
	}

	if m.statusMsg != "" {
		parts = append(parts, styles.SuccessStyle.Render(icons.IconCheck+" "+m.statusMsg))
	}
	if m.errorMsg != "" {
		msg := truncate.StringWithTail(m.errorMsg, uint(max(m.width/2, 20)), "...")
		parts = append(parts, styles.ErrorStyle.Render(icons.IconError+" "+msg))
	}

	left := lipgloss.JoinHorizontal(lipgloss.Left, parts...)
	hint := styles.HelpStyle.Render(fmt.Sprintf("%s: menu • %s: help ",
		strings.Join(m.keys.Menu.Keys(), "/"), strings.Join(m.keys.Help.Keys(), "/")))
	gap := max(m.width-styles.StatusBarStyle.GetHorizontalFrameSize()-lipgloss.Width(left)-lipgloss.Width(hint), 1)
	return styles.StatusBarStyle.Width(m.width).MaxHeight(1).Render(left + strings.Repeat(" ", gap) + hint)
}

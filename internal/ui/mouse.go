package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ezchart/internal/ui/dialog"
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// centered mirrors how overlay.Center places a box of view's size
func (m Model) centered(view string) rect {
	w, h := lipgloss.Width(view), lipgloss.Height(view)
	return rect{x: m.width/2 - w/2, y: m.height/2 - h/2, w: w, h: h}
}

func (m Model) dialogView(k dialog.Kind) string {
	switch k {
	case dialog.CreateDiagram:
		return m.create.View()
	case dialog.OpenDiagram:
		return m.open.View()
	case dialog.ExportSQL:
		return m.export.View()
	}
	return ""
}

func isLeftPress(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if k, ok := m.dialogs.Active(); ok {
		if isLeftPress(msg) && !m.centered(m.dialogView(k)).contains(msg.X, msg.Y) {
			return m.update(dialog.DismissMsg{Kind: k})
		}
		return m.forward(msg)
	}
	if m.help.Visible() {
		if isLeftPress(msg) {
			m.help = m.help.Hide()
			return m, nil
		}
		return m.forward(msg)
	}

	var cmd tea.Cmd
	m.navbar, cmd = m.navbar.Update(msg)
	return m, cmd
}

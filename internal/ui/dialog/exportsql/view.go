package exportsql

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ezchart/internal/diagram"
	"github.com/nhath/ezchart/internal/ui/icons"
	"github.com/nhath/ezchart/internal/ui/styles"
)

const errorMessage = "Error generating SQL script. Please try again later or contact us."

func (m Model) boxSize() (int, int) {
	w := min(int(float64(m.width)*0.75), 110)
	w = max(w, min(60, m.width))
	h := min(int(float64(m.height)*0.8), 40)
	return w, h
}

func (m Model) description() string {
	label := "SQL"
	if t := m.params.TargetDatabaseType; t != diagram.Generic {
		label = t.Label()
	}
	return fmt.Sprintf("Export your diagram schema to %s script", label)
}

// View renders the dialog box, or "" when closed
func (m Model) View() string {
	if !m.Visible() {
		return ""
	}
	w, _ := m.boxSize()

	var b strings.Builder
	b.WriteString(styles.DialogTitleStyle.Render("Export SQL"))
	b.WriteString("\n")
	b.WriteString(styles.MetaStyle.Render(m.description()))
	b.WriteString("\n\n")

	switch m.status {
	case statusLoading:
		b.WriteString(m.renderLoader())
	case statusError:
		b.WriteString(m.renderError())
	case statusSuccess:
		b.WriteString(m.viewport.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderFooter(w - 6))

	return styles.DialogStyle.Width(w).Render(b.String())
}

func (m Model) renderLoader() string {
	label := m.params.TargetDatabaseType.Label()
	if !m.ai {
		return fmt.Sprintf("%s Generating SQL for %s...", m.spinner.View(), label)
	}
	lines := []string{
		fmt.Sprintf("%s AI is generating SQL for %s...", m.spinner.View(), label),
		styles.HelpStyle.Render("This should take up to 30 seconds."),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderError() string {
	lines := []string{styles.ErrorStyle.Render(icons.IconError + " " + errorMessage)}
	if m.hint != "" {
		lines = append(lines, styles.HelpStyle.Render(m.hint))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter(width int) string {
	help := "esc: close"
	if m.status == statusSuccess {
		help = fmt.Sprintf("j/k: scroll • %s: copy • %s: save • esc: close",
			strings.Join(m.copyKey.Keys(), "/"), strings.Join(m.saveKey.Keys(), "/"))
	}
	button := styles.ButtonActiveStyle.Render("Close")
	gap := max(width-lipgloss.Width(help)-lipgloss.Width(button), 1)
	return styles.HelpStyle.Render(help) + strings.Repeat(" ", gap) + button
}

package navbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ezchart/internal/ui/icons"
	"github.com/nhath/ezchart/internal/ui/styles"
)

// View renders the bar as one row spanning the width
func (m Model) View() string {
	l := m.computeLayout()

	var b strings.Builder
	b.WriteString(l.brand)
	b.WriteString(" ")
	for _, t := range l.titles {
		b.WriteString(t)
	}
	pad := l.centerX - lipgloss.Width(b.String())
	b.WriteString(styles.NavbarStyle.Render(strings.Repeat(" ", max(pad, 0))))
	b.WriteString(l.center)
	pad = l.badgeX - lipgloss.Width(b.String())
	b.WriteString(styles.NavbarStyle.Render(strings.Repeat(" ", max(pad, 0))))
	b.WriteString(l.badge)

	return styles.NavbarStyle.Width(m.width).MaxWidth(m.width).Render(b.String())
}

// DropdownView renders the open menu, with its submenu beside it, for
// compositing under the bar. The int is the column to place it at.
func (m Model) DropdownView() (string, int) {
	if !m.open {
		return "", 0
	}
	l := m.computeLayout()
	items := m.menus[m.menuIdx].items
	drop := renderItems(items, m.itemIdx, !m.subOpen)
	if m.subOpen {
		sub := renderItems(items[m.itemIdx].children, m.subIdx, true)
		sub = strings.Repeat("\n", m.itemIdx) + sub
		drop = lipgloss.JoinHorizontal(lipgloss.Top, drop, sub)
	}
	return drop, l.titleSpans[m.menuIdx].x
}

func itemWidth(items []item) int {
	w := 0
	for _, it := range items {
		line := it.label
		if it.shortcut != "" {
			line += "    " + it.shortcut
		}
		if len(it.children) > 0 {
			line += "  " + icons.IconSubmenu
		}
		w = max(w, lipgloss.Width(line))
	}
	return w
}

func renderItems(items []item, selected int, active bool) string {
	width := itemWidth(items)
	var rows []string
	for i, it := range items {
		if it.separator {
			rows = append(rows, styles.ShortcutStyle.Render(strings.Repeat("─", width+2)))
			continue
		}
		right := it.shortcut
		if len(it.children) > 0 {
			right = icons.IconSubmenu
		}
		gap := max(width-lipgloss.Width(it.label)-lipgloss.Width(right), 1)
		line := it.label + strings.Repeat(" ", gap) + right

		style := styles.DropdownItemStyle
		if i == selected && active {
			style = styles.DropdownSelStyle
		}
		rows = append(rows, style.Render(line))
	}
	return styles.DropdownStyle.Render(strings.Join(rows, "\n"))
}

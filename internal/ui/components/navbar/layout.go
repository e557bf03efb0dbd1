package navbar

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nhath/ezchart/internal/ui/icons"
	"github.com/nhath/ezchart/internal/ui/styles"
)

const brand = "ezchart"

// span is a half-open column range on the bar's row
type span struct {
	x, w int
}

func (s span) contains(x int) bool {
	return x >= s.x && x < s.x+s.w
}

// layout is the geometry of the rendered bar, shared by View and the
// mouse handler so both agree on where things are
type layout struct {
	brand      string
	titles     []string
	titleSpans []span
	center     string
	name       span
	affordance span
	badge      string
	centerX    int
	badgeX     int
}

func (m Model) nameView() string {
	if m.editing {
		return m.input.View()
	}
	return styles.NameStyle.Render(m.name)
}

func (m Model) affordanceView() string {
	if m.editing {
		return styles.SuccessStyle.Render(icons.IconCheck)
	}
	return styles.ShortcutStyle.Render(icons.IconPencil)
}

func (m Model) badgeView() string {
	if m.updatedAt.IsZero() {
		return ""
	}
	return styles.BadgeStyle.Render(icons.IconSaved + " Last saved " + humanize.Time(m.updatedAt))
}

func (m Model) computeLayout() layout {
	var l layout
	l.brand = styles.BrandStyle.Render(brand)
	x := lipgloss.Width(l.brand) + 1
	for i, mn := range m.menus {
		style := styles.MenuItemStyle
		if m.open && i == m.menuIdx {
			style = styles.MenuActiveStyle
		}
		title := style.Render(mn.title)
		w := lipgloss.Width(title)
		l.titles = append(l.titles, title)
		l.titleSpans = append(l.titleSpans, span{x: x, w: w})
		x += w
	}
	leftW := x

	prefix := icons.DatabaseIcon(m.dbType) + " " + m.dbType.Label() + "  Diagrams/"
	nameView := m.nameView()
	aff := m.affordanceView()
	l.center = styles.NameStyle.Render(prefix) + nameView + " " + aff
	centerW := lipgloss.Width(l.center)

	l.badge = m.badgeView()
	badgeW := lipgloss.Width(l.badge)

	l.centerX = leftW + max((m.width-leftW-badgeW-centerW)/2, 1)
	l.name = span{x: l.centerX + lipgloss.Width(prefix), w: lipgloss.Width(nameView)}
	l.affordance = span{x: l.name.x + l.name.w, w: 1 + lipgloss.Width(aff)}
	l.badgeX = max(m.width-badgeW, l.centerX+centerW+1)
	return l
}

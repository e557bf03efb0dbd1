// Package styles holds the theme-driven lipgloss styles shared by the UI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ezchart/internal/config"
)

var (
	textPrimary   lipgloss.Color
	textSecondary lipgloss.Color
	textFaint     lipgloss.Color

	accentColor    lipgloss.Color
	successColor   lipgloss.Color
	errorColor     lipgloss.Color
	highlightColor lipgloss.Color
	warningColor   lipgloss.Color

	bgPrimary   lipgloss.Color
	bgSecondary lipgloss.Color
	cardBg      lipgloss.Color
	borderColor lipgloss.Color

	// Styles
	NavbarStyle       lipgloss.Style
	BrandStyle        lipgloss.Style
	MenuItemStyle     lipgloss.Style
	MenuActiveStyle   lipgloss.Style
	DropdownStyle     lipgloss.Style
	DropdownItemStyle lipgloss.Style
	DropdownSelStyle  lipgloss.Style
	ShortcutStyle     lipgloss.Style
	NameStyle         lipgloss.Style
	BadgeStyle        lipgloss.Style
	StatusBarStyle    lipgloss.Style
	ModeStyle         lipgloss.Style
	MetaStyle         lipgloss.Style
	SuccessStyle      lipgloss.Style
	ErrorStyle        lipgloss.Style
	WarningStyle      lipgloss.Style
	DialogStyle       lipgloss.Style
	DialogTitleStyle  lipgloss.Style
	ButtonStyle       lipgloss.Style
	ButtonActiveStyle lipgloss.Style
	HelpStyle         lipgloss.Style
)

func init() {
	Init(config.DefaultConfig().Theme)
}

// Color getters for components that build their own styles
func TextPrimary() lipgloss.Color    { return textPrimary }
func TextSecondary() lipgloss.Color  { return textSecondary }
func TextFaint() lipgloss.Color      { return textFaint }
func AccentColor() lipgloss.Color    { return accentColor }
func SuccessColor() lipgloss.Color   { return successColor }
func ErrorColor() lipgloss.Color     { return errorColor }
func HighlightColor() lipgloss.Color { return highlightColor }
func WarningColor() lipgloss.Color   { return warningColor }
func BgPrimary() lipgloss.Color      { return bgPrimary }
func BgSecondary() lipgloss.Color    { return bgSecondary }
func CardBg() lipgloss.Color         { return cardBg }
func BorderColor() lipgloss.Color    { return borderColor }

// Init rebuilds the global styles from the configured theme
func Init(theme config.Theme) {
	textPrimary = lipgloss.Color(theme.TextPrimary)
	textSecondary = lipgloss.Color(theme.TextSecondary)
	textFaint = lipgloss.Color(theme.TextFaint)

	accentColor = lipgloss.Color(theme.Accent)
	successColor = lipgloss.Color(theme.Success)
	errorColor = lipgloss.Color(theme.Error)
	highlightColor = lipgloss.Color(theme.Highlight)
	warningColor = lipgloss.Color(theme.Warning)

	bgPrimary = lipgloss.Color(theme.BgPrimary)
	bgSecondary = lipgloss.Color(theme.BgSecondary)
	cardBg = lipgloss.Color(theme.CardBg)
	borderColor = lipgloss.Color(theme.BorderColor)

	NavbarStyle = lipgloss.NewStyle().
		Foreground(textPrimary).
		Background(bgSecondary)

	BrandStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(accentColor).
		Foreground(bgPrimary)

	MenuItemStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(textPrimary).
		Background(bgSecondary)

	MenuActiveStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Foreground(bgPrimary).
		Background(highlightColor)

	DropdownStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Background(bgSecondary)

	DropdownItemStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(textPrimary)

	DropdownSelStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(bgPrimary).
		Background(highlightColor).
		Bold(true)

	ShortcutStyle = lipgloss.NewStyle().
		Foreground(textFaint)

	NameStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(textPrimary).
		Background(bgSecondary)

	BadgeStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(textSecondary).
		Background(cardBg)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(textPrimary).
		Background(bgSecondary)

	ModeStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(successColor).
		Foreground(bgPrimary)

	MetaStyle = lipgloss.NewStyle().
		Foreground(textFaint).
		Italic(true)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(successColor)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	WarningStyle = lipgloss.NewStyle().
		Foreground(bgPrimary).
		Background(warningColor).
		Bold(true).
		Padding(0, 1)

	DialogStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(highlightColor).
		Padding(1, 2)

	DialogTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor)

	ButtonStyle = lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(textPrimary).
		Background(cardBg)

	ButtonActiveStyle = lipgloss.NewStyle().
		Padding(0, 2).
		Bold(true).
		Foreground(bgPrimary).
		Background(accentColor)

	HelpStyle = lipgloss.NewStyle().
		Foreground(textFaint)
}

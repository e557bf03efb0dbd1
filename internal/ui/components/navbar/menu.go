package navbar

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezchart/internal/config"
	"github.com/nhath/ezchart/internal/diagram"
	"github.com/nhath/ezchart/internal/imageexport"
	"github.com/nhath/ezchart/internal/ui/dialog"
)

const (
	SiteURL      = "https://github.com/nhath/ezchart"
	CommunityURL = "https://github.com/nhath/ezchart/discussions"
)

// RenameDiagramMsg asks the root to rename the current diagram
type RenameDiagramMsg struct {
	Name string
}

// ExportImageMsg asks the root to render the diagram as an image
type ExportImageMsg struct {
	Format imageexport.Format
}

// EditOp is an Edit menu operation
type EditOp int

const (
	Undo EditOp = iota
	Redo
	Clear
)

type EditMsg struct {
	Op EditOp
}

// OpenURLMsg asks the root to open a link in the browser
type OpenURLMsg struct {
	URL string
}

type item struct {
	label     string
	shortcut  string
	separator bool
	msg       tea.Msg
	children  []item
}

type menu struct {
	title string
	items []item
}

func separator() item { return item{separator: true} }

func firstKey(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

func buildMenus(keys config.KeyMap) []menu {
	var exportSQL []item
	for _, t := range diagram.DatabaseTypes {
		exportSQL = append(exportSQL, item{
			label: t.Label(),
			msg:   dialog.OpenExportSQLMsg{Params: dialog.ExportSQLParams{TargetDatabaseType: t}},
		})
	}
	var exportAs []item
	for _, f := range imageexport.Formats {
		exportAs = append(exportAs, item{label: f.Label(), msg: ExportImageMsg{Format: f}})
	}

	return []menu{
		{title: "File", items: []item{
			{label: "New", shortcut: firstKey(keys.NewDiagram), msg: dialog.OpenCreateDiagramMsg{}},
			{label: "Open", shortcut: firstKey(keys.OpenDiagram), msg: dialog.OpenOpenDiagramMsg{}},
			separator(),
			{label: "Export SQL", children: exportSQL},
			{label: "Export as", children: exportAs},
			separator(),
			{label: "Exit", shortcut: firstKey(keys.Exit), msg: tea.QuitMsg{}},
		}},
		{title: "Edit", items: []item{
			{label: "Undo", shortcut: firstKey(keys.Undo), msg: EditMsg{Op: Undo}},
			{label: "Redo", shortcut: firstKey(keys.Redo), msg: EditMsg{Op: Redo}},
			separator(),
			{label: "Clear", msg: EditMsg{Op: Clear}},
		}},
		{title: "Help", items: []item{
			{label: "Visit ezchart", msg: OpenURLMsg{URL: SiteURL}},
			{label: "Join the community", msg: OpenURLMsg{URL: CommunityURL}},
		}},
	}
}

// nextSelectable steps from i by dir, skipping separators
func nextSelectable(items []item, i, dir int) int {
	n := len(items)
	for step := 0; step < n; step++ {
		i = (i + dir + n) % n
		if !items[i].separator {
			return i
		}
	}
	return i
}

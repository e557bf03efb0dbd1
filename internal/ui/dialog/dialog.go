// Package dialog tracks which modal dialogs are open for the session.
package dialog

import "github.com/nhath/ezchart/internal/diagram"

// Kind identifies a modal dialog
type Kind int

const (
	CreateDiagram Kind = iota
	OpenDiagram
	ExportSQL
)

func (k Kind) String() string {
	switch k {
	case CreateDiagram:
		return "create-diagram"
	case OpenDiagram:
		return "open-diagram"
	case ExportSQL:
		return "export-sql"
	}
	return "unknown"
}

// ExportSQLParams is the parameter bag of the export dialog
type ExportSQLParams struct {
	TargetDatabaseType diagram.DatabaseType
}

// State holds one visibility flag per dialog. The zero value has every
// dialog closed.
type State struct {
	createDiagram bool
	openDiagram   bool
	exportSQL     bool

	exportSQLParams ExportSQLParams
}

func (s *State) OpenCreateDiagramDialog()  { s.createDiagram = true }
func (s *State) CloseCreateDiagramDialog() { s.createDiagram = false }
func (s *State) OpenOpenDiagramDialog()    { s.openDiagram = true }
func (s *State) CloseOpenDiagramDialog()   { s.openDiagram = false }

// OpenExportSQLDialog stores params and shows the dialog in one step
func (s *State) OpenExportSQLDialog(params ExportSQLParams) {
	s.exportSQLParams = params
	s.exportSQL = true
}

// CloseExportSQLDialog hides the dialog; the last params are kept
func (s *State) CloseExportSQLDialog() { s.exportSQL = false }

// ExportSQLParams returns the params of the most recent open
func (s State) ExportSQLParams() ExportSQLParams { return s.exportSQLParams }

// IsOpen reports the visibility flag of k
func (s State) IsOpen(k Kind) bool {
	switch k {
	case CreateDiagram:
		return s.createDiagram
	case OpenDiagram:
		return s.openDiagram
	case ExportSQL:
		return s.exportSQL
	}
	return false
}

// Dismiss closes k. Every dismissal path (esc, q, close button, click away)
// goes through here.
func (s *State) Dismiss(k Kind) {
	switch k {
	case CreateDiagram:
		s.CloseCreateDiagramDialog()
	case OpenDiagram:
		s.CloseOpenDiagramDialog()
	case ExportSQL:
		s.CloseExportSQLDialog()
	}
}

// Active returns the topmost open dialog. Export sits above open, which
// sits above create.
func (s State) Active() (Kind, bool) {
	switch {
	case s.exportSQL:
		return ExportSQL, true
	case s.openDiagram:
		return OpenDiagram, true
	case s.createDiagram:
		return CreateDiagram, true
	}
	return 0, false
}

// AnyOpen reports whether a dialog is presented
func (s State) AnyOpen() bool {
	_, ok := s.Active()
	return ok
}

// Messages that request coordinator transitions
type (
	OpenCreateDiagramMsg struct{}
	OpenOpenDiagramMsg   struct{}
	OpenExportSQLMsg     struct{ Params ExportSQLParams }
	DismissMsg           struct{ Kind Kind }
)

package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhath/ezchart/internal/diagram"
)

func TestZeroValueClosed(t *testing.T) {
	var s State
	for _, k := range []Kind{CreateDiagram, OpenDiagram, ExportSQL} {
		assert.False(t, s.IsOpen(k), k.String())
	}
	_, ok := s.Active()
	assert.False(t, ok)
	assert.False(t, s.AnyOpen())
}

func TestOpenClose(t *testing.T) {
	var s State
	s.OpenCreateDiagramDialog()
	assert.True(t, s.IsOpen(CreateDiagram))
	s.CloseCreateDiagramDialog()
	assert.False(t, s.IsOpen(CreateDiagram))

	s.OpenOpenDiagramDialog()
	assert.True(t, s.IsOpen(OpenDiagram))
	s.CloseOpenDiagramDialog()
	assert.False(t, s.IsOpen(OpenDiagram))
}

func TestExportParamsSetWithVisibility(t *testing.T) {
	var s State
	s.OpenExportSQLDialog(ExportSQLParams{TargetDatabaseType: diagram.MySQL})
	assert.True(t, s.IsOpen(ExportSQL))
	assert.Equal(t, diagram.MySQL, s.ExportSQLParams().TargetDatabaseType)

	s.OpenExportSQLDialog(ExportSQLParams{TargetDatabaseType: diagram.SQLite})
	assert.Equal(t, diagram.SQLite, s.ExportSQLParams().TargetDatabaseType)

	s.CloseExportSQLDialog()
	assert.False(t, s.IsOpen(ExportSQL))
	assert.Equal(t, diagram.SQLite, s.ExportSQLParams().TargetDatabaseType, "params survive close")
}

func TestActivePrecedence(t *testing.T) {
	var s State
	s.OpenCreateDiagramDialog()
	s.OpenOpenDiagramDialog()
	s.OpenExportSQLDialog(ExportSQLParams{TargetDatabaseType: diagram.Generic})

	k, ok := s.Active()
	assert.True(t, ok)
	assert.Equal(t, ExportSQL, k)

	s.Dismiss(k)
	k, _ = s.Active()
	assert.Equal(t, OpenDiagram, k)

	s.Dismiss(k)
	k, _ = s.Active()
	assert.Equal(t, CreateDiagram, k)

	s.Dismiss(k)
	assert.False(t, s.AnyOpen())
}

func TestDismissIsIdempotent(t *testing.T) {
	var s State
	s.Dismiss(ExportSQL)
	s.Dismiss(Kind(42))
	assert.False(t, s.AnyOpen())
	assert.Equal(t, "unknown", Kind(42).String())
}

package ui

import (
	"time"

	"github.com/nhath/ezchart/internal/diagram"
)

// diagramLoadedMsg makes d the current diagram. A nil d with no error
// means the store is empty.
type diagramLoadedMsg struct {
	d      *diagram.Diagram
	err    error
	notice string
}

type diagramSavedMsg struct {
	id        string
	updatedAt time.Time
	err       error
}

type imageExportedMsg struct {
	path string
	err  error
}

type urlOpenedMsg struct {
	url string
	err error
}

type clearStatusMsg struct {
	seq int
}

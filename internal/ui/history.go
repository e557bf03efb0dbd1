package ui

import "github.com/nhath/ezchart/internal/diagram"

const maxHistory = 50

// editHistory keeps diagram snapshots for undo and redo
type editHistory struct {
	undo []*diagram.Diagram
	redo []*diagram.Diagram
}

// record saves the state before an edit and drops the redo branch
func (h *editHistory) record(before *diagram.Diagram) {
	h.undo = append(h.undo, before.Clone())
	if len(h.undo) > maxHistory {
		h.undo = h.undo[len(h.undo)-maxHistory:]
	}
	h.redo = nil
}

func (h *editHistory) Undo(current *diagram.Diagram) (*diagram.Diagram, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current.Clone())
	return prev.Clone(), true
}

func (h *editHistory) Redo(current *diagram.Diagram) (*diagram.Diagram, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current.Clone())
	return next.Clone(), true
}

func (h *editHistory) reset() {
	h.undo = nil
	h.redo = nil
}

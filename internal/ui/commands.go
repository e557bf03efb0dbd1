package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezchart/internal/db"
	"github.com/nhath/ezchart/internal/diagram"
	"github.com/nhath/ezchart/internal/imageexport"
	"github.com/nhath/ezchart/internal/store"
)

const (
	importTimeout = 2 * time.Minute
	statusTTL     = 4 * time.Second
)

func (m Model) loadLatestCmd() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		d, err := s.Latest()
		if errors.Is(err, store.ErrNotFound) {
			return diagramLoadedMsg{}
		}
		return diagramLoadedMsg{d: d, err: err}
	}
}

func (m Model) loadCmd(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		d, err := s.Get(id)
		if err != nil {
			return diagramLoadedMsg{err: fmt.Errorf("open diagram: %w", err)}
		}
		return diagramLoadedMsg{d: d, notice: "Opened " + d.Name}
	}
}

func (m Model) createCmd(name string, dbType diagram.DatabaseType) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		d, err := s.Create(name, dbType)
		if err != nil {
			return diagramLoadedMsg{err: fmt.Errorf("create diagram: %w", err)}
		}
		return diagramLoadedMsg{d: d, notice: "Created " + d.Name}
	}
}

// importCmd reads the profile's schema into a new diagram and stores it
func (m Model) importCmd(profile, name string, dbType diagram.DatabaseType) tea.Cmd {
	s, cfg, importer, log := m.store, m.cfg, m.importer, m.log
	return func() tea.Msg {
		p, err := cfg.GetProfile(profile)
		if err != nil {
			return diagramLoadedMsg{err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		log.WithField("profile", profile).Info("importing schema")
		d, err := importer(ctx, p, name)
		if err != nil {
			log.WithError(err).WithField("profile", profile).Warn("import failed")
			if db.IsConnectionError(err) {
				return diagramLoadedMsg{err: fmt.Errorf("import %s: check the profile's host and credentials: %w", profile, err)}
			}
			return diagramLoadedMsg{err: fmt.Errorf("import %s: %w", profile, err)}
		}
		d.DatabaseType = dbType
		if err := s.Save(d); err != nil {
			return diagramLoadedMsg{err: err}
		}
		return diagramLoadedMsg{d: d, notice: fmt.Sprintf("Imported %d tables from %s", len(d.Tables), profile)}
	}
}

// saveCmd persists a snapshot of d
func (m Model) saveCmd(d *diagram.Diagram) tea.Cmd {
	s := m.store
	snapshot := d.Clone()
	return func() tea.Msg {
		err := s.Save(snapshot)
		return diagramSavedMsg{id: snapshot.ID, updatedAt: snapshot.UpdatedAt, err: err}
	}
}

// renameCmd persists only the new name; the store stamps the update time
func (m Model) renameCmd(id, name string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		updatedAt, err := s.UpdateName(id, name)
		return diagramSavedMsg{id: id, updatedAt: updatedAt, err: err}
	}
}

func (m Model) exportImageCmd(f imageexport.Format) tea.Cmd {
	dir := m.cfg.ResolveExportDir()
	snapshot := m.diagram.Clone()
	palette := paletteFromTheme(m.cfg.Theme)
	return func() tea.Msg {
		path, err := imageexport.ExportFile(dir, snapshot, f, palette)
		return imageExportedMsg{path: path, err: err}
	}
}

func (m Model) openURLCmd(url string) tea.Cmd {
	open := m.openURL
	return func() tea.Msg {
		return urlOpenedMsg{url: url, err: open(url)}
	}
}

// setStatus shows msg in the status bar until it expires or is replaced
func (m Model) setStatus(msg string) (Model, tea.Cmd) {
	m.statusSeq++
	m.statusMsg = msg
	m.errorMsg = ""
	seq := m.statusSeq
	return m, tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m Model) setError(err error) Model {
	m.statusSeq++
	m.statusMsg = ""
	m.errorMsg = err.Error()
	m.log.WithError(err).Warn("ui error")
	return m
}

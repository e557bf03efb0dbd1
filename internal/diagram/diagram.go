// Package diagram holds the in-memory schema model that ezchart edits and exports.
package diagram

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Field is a single column of a table
type Field struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	PrimaryKey bool   `yaml:"primary_key,omitempty"`
	Unique     bool   `yaml:"unique,omitempty"`
	Nullable   bool   `yaml:"nullable,omitempty"`
	Default    string `yaml:"default,omitempty"`
}

// Index is a named index over one or more fields
type Index struct {
	Name       string   `yaml:"name"`
	Unique     bool     `yaml:"unique,omitempty"`
	FieldNames []string `yaml:"fields"`
}

// Table is a table node in the diagram
type Table struct {
	ID      string  `yaml:"id"`
	Name    string  `yaml:"name"`
	Schema  string  `yaml:"schema,omitempty"`
	Fields  []Field `yaml:"fields"`
	Indexes []Index `yaml:"indexes,omitempty"`
}

// Relationship is a foreign key edge from SourceTable.SourceField to TargetTable.TargetField
type Relationship struct {
	Name        string `yaml:"name"`
	SourceTable string `yaml:"source_table"`
	SourceField string `yaml:"source_field"`
	TargetTable string `yaml:"target_table"`
	TargetField string `yaml:"target_field"`
}

// Diagram is a named schema model bound to a database type
type Diagram struct {
	ID            string         `yaml:"id"`
	Name          string         `yaml:"name"`
	DatabaseType  DatabaseType   `yaml:"database_type"`
	Tables        []Table        `yaml:"tables"`
	Relationships []Relationship `yaml:"relationships,omitempty"`
	CreatedAt     time.Time      `yaml:"created_at"`
	UpdatedAt     time.Time      `yaml:"updated_at"`
}

// New creates an empty diagram with fresh identifiers and timestamps
func New(name string, dbType DatabaseType) *Diagram {
	now := time.Now()
	return &Diagram{
		ID:           uuid.NewString(),
		Name:         name,
		DatabaseType: dbType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewTable creates a table with a generated ID
func NewTable(name, schema string, fields ...Field) Table {
	for i := range fields {
		if fields[i].ID == "" {
			fields[i].ID = uuid.NewString()
		}
	}
	return Table{
		ID:     uuid.NewString(),
		Name:   name,
		Schema: schema,
		Fields: fields,
	}
}

// Table returns the table with the given name, or nil
func (d *Diagram) Table(name string) *Table {
	for i := range d.Tables {
		if d.Tables[i].Name == name {
			return &d.Tables[i]
		}
	}
	return nil
}

// Clone returns a deep copy, used for undo snapshots
func (d *Diagram) Clone() *Diagram {
	if d == nil {
		return nil
	}
	c := *d
	c.Tables = make([]Table, len(d.Tables))
	for i, t := range d.Tables {
		nt := t
		nt.Fields = append([]Field(nil), t.Fields...)
		nt.Indexes = make([]Index, len(t.Indexes))
		for j, idx := range t.Indexes {
			nt.Indexes[j] = idx
			nt.Indexes[j].FieldNames = append([]string(nil), idx.FieldNames...)
		}
		c.Tables[i] = nt
	}
	c.Relationships = append([]Relationship(nil), d.Relationships...)
	return &c
}

// Touch bumps UpdatedAt
func (d *Diagram) Touch() {
	d.UpdatedAt = time.Now()
}

// Validate checks that relationships reference existing tables and fields
func (d *Diagram) Validate() error {
	seen := make(map[string]bool, len(d.Tables))
	for _, t := range d.Tables {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("table %s has no name", t.ID)
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate table: %s", t.Name)
		}
		seen[t.Name] = true
	}
	for _, r := range d.Relationships {
		src := d.Table(r.SourceTable)
		if src == nil {
			return fmt.Errorf("relationship %s: unknown table %s", r.Name, r.SourceTable)
		}
		dst := d.Table(r.TargetTable)
		if dst == nil {
			return fmt.Errorf("relationship %s: unknown table %s", r.Name, r.TargetTable)
		}
		if src.Field(r.SourceField) == nil {
			return fmt.Errorf("relationship %s: unknown field %s.%s", r.Name, r.SourceTable, r.SourceField)
		}
		if dst.Field(r.TargetField) == nil {
			return fmt.Errorf("relationship %s: unknown field %s.%s", r.Name, r.TargetTable, r.TargetField)
		}
	}
	return nil
}

// Field returns the field with the given name, or nil
func (t *Table) Field(name string) *Field {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}

// PrimaryKeys returns the names of the primary key fields in declaration order
func (t *Table) PrimaryKeys() []string {
	var keys []string
	for _, f := range t.Fields {
		if f.PrimaryKey {
			keys = append(keys, f.Name)
		}
	}
	return keys
}

// QualifiedName returns schema.name when a schema is set
func (t *Table) QualifiedName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// FileName turns a diagram name into a safe file name with ext
func FileName(name, ext string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ' || r == '.':
			return '_'
		}
		return -1
	}, strings.TrimSpace(name))
	if name == "" {
		name = "diagram"
	}
	return name + "." + ext
}

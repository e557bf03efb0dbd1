package db

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/nhath/ezchart/internal/config"
	"github.com/nhath/ezchart/internal/diagram"
)

// maxConcurrentTables bounds the per-table metadata queries in flight
const maxConcurrentTables = 8

// ConnectProfile opens a driver for a configured connection profile
func ConnectProfile(ctx context.Context, p *config.Profile, log logrus.FieldLogger) (Driver, error) {
	drv, err := NewDriver(DriverType(p.Type))
	if err != nil {
		return nil, err
	}
	params := ConnectParams{
		Host:     p.Host,
		Port:     p.Port,
		User:     p.User,
		Password: p.Password,
		Database: p.Database,
		Logger:   log,
	}
	if p.SSHHost != "" {
		params.SSHConfig = &SSHConfig{
			Host:     p.SSHHost,
			Port:     p.SSHPort,
			User:     p.SSHUser,
			Password: p.SSHPassword,
			KeyPath:  p.SSHKeyPath,
		}
	}
	if err := drv.Connect(ctx, params); err != nil {
		return nil, err
	}
	return drv, nil
}

// DatabaseType maps a driver to the diagram dialect it produces
func DatabaseType(t DriverType) diagram.DatabaseType {
	switch t {
	case Postgres:
		return diagram.PostgreSQL
	case MySQL:
		return diagram.MySQL
	case MariaDB:
		return diagram.MariaDB
	case SQLite:
		return diagram.SQLite
	default:
		return diagram.Generic
	}
}

type tableMeta struct {
	columns []Column
	fks     []ForeignKey
}

// LoadDiagram reads every table of the connected database into a new diagram
func LoadDiagram(ctx context.Context, drv Driver, name string) (*diagram.Diagram, error) {
	tables, err := drv.GetTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	meta := make(map[string]tableMeta, len(tables))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentTables)
	for _, t := range tables {
		g.Go(func() error {
			cols, err := drv.GetColumns(gctx, t)
			if err != nil {
				return fmt.Errorf("columns of %s: %w", t, err)
			}
			fks, err := drv.GetForeignKeys(gctx, t)
			if err != nil {
				return fmt.Errorf("foreign keys of %s: %w", t, err)
			}
			mu.Lock()
			meta[t] = tableMeta{columns: cols, fks: fks}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := diagram.New(name, DatabaseType(drv.Type()))
	for _, t := range tables {
		d.Tables = append(d.Tables, buildTable(t, meta[t].columns))
	}
	for _, t := range tables {
		src := splitTableName(t)
		for _, fk := range meta[t].fks {
			target := d.Table(splitTableName(fk.RefTable).name)
			if target == nil {
				continue
			}
			refColumn := fk.RefColumn
			if refColumn == "" {
				// sqlite omits the column when the reference targets the primary key
				if pks := target.PrimaryKeys(); len(pks) == 1 {
					refColumn = pks[0]
				}
			}
			d.Relationships = append(d.Relationships, diagram.Relationship{
				Name:        fk.Name,
				SourceTable: src.name,
				SourceField: fk.Column,
				TargetTable: target.Name,
				TargetField: refColumn,
			})
		}
	}
	return d, nil
}

type tableName struct {
	schema, name string
}

// splitTableName separates the schema prefix postgres adds
func splitTableName(s string) tableName {
	if schema, name, ok := strings.Cut(s, "."); ok {
		return tableName{schema: schema, name: name}
	}
	return tableName{name: s}
}

func buildTable(qualified string, cols []Column) diagram.Table {
	tn := splitTableName(qualified)
	fields := make([]diagram.Field, 0, len(cols))
	for _, c := range cols {
		fields = append(fields, diagram.Field{
			Name:       c.Name,
			Type:       c.Type,
			PrimaryKey: c.Key == "PRI",
			Unique:     c.Key == "UNI",
			Nullable:   c.Nullable,
			Default:    c.Default,
		})
	}
	return diagram.NewTable(tn.name, tn.schema, fields...)
}

// ImportProfile connects with p, reads its schema into a diagram named name
// and closes the connection
func ImportProfile(ctx context.Context, p *config.Profile, name string, log logrus.FieldLogger) (*diagram.Diagram, error) {
	drv, err := ConnectProfile(ctx, p, log)
	if err != nil {
		return nil, err
	}
	defer drv.Close()
	return LoadDiagram(ctx, drv, name)
}

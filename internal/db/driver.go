// internal/db/driver.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// DriverType represents supported database types
type DriverType string

const (
	Postgres DriverType = "postgres"
	MySQL    DriverType = "mysql"
	MariaDB  DriverType = "mariadb"
	SQLite   DriverType = "sqlite"
)

// Column represents table column metadata
type Column struct {
	Name     string
	Type     string
	Nullable bool
	Default  string
	Key      string // PRI, UNI, MUL
}

// ForeignKey is a single-column reference from a table to another table
type ForeignKey struct {
	Name      string
	Column    string
	RefTable  string
	RefColumn string
}

// ConnectParams holds database connection details
type ConnectParams struct {
	Host      string
	Port      int
	User      string
	Password  string
	Database  string
	SSHConfig *SSHConfig // Optional SSH tunnel config
	Logger    logrus.FieldLogger
}

func (p ConnectParams) logger() logrus.FieldLogger {
	if p.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return p.Logger
}

// Driver reads schema metadata from a live database
type Driver interface {
	Connect(ctx context.Context, params ConnectParams) error
	Close() error
	Ping(ctx context.Context) error
	Type() DriverType
	GetTables(ctx context.Context) ([]string, error)
	GetColumns(ctx context.Context, tableName string) ([]Column, error)
	GetForeignKeys(ctx context.Context, tableName string) ([]ForeignKey, error)
}

// NewDriver creates a new driver instance by type
func NewDriver(driverType DriverType) (Driver, error) {
	switch driverType {
	case Postgres:
		return &PostgresDriver{}, nil
	case MySQL:
		return &MySQLDriver{}, nil
	case MariaDB:
		return &MySQLDriver{mariadb: true}, nil
	case SQLite:
		return &SQLiteDriver{}, nil
	default:
		return nil, fmt.Errorf("unknown driver type: %s", driverType)
	}
}

// queryStrings runs a single-column query and collects the values
func queryStrings(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, WrapQueryError(err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, WrapQueryError(err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapQueryError(err)
	}
	return out, nil
}

// queryColumns scans (name, type, nullable, default, key) rows
func queryColumns(ctx context.Context, db *sql.DB, query string, args ...any) ([]Column, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, WrapQueryError(err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var col Column
		if err := rows.Scan(&col.Name, &col.Type, &col.Nullable, &col.Default, &col.Key); err != nil {
			return nil, WrapQueryError(err)
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapQueryError(err)
	}
	return columns, nil
}

// queryForeignKeys scans (name, column, ref table, ref column) rows
func queryForeignKeys(ctx context.Context, db *sql.DB, query string, args ...any) ([]ForeignKey, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, WrapQueryError(err)
	}
	defer rows.Close()

	var fks []ForeignKey
	for rows.Next() {
		var fk ForeignKey
		if err := rows.Scan(&fk.Name, &fk.Column, &fk.RefTable, &fk.RefColumn); err != nil {
			return nil, WrapQueryError(err)
		}
		fks = append(fks, fk)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapQueryError(err)
	}
	return fks, nil
}

func notConnected() error {
	return WrapConnectionError(fmt.Errorf("not connected"))
}

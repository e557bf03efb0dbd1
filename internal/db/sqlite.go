// internal/db/sqlite.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDriver implements Driver for SQLite
type SQLiteDriver struct {
	db *sql.DB
}

// Connect opens the database file named by params.Database
func (d *SQLiteDriver) Connect(ctx context.Context, params ConnectParams) error {
	dsn := strings.TrimPrefix(params.Database, "sqlite://")

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return WrapConnectionError(err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 10000"); err != nil {
		db.Close()
		return WrapConnectionError(fmt.Errorf("pragma busy_timeout: %w", err))
	}

	d.db = db
	return nil
}

// Close closes the database connection
func (d *SQLiteDriver) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Ping checks if database is reachable
func (d *SQLiteDriver) Ping(ctx context.Context) error {
	if d.db == nil {
		return notConnected()
	}
	return d.db.PingContext(ctx)
}

// Type returns the driver type
func (d *SQLiteDriver) Type() DriverType {
	return SQLite
}

// GetTables returns user tables, skipping sqlite internals
func (d *SQLiteDriver) GetTables(ctx context.Context) ([]string, error) {
	if d.db == nil {
		return nil, notConnected()
	}
	return queryStrings(ctx, d.db, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
}

// GetColumns returns detailed column metadata for a table
func (d *SQLiteDriver) GetColumns(ctx context.Context, tableName string) ([]Column, error) {
	if d.db == nil {
		return nil, notConnected()
	}
	rows, err := d.db.QueryContext(ctx, "SELECT name, type, \"notnull\", dflt_value, pk FROM pragma_table_info(?)", tableName)
	if err != nil {
		return nil, WrapQueryError(err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var (
			name, dataType string
			notNull, pk    int
			dflt           sql.NullString
		)
		if err := rows.Scan(&name, &dataType, &notNull, &dflt, &pk); err != nil {
			return nil, WrapQueryError(err)
		}
		key := ""
		if pk > 0 {
			key = "PRI"
		}
		columns = append(columns, Column{
			Name:     name,
			Type:     dataType,
			Nullable: notNull == 0 && pk == 0,
			Default:  dflt.String,
			Key:      key,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, WrapQueryError(err)
	}
	return columns, nil
}

// GetForeignKeys returns the outgoing references of a table
func (d *SQLiteDriver) GetForeignKeys(ctx context.Context, tableName string) ([]ForeignKey, error) {
	if d.db == nil {
		return nil, notConnected()
	}
	rows, err := d.db.QueryContext(ctx, `SELECT id, "from", "table", "to" FROM pragma_foreign_key_list(?) ORDER BY id, seq`, tableName)
	if err != nil {
		return nil, WrapQueryError(err)
	}
	defer rows.Close()

	var fks []ForeignKey
	for rows.Next() {
		var id int
		var fk ForeignKey
		var to sql.NullString
		if err := rows.Scan(&id, &fk.Column, &fk.RefTable, &to); err != nil {
			return nil, WrapQueryError(err)
		}
		fk.Name = fmt.Sprintf("fk_%s_%d", tableName, id)
		fk.RefColumn = to.String
		fks = append(fks, fk)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapQueryError(err)
	}
	return fks, nil
}

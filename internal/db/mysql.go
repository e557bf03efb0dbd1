// internal/db/mysql.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
)

// MySQLDriver implements Driver for MySQL and MariaDB
type MySQLDriver struct {
	db      *sql.DB
	tunnel  *SSHTunnel
	mariadb bool
}

// Connect establishes connection to MySQL
func (d *MySQLDriver) Connect(ctx context.Context, params ConnectParams) error {
	cfg := mysql.NewConfig()
	cfg.User = params.User
	cfg.Passwd = params.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", params.Host, params.Port)
	cfg.DBName = params.Database
	cfg.ParseTime = true

	// Setup SSH tunnel if configured
	if params.SSHConfig != nil && params.SSHConfig.Host != "" {
		tunnel, err := NewSSHTunnel(params.SSHConfig, params.logger())
		if err != nil {
			return WrapConnectionError(fmt.Errorf("failed to create SSH tunnel: %w", err))
		}
		d.tunnel = tunnel

		// Dial names are global to the driver, so each tunnel gets its own
		cfg.Net = fmt.Sprintf("mysql+ssh+%d", time.Now().UnixNano())
		mysql.RegisterDialContext(cfg.Net, func(ctx context.Context, addr string) (net.Conn, error) {
			return tunnel.DialContext(ctx, "tcp", addr)
		})
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		d.Close()
		return WrapConnectionError(err)
	}
	db := sql.OpenDB(connector)

	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	// sql.OpenDB is lazy
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		d.Close()
		return WrapConnectionError(err)
	}

	d.db = db
	return nil
}

// Close closes the database connection and SSH tunnel
func (d *MySQLDriver) Close() error {
	var dbErr error
	if d.db != nil {
		dbErr = d.db.Close()
	}
	if d.tunnel != nil {
		if err := d.tunnel.Close(); err != nil {
			if dbErr != nil {
				return fmt.Errorf("db close err: %v, tunnel close err: %w", dbErr, err)
			}
			return err
		}
	}
	return dbErr
}

// Ping checks if database is reachable
func (d *MySQLDriver) Ping(ctx context.Context) error {
	if d.db == nil {
		return notConnected()
	}
	return d.db.PingContext(ctx)
}

// Type returns the driver type
func (d *MySQLDriver) Type() DriverType {
	if d.mariadb {
		return MariaDB
	}
	return MySQL
}

// GetTables returns the base tables of the current database
func (d *MySQLDriver) GetTables(ctx context.Context) ([]string, error) {
	if d.db == nil {
		return nil, notConnected()
	}
	return queryStrings(ctx, d.db, `
		SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = DATABASE() AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME`)
}

// GetColumns returns detailed column metadata for a table
func (d *MySQLDriver) GetColumns(ctx context.Context, tableName string) ([]Column, error) {
	if d.db == nil {
		return nil, notConnected()
	}
	return queryColumns(ctx, d.db, `
		SELECT
			COLUMN_NAME,
			COLUMN_TYPE,
			IS_NULLABLE = 'YES',
			IFNULL(COLUMN_DEFAULT, ''),
			COLUMN_KEY
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_NAME = ? AND TABLE_SCHEMA = DATABASE()
		ORDER BY ORDINAL_POSITION`, tableName)
}

// GetForeignKeys returns the outgoing references of a table
func (d *MySQLDriver) GetForeignKeys(ctx context.Context, tableName string) ([]ForeignKey, error) {
	if d.db == nil {
		return nil, notConnected()
	}
	return queryForeignKeys(ctx, d.db, `
		SELECT CONSTRAINT_NAME, COLUMN_NAME, REFERENCED_TABLE_NAME, REFERENCED_COLUMN_NAME
		FROM INFORMATION_SCHEMA.KEY_COLUMN_USAGE
		WHERE TABLE_NAME = ? AND TABLE_SCHEMA = DATABASE()
		AND REFERENCED_TABLE_NAME IS NOT NULL
		ORDER BY CONSTRAINT_NAME, ORDINAL_POSITION`, tableName)
}

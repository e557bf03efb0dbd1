// internal/db/postgres.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// PostgresDriver implements Driver for PostgreSQL
type PostgresDriver struct {
	db     *sql.DB
	tunnel *SSHTunnel
}

// Connect establishes connection to PostgreSQL
func (d *PostgresDriver) Connect(ctx context.Context, params ConnectParams) error {
	// Build connection string safely with url.URL
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(params.User, params.Password),
		Host:   fmt.Sprintf("%s:%d", params.Host, params.Port),
		Path:   "/" + params.Database,
	}

	connConfig, err := pgx.ParseConfig(u.String())
	if err != nil {
		return WrapConnectionError(err)
	}

	// Setup SSH tunnel if configured
	if params.SSHConfig != nil && params.SSHConfig.Host != "" {
		tunnel, err := NewSSHTunnel(params.SSHConfig, params.logger())
		if err != nil {
			return WrapConnectionError(fmt.Errorf("failed to create SSH tunnel: %w", err))
		}
		d.tunnel = tunnel

		// The SSH server resolves the hostname, not the local machine
		connConfig.LookupFunc = func(ctx context.Context, host string) ([]string, error) {
			return []string{host}, nil
		}
		connConfig.DialFunc = func(ctx context.Context, network, addr string) (net.Conn, error) {
			remoteAddr := fmt.Sprintf("%s:%d", params.Host, params.Port)
			return tunnel.DialContext(ctx, network, remoteAddr)
		}
	}

	db := stdlib.OpenDB(*connConfig)
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		if d.tunnel != nil {
			d.tunnel.Close()
		}
		return WrapConnectionError(err)
	}

	d.db = db
	return nil
}

// Close closes the database connection and SSH tunnel
func (d *PostgresDriver) Close() error {
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
func (d *PostgresDriver) Ping(ctx context.Context) error {
	if d.db == nil {
		return notConnected()
	}
	return d.db.PingContext(ctx)
}

// Type returns the driver type
func (d *PostgresDriver) Type() DriverType {
	return Postgres
}

// GetTables returns schema-qualified base tables in all non-system schemas
func (d *PostgresDriver) GetTables(ctx context.Context) ([]string, error) {
	if d.db == nil {
		return nil, notConnected()
	}
	return queryStrings(ctx, d.db, `
		SELECT n.nspname || '.' || c.relname
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname NOT IN ('information_schema', 'pg_catalog', 'pg_toast')
		AND c.relkind IN ('r', 'p')
		ORDER BY 1`)
}

// GetColumns returns detailed column metadata for a schema-qualified table
func (d *PostgresDriver) GetColumns(ctx context.Context, tableName string) ([]Column, error) {
	if d.db == nil {
		return nil, notConnected()
	}
	return queryColumns(ctx, d.db, `
		SELECT
			a.attname AS column_name,
			format_type(a.atttypid, a.atttypmod) AS data_type,
			NOT a.attnotnull AS nullable,
			COALESCE(pg_get_expr(d.adbin, d.adrelid), '') AS default_value,
			COALESCE(
				(SELECT 'PRI' FROM pg_index i WHERE i.indrelid = a.attrelid AND a.attnum = ANY(i.indkey::int2[]) AND i.indisprimary LIMIT 1),
				(SELECT 'UNI' FROM pg_index i WHERE i.indrelid = a.attrelid AND a.attnum = ANY(i.indkey::int2[]) AND i.indisunique AND NOT i.indisprimary LIMIT 1),
				''
			) AS key_type
		FROM pg_attribute a
		LEFT JOIN pg_attrdef d ON a.attrelid = d.adrelid AND a.attnum = d.adnum
		JOIN pg_class cl ON a.attrelid = cl.oid
		JOIN pg_namespace n ON cl.relnamespace = n.oid
		WHERE n.nspname || '.' || cl.relname = $1 AND a.attnum > 0 AND NOT a.attisdropped
		ORDER BY a.attnum`, tableName)
}

// GetForeignKeys returns the outgoing single-column references of a table
func (d *PostgresDriver) GetForeignKeys(ctx context.Context, tableName string) ([]ForeignKey, error) {
	if d.db == nil {
		return nil, notConnected()
	}
	return queryForeignKeys(ctx, d.db, `
		SELECT
			c.conname,
			a.attname,
			rn.nspname || '.' || rc.relname,
			ra.attname
		FROM pg_constraint c
		JOIN pg_class cl ON cl.oid = c.conrelid
		JOIN pg_namespace n ON n.oid = cl.relnamespace
		JOIN pg_class rc ON rc.oid = c.confrelid
		JOIN pg_namespace rn ON rn.oid = rc.relnamespace
		JOIN pg_attribute a ON a.attrelid = c.conrelid AND a.attnum = c.conkey[1]
		JOIN pg_attribute ra ON ra.attrelid = c.confrelid AND ra.attnum = c.confkey[1]
		WHERE c.contype = 'f' AND n.nspname || '.' || cl.relname = $1
		ORDER BY c.conname`, tableName)
}

package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockMySQL(t *testing.T) (*MySQLDriver, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &MySQLDriver{db: conn}, mock
}

func TestMySQLGetColumns(t *testing.T) {
	drv, mock := newMockMySQL(t)

	rows := sqlmock.NewRows([]string{"COLUMN_NAME", "COLUMN_TYPE", "nullable", "default", "COLUMN_KEY"}).
		AddRow("id", "bigint", false, "", "PRI").
		AddRow("email", "varchar(255)", true, "", "UNI")
	mock.ExpectQuery("FROM INFORMATION_SCHEMA.COLUMNS").WithArgs("users").WillReturnRows(rows)

	cols, err := drv.GetColumns(context.Background(), "users")
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, Column{Name: "id", Type: "bigint", Key: "PRI"}, cols[0])
	assert.True(t, cols[1].Nullable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLGetForeignKeys(t *testing.T) {
	drv, mock := newMockMySQL(t)

	rows := sqlmock.NewRows([]string{"CONSTRAINT_NAME", "COLUMN_NAME", "REFERENCED_TABLE_NAME", "REFERENCED_COLUMN_NAME"}).
		AddRow("fk_orders_user", "user_id", "users", "id")
	mock.ExpectQuery("KEY_COLUMN_USAGE").WithArgs("orders").WillReturnRows(rows)

	fks, err := drv.GetForeignKeys(context.Background(), "orders")
	require.NoError(t, err)
	assert.Equal(t, []ForeignKey{{Name: "fk_orders_user", Column: "user_id", RefTable: "users", RefColumn: "id"}}, fks)
}

func TestMySQLQueryErrorIsWrapped(t *testing.T) {
	drv, mock := newMockMySQL(t)
	boom := errors.New("boom")
	mock.ExpectQuery("INFORMATION_SCHEMA.TABLES").WillReturnError(boom)

	_, err := drv.GetTables(context.Background())
	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.ErrorIs(t, err, boom)
}

func TestNotConnected(t *testing.T) {
	drv := &MySQLDriver{mariadb: true}
	assert.Equal(t, MariaDB, drv.Type())

	_, err := drv.GetTables(context.Background())
	var ce *ConnectionError
	assert.ErrorAs(t, err, &ce)
}

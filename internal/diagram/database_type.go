package diagram

import "fmt"

// DatabaseType selects the SQL dialect a diagram targets
type DatabaseType string

const (
	Generic    DatabaseType = "generic"
	PostgreSQL DatabaseType = "postgresql"
	MySQL      DatabaseType = "mysql"
	SQLServer  DatabaseType = "sql_server"
	MariaDB    DatabaseType = "mariadb"
	SQLite     DatabaseType = "sqlite"
)

// DatabaseTypes lists every dialect in menu order
var DatabaseTypes = []DatabaseType{Generic, PostgreSQL, MySQL, SQLServer, MariaDB, SQLite}

var databaseTypeToLabel = map[DatabaseType]string{
	Generic:    "Generic",
	PostgreSQL: "PostgreSQL",
	MySQL:      "MySQL",
	SQLServer:  "SQL Server",
	MariaDB:    "MariaDB",
	SQLite:     "SQLite",
}

// Label returns the display name of the dialect
func (t DatabaseType) Label() string {
	if l, ok := databaseTypeToLabel[t]; ok {
		return l
	}
	return string(t)
}

// Valid reports whether t is a known dialect
func (t DatabaseType) Valid() bool {
	_, ok := databaseTypeToLabel[t]
	return ok
}

// ParseDatabaseType accepts dialect identifiers and a few common aliases
func ParseDatabaseType(s string) (DatabaseType, error) {
	switch s {
	case "", "generic", "sql":
		return Generic, nil
	case "postgresql", "postgres", "pg":
		return PostgreSQL, nil
	case "mysql":
		return MySQL, nil
	case "sql_server", "sqlserver", "mssql":
		return SQLServer, nil
	case "mariadb":
		return MariaDB, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return "", fmt.Errorf("unknown database type: %s", s)
}

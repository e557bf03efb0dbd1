package icons

import "github.com/nhath/ezchart/internal/diagram"

const (
	// Database Icons (Nerd Font)
	IconPostgres  = ""
	IconMySQL     = ""
	IconMariaDB   = ""
	IconSQLServer = ""
	IconSQLite    = ""
	IconGeneric   = ""

	// Utility Icons
	IconPencil    = "✎"
	IconCheck     = "✓"
	IconError     = "⚠"
	IconSelect    = "▸"
	IconSubmenu   = "›"
	IconBullet    = "•"
	IconSeparator = "  •  "
	IconSaved     = ""
)

// DatabaseIcon returns the glyph shown next to a dialect's label
func DatabaseIcon(t diagram.DatabaseType) string {
	switch t {
	case diagram.PostgreSQL:
		return IconPostgres
	case diagram.MySQL:
		return IconMySQL
	case diagram.MariaDB:
		return IconMariaDB
	case diagram.SQLServer:
		return IconSQLServer
	case diagram.SQLite:
		return IconSQLite
	default:
		return IconGeneric
	}
}

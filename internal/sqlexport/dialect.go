package sqlexport

import (
	"regexp"
	"strings"

	"github.com/lib/pq"

	"github.com/nhath/ezchart/internal/diagram"
)

// dialect captures what differs between the SQL flavors we write
type dialect struct {
	quote             func(string) string
	types             map[string]string
	useSchemas        bool
	inlineForeignKeys bool
	ifNotExists       bool
	// fixedSize types reject a length or precision argument
	fixedSize map[string]bool
	// nativeDefaults keeps defaults containing casts or sequence calls
	nativeDefaults bool
}

var plainIdent = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func quoteANSIIfNeeded(s string) string {
	if plainIdent.MatchString(s) && !reservedWords[strings.ToUpper(s)] {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteBacktick(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

func quoteBracket(s string) string {
	return "[" + strings.ReplaceAll(s, "]", "]]") + "]"
}

var reservedWords = map[string]bool{
	"ORDER": true, "GROUP": true, "USER": true, "TABLE": true, "SELECT": true,
	"FROM": true, "WHERE": true, "INDEX": true, "KEY": true, "CHECK": true,
	"DEFAULT": true, "PRIMARY": true, "REFERENCES": true, "LIMIT": true,
}

var dialects = map[diagram.DatabaseType]dialect{
	diagram.Generic: {
		quote:          quoteANSIIfNeeded,
		useSchemas:     true,
		nativeDefaults: true,
	},
	diagram.PostgreSQL: {
		quote:          pq.QuoteIdentifier,
		useSchemas:     true,
		ifNotExists:    true,
		nativeDefaults: true,
		types: map[string]string{
			"int": "integer", "integer": "integer", "tinyint": "smallint", "mediumint": "integer",
			"datetime": "timestamp", "double": "double precision", "float": "real",
			"blob": "bytea", "longblob": "bytea", "binary": "bytea", "varbinary": "bytea",
			"longtext": "text", "mediumtext": "text", "tinytext": "text",
			"nvarchar": "varchar", "bit": "boolean", "uniqueidentifier": "uuid",
			"datetime2": "timestamp", "json": "jsonb",
		},
		fixedSize: setOf("smallint", "integer", "bigint", "boolean", "real", "double precision",
			"bytea", "json", "jsonb", "uuid", "text", "date", "serial", "bigserial", "smallserial"),
	},
	diagram.MySQL: {
		quote:       quoteBacktick,
		ifNotExists: true,
		types: map[string]string{
			"serial": "int AUTO_INCREMENT", "bigserial": "bigint AUTO_INCREMENT",
			"smallserial": "smallint AUTO_INCREMENT", "boolean": "tinyint(1)", "bool": "tinyint(1)",
			"uuid": "char(36)", "jsonb": "json", "bytea": "blob", "timestamptz": "timestamp",
			"timestamp with time zone": "timestamp", "double precision": "double",
			"character varying": "varchar", "nvarchar": "varchar", "uniqueidentifier": "char(36)",
			"datetime2": "datetime", "bit": "tinyint(1)", "real": "float",
		},
	},
	diagram.SQLServer: {
		quote:      quoteBracket,
		useSchemas: true,
		types: map[string]string{
			"serial": "int IDENTITY(1,1)", "bigserial": "bigint IDENTITY(1,1)",
			"smallserial": "smallint IDENTITY(1,1)", "boolean": "bit", "bool": "bit",
			"uuid": "uniqueidentifier", "json": "nvarchar(max)", "jsonb": "nvarchar(max)",
			"text": "nvarchar(max)", "longtext": "nvarchar(max)", "bytea": "varbinary(max)",
			"blob": "varbinary(max)", "timestamp": "datetime2", "timestamptz": "datetimeoffset",
			"timestamp with time zone": "datetimeoffset", "double precision": "float",
			"double": "float", "character varying": "nvarchar", "varchar": "nvarchar",
		},
		fixedSize: setOf("int", "bigint", "smallint", "tinyint", "bit", "date", "real",
			"uniqueidentifier", "datetimeoffset", "money"),
	},
	diagram.SQLite: {
		quote:             quoteANSIIfNeeded,
		inlineForeignKeys: true,
		ifNotExists:       true,
		types: map[string]string{
			"serial": "integer", "bigserial": "integer", "smallserial": "integer",
			"int": "integer", "bigint": "integer", "smallint": "integer", "tinyint": "integer",
			"boolean": "integer", "bool": "integer", "uuid": "text", "json": "text", "jsonb": "text",
			"varchar": "text", "character varying": "text", "char": "text", "nvarchar": "text",
			"timestamp": "text", "timestamptz": "text", "timestamp with time zone": "text",
			"datetime": "text", "date": "text", "time": "text", "bytea": "blob",
			"decimal": "numeric", "double precision": "real", "double": "real", "float": "real",
		},
	},
}

func init() {
	// MariaDB shares MySQL's syntax; uuid is native since 10.7
	mariadb := dialects[diagram.MySQL]
	mariadb.types = make(map[string]string, len(dialects[diagram.MySQL].types))
	for k, v := range dialects[diagram.MySQL].types {
		mariadb.types[k] = v
	}
	mariadb.types["uuid"] = "uuid"
	dialects[diagram.MariaDB] = mariadb
}

var typeArgs = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z0-9_ ]*?)\s*(\(.*\))?\s*(\[\])?\s*$`)

// mapType translates a source column type into the dialect's spelling,
// carrying length/precision arguments across when the target keeps them
func (dl dialect) mapType(src string) string {
	if len(dl.types) == 0 {
		return src
	}
	m := typeArgs.FindStringSubmatch(src)
	if m == nil {
		return src
	}
	base, args := strings.ToLower(m[1]), m[2]
	target, ok := dl.types[base]
	if !ok {
		if dl.fixedSize[base] {
			return strings.TrimSpace(m[1])
		}
		return strings.TrimSpace(src)
	}
	// replacements that spell out their own size drop the source's
	if strings.ContainsAny(target, "( ") || dl.fixedSize[target] || target == "text" || target == "integer" {
		return target
	}
	return target + args
}

func setOf(names ...string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

func (dl dialect) tableName(t *diagram.Table) string {
	if dl.useSchemas && t.Schema != "" {
		return dl.quote(t.Schema) + "." + dl.quote(t.Name)
	}
	return dl.quote(t.Name)
}

func (dl dialect) defaultValue(v string) (string, bool) {
	if v == "" || strings.EqualFold(v, "null") {
		return "", false
	}
	if !dl.nativeDefaults && (strings.Contains(v, "::") || strings.Contains(strings.ToLower(v), "nextval(")) {
		return "", false
	}
	return v, true
}

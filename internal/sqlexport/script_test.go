package sqlexport

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhath/ezchart/internal/diagram"
)

func shopDiagram() *diagram.Diagram {
	d := diagram.New("shop", diagram.PostgreSQL)
	d.Tables = []diagram.Table{
		diagram.NewTable("orders", "",
			diagram.Field{Name: "id", Type: "serial", PrimaryKey: true},
			diagram.Field{Name: "user_id", Type: "bigint"},
			diagram.Field{Name: "total", Type: "decimal(10,2)", Nullable: true, Default: "0"},
		),
		diagram.NewTable("users", "",
			diagram.Field{Name: "id", Type: "bigint", PrimaryKey: true},
			diagram.Field{Name: "email", Type: "varchar(255)", Unique: true},
		),
	}
	d.Tables[1].Indexes = []diagram.Index{{Name: "users_email_idx", Unique: true, FieldNames: []string{"email"}}}
	d.Relationships = []diagram.Relationship{{
		Name:        "fk_orders_user",
		SourceTable: "orders", SourceField: "user_id",
		TargetTable: "users", TargetField: "id",
	}}
	return d
}

func TestBaseSQL(t *testing.T) {
	want := `CREATE TABLE users (
  id bigint NOT NULL,
  email varchar(255) NOT NULL UNIQUE,
  PRIMARY KEY (id)
);
CREATE UNIQUE INDEX users_email_idx ON users (email);

CREATE TABLE orders (
  id serial NOT NULL,
  user_id bigint NOT NULL,
  total decimal(10,2) DEFAULT 0,
  PRIMARY KEY (id)
);

ALTER TABLE orders ADD CONSTRAINT fk_orders_user FOREIGN KEY (user_id) REFERENCES users (id);
`
	assert.Equal(t, want, BaseSQL(shopDiagram()))
}

func TestBaseSQLEmptyDiagram(t *testing.T) {
	assert.Empty(t, BaseSQL(diagram.New("empty", diagram.Generic)))
	assert.Empty(t, BaseSQL(nil))
}

func TestBaseSQLQuotesReservedNames(t *testing.T) {
	d := diagram.New("x", diagram.Generic)
	d.Tables = []diagram.Table{diagram.NewTable("order", "", diagram.Field{Name: "Total Amount", Type: "int", Nullable: true})}

	out := BaseSQL(d)
	assert.Contains(t, out, `CREATE TABLE "order" (`)
	assert.Contains(t, out, `"Total Amount" int`)
}

func TestMapTypeDropsSizeOnFixedTypes(t *testing.T) {
	tests := []struct {
		target diagram.DatabaseType
		src    string
		want   string
	}{
		{diagram.PostgreSQL, "tinyint(1)", "smallint"},
		{diagram.PostgreSQL, "bit(1)", "boolean"},
		{diagram.PostgreSQL, "float(53)", "real"},
		{diagram.PostgreSQL, "int(11)", "integer"},
		{diagram.PostgreSQL, "bigint(20)", "bigint"},
		{diagram.PostgreSQL, "varchar(255)", "varchar(255)"},
		{diagram.PostgreSQL, "decimal(10,2)", "decimal(10,2)"},
		{diagram.PostgreSQL, "nvarchar(80)", "varchar(80)"},
		{diagram.SQLServer, "int(11)", "int"},
		{diagram.SQLServer, "varchar(40)", "nvarchar(40)"},
		{diagram.MySQL, "bit(1)", "tinyint(1)"},
	}
	for _, tt := range tests {
		t.Run(string(tt.target)+"/"+tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, dialects[tt.target].mapType(tt.src))
		})
	}
}

func TestTranslateMySQLImportToPostgres(t *testing.T) {
	d := diagram.New("legacy", diagram.MySQL)
	d.Tables = []diagram.Table{diagram.NewTable("flags", "",
		diagram.Field{Name: "id", Type: "int(11)", PrimaryKey: true},
		diagram.Field{Name: "active", Type: "tinyint(1)"},
		diagram.Field{Name: "deleted", Type: "bit(1)"},
		diagram.Field{Name: "score", Type: "float(53)", Nullable: true},
	)}

	out, err := Translate(d, diagram.PostgreSQL)
	require.NoError(t, err)
	assert.Contains(t, out, `"id" integer NOT NULL`)
	assert.Contains(t, out, `"active" smallint NOT NULL`)
	assert.Contains(t, out, `"deleted" boolean NOT NULL`)
	assert.Contains(t, out, `"score" real`)
	assert.NotContains(t, out, "smallint(")
	assert.NotContains(t, out, "boolean(")
	assert.NotContains(t, out, "real(")
}

func TestTranslateDialects(t *testing.T) {
	tests := []struct {
		target diagram.DatabaseType
		want   []string
	}{
		{diagram.PostgreSQL, []string{
			`CREATE TABLE IF NOT EXISTS "users" (`,
			`"email" varchar(255) NOT NULL UNIQUE`,
			`ALTER TABLE "orders" ADD CONSTRAINT "fk_orders_user" FOREIGN KEY ("user_id") REFERENCES "users" ("id");`,
		}},
		{diagram.MySQL, []string{
			"CREATE TABLE IF NOT EXISTS `orders` (",
			"`id` int AUTO_INCREMENT NOT NULL",
			"ALTER TABLE `orders` ADD CONSTRAINT `fk_orders_user` FOREIGN KEY (`user_id`) REFERENCES `users` (`id`);",
		}},
		{diagram.MariaDB, []string{
			"`id` int AUTO_INCREMENT NOT NULL",
		}},
		{diagram.SQLServer, []string{
			"CREATE TABLE [orders] (",
			"[id] int IDENTITY(1,1) NOT NULL",
			"ALTER TABLE [orders] ADD CONSTRAINT [fk_orders_user]",
		}},
		{diagram.SQLite, []string{
			"CREATE TABLE IF NOT EXISTS orders (",
			"id integer NOT NULL",
			"email text NOT NULL UNIQUE",
			"CONSTRAINT fk_orders_user FOREIGN KEY (user_id) REFERENCES users (id)",
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			out, err := Translate(shopDiagram(), tt.target)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestTranslateDropsForeignDefaults(t *testing.T) {
	d := diagram.New("x", diagram.PostgreSQL)
	d.Tables = []diagram.Table{diagram.NewTable("t", "",
		diagram.Field{Name: "id", Type: "integer", PrimaryKey: true, Default: "nextval('t_id_seq'::regclass)"},
	)}

	pg, err := Translate(d, diagram.PostgreSQL)
	require.NoError(t, err)
	assert.Contains(t, pg, "DEFAULT nextval")

	my, err := Translate(d, diagram.MySQL)
	require.NoError(t, err)
	assert.NotContains(t, my, "DEFAULT")
}

func TestTranslateUnknownTarget(t *testing.T) {
	_, err := Translate(shopDiagram(), diagram.DatabaseType("oracle"))
	assert.Error(t, err)
}

func TestSQLiteScriptExecutes(t *testing.T) {
	script, err := Translate(shopDiagram(), diagram.SQLite)
	require.NoError(t, err)

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "out.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(script)
	require.NoError(t, err, script)

	var n int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table'`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestOrderTablesCycleKeepsDeclarationOrder(t *testing.T) {
	d := diagram.New("cycle", diagram.Generic)
	d.Tables = []diagram.Table{
		diagram.NewTable("a", "", diagram.Field{Name: "id", Type: "int", PrimaryKey: true}, diagram.Field{Name: "b_id", Type: "int"}),
		diagram.NewTable("b", "", diagram.Field{Name: "id", Type: "int", PrimaryKey: true}, diagram.Field{Name: "a_id", Type: "int"}),
	}
	d.Relationships = []diagram.Relationship{
		{SourceTable: "a", SourceField: "b_id", TargetTable: "b", TargetField: "id"},
		{SourceTable: "b", SourceField: "a_id", TargetTable: "a", TargetField: "id"},
	}

	assert.Equal(t, []int{0, 1}, orderTables(d))
	out := BaseSQL(d)
	assert.Contains(t, out, "ALTER TABLE a ADD FOREIGN KEY (b_id) REFERENCES b (id);")
	assert.Contains(t, out, "ALTER TABLE b ADD FOREIGN KEY (a_id) REFERENCES a (id);")
}

func TestPostgresCreatesSchemas(t *testing.T) {
	d := diagram.New("x", diagram.PostgreSQL)
	d.Tables = []diagram.Table{diagram.NewTable("events", "audit", diagram.Field{Name: "id", Type: "int", PrimaryKey: true})}

	out, err := Translate(d, diagram.PostgreSQL)
	require.NoError(t, err)
	assert.Contains(t, out, `CREATE SCHEMA IF NOT EXISTS "audit";`)
	assert.Contains(t, out, `CREATE TABLE IF NOT EXISTS "audit"."events" (`)
}

func TestInlineForeignKeyMatchesCreateTableName(t *testing.T) {
	d := diagram.New("app", diagram.PostgreSQL)
	d.Tables = []diagram.Table{
		diagram.NewTable("user", "app", diagram.Field{Name: "id", Type: "bigint", PrimaryKey: true}),
		diagram.NewTable("posts", "app",
			diagram.Field{Name: "id", Type: "bigint", PrimaryKey: true},
			diagram.Field{Name: "author_id", Type: "bigint"},
		),
	}
	d.Relationships = []diagram.Relationship{{
		Name:        "fk_posts_author",
		SourceTable: "posts", SourceField: "author_id",
		TargetTable: "user", TargetField: "id",
	}}

	out, err := Translate(d, diagram.SQLite)
	require.NoError(t, err)
	assert.Contains(t, out, `CREATE TABLE IF NOT EXISTS "user" (`)
	assert.Contains(t, out, `FOREIGN KEY (author_id) REFERENCES "user" (id)`)
}

package diagram

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Diagram {
	d := New("shop", PostgreSQL)
	d.Tables = []Table{
		NewTable("users", "public",
			Field{Name: "id", Type: "bigint", PrimaryKey: true},
			Field{Name: "email", Type: "text", Unique: true},
		),
		NewTable("orders", "public",
			Field{Name: "id", Type: "bigint", PrimaryKey: true},
			Field{Name: "user_id", Type: "bigint"},
		),
	}
	d.Tables[0].Indexes = []Index{{Name: "users_email", Unique: true, FieldNames: []string{"email"}}}
	d.Relationships = []Relationship{{Name: "fk", SourceTable: "orders", SourceField: "user_id", TargetTable: "users", TargetField: "id"}}
	return d
}

func TestNewAssignsIDs(t *testing.T) {
	d := sample()
	assert.NotEmpty(t, d.ID)
	assert.NotEmpty(t, d.Tables[0].ID)
	assert.NotEmpty(t, d.Tables[0].Fields[0].ID)
	assert.NotEqual(t, d.Tables[0].Fields[0].ID, d.Tables[0].Fields[1].ID)
	assert.Equal(t, d.CreatedAt, d.UpdatedAt)
}

func TestLookups(t *testing.T) {
	d := sample()
	users := d.Table("users")
	require.NotNil(t, users)
	assert.Equal(t, "public.users", users.QualifiedName())
	assert.Equal(t, []string{"id"}, users.PrimaryKeys())
	assert.NotNil(t, users.Field("email"))
	assert.Nil(t, users.Field("nope"))
	assert.Nil(t, d.Table("nope"))
}

func TestCloneIsDeep(t *testing.T) {
	d := sample()
	c := d.Clone()
	require.Empty(t, cmp.Diff(d, c))

	c.Tables[0].Fields[0].Name = "changed"
	c.Tables[0].Indexes[0].FieldNames[0] = "changed"
	c.Relationships[0].Name = "changed"
	c.Tables = append(c.Tables, NewTable("extra", ""))

	assert.Equal(t, "id", d.Tables[0].Fields[0].Name)
	assert.Equal(t, "email", d.Tables[0].Indexes[0].FieldNames[0])
	assert.Equal(t, "fk", d.Relationships[0].Name)
	assert.Len(t, d.Tables, 2)

	var nilDiagram *Diagram
	assert.Nil(t, nilDiagram.Clone())
}

func TestValidate(t *testing.T) {
	require.NoError(t, sample().Validate())

	tests := []struct {
		name   string
		mutate func(*Diagram)
		want   string
	}{
		{"duplicate table", func(d *Diagram) { d.Tables[1].Name = "users" }, "duplicate table"},
		{"blank table", func(d *Diagram) { d.Tables[1].Name = " " }, "has no name"},
		{"unknown source", func(d *Diagram) { d.Relationships[0].SourceTable = "x" }, "unknown table x"},
		{"unknown target field", func(d *Diagram) { d.Relationships[0].TargetField = "x" }, "unknown field users.x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := sample()
			tt.mutate(d)
			assert.ErrorContains(t, d.Validate(), tt.want)
		})
	}
}

func TestParseDatabaseType(t *testing.T) {
	for in, want := range map[string]DatabaseType{
		"": Generic, "postgres": PostgreSQL, "pg": PostgreSQL, "mssql": SQLServer,
		"sqlite3": SQLite, "mariadb": MariaDB, "mysql": MySQL,
	} {
		got, err := ParseDatabaseType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseDatabaseType("oracle")
	assert.Error(t, err)

	assert.Equal(t, "SQL Server", SQLServer.Label())
	assert.False(t, DatabaseType("oracle").Valid())
	assert.Len(t, DatabaseTypes, 6)
}

func TestCodecRoundTrip(t *testing.T) {
	d := sample()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, d))
	assert.Contains(t, buf.String(), "database_type: postgresql")

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(d, got))
}

func TestDecodeRejectsBadInput(t *testing.T) {
	_, err := Decode(strings.NewReader("name: x\ndatabase_type: oracle\n"))
	assert.ErrorContains(t, err, "unknown database type")

	got, err := Decode(strings.NewReader("name: x\n"))
	require.NoError(t, err)
	assert.Equal(t, Generic, got.DatabaseType)

	_, err = Decode(strings.NewReader("name: x\nrelationships:\n  - source_table: a\n"))
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "my_diagram.png", FileName(" my diagram ", "png"))
	assert.Equal(t, "Shop_v2.svg", FileName("Shop <v2>", "svg"))
	assert.Equal(t, "diagram.sql", FileName("///", "sql"))
}

package sqlexport

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nhath/ezchart/internal/diagram"
)

// BaseSQL renders the diagram as a dialect-neutral DDL script. It is pure
// and fast enough to call on the UI goroutine. A diagram without tables
// yields an empty string.
func BaseSQL(d *diagram.Diagram) string {
	return render(d, dialects[diagram.Generic])
}

// Translate renders the diagram with the rules of the target database.
func Translate(d *diagram.Diagram, target diagram.DatabaseType) (string, error) {
	dl, ok := dialects[target]
	if !ok {
		return "", fmt.Errorf("unsupported database type %q", target)
	}
	return render(d, dl), nil
}

func render(d *diagram.Diagram, dl dialect) string {
	if d == nil || len(d.Tables) == 0 {
		return ""
	}

	var b strings.Builder
	order := orderTables(d)

	if dl.useSchemas && dl.ifNotExists {
		for _, s := range schemas(d) {
			fmt.Fprintf(&b, "CREATE SCHEMA IF NOT EXISTS %s;\n", dl.quote(s))
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
	}

	for _, i := range order {
		writeTable(&b, d, &d.Tables[i], dl)
		b.WriteString("\n")
	}

	if !dl.inlineForeignKeys {
		wrote := false
		for _, r := range d.Relationships {
			src, dst := d.Table(r.SourceTable), d.Table(r.TargetTable)
			if src == nil || dst == nil {
				continue
			}
			fmt.Fprintf(&b, "ALTER TABLE %s ADD %sFOREIGN KEY (%s) REFERENCES %s (%s);\n",
				dl.tableName(src), constraintName(dl, r.Name), dl.quote(r.SourceField),
				dl.tableName(dst), dl.quote(r.TargetField))
			wrote = true
		}
		if wrote {
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeTable(b *strings.Builder, d *diagram.Diagram, t *diagram.Table, dl dialect) {
	create := "CREATE TABLE "
	if dl.ifNotExists {
		create += "IF NOT EXISTS "
	}
	fmt.Fprintf(b, "%s%s (\n", create, dl.tableName(t))

	var lines []string
	for _, f := range t.Fields {
		line := "  " + dl.quote(f.Name) + " " + dl.mapType(f.Type)
		if !f.Nullable || f.PrimaryKey {
			line += " NOT NULL"
		}
		if def, ok := dl.defaultValue(f.Default); ok {
			line += " DEFAULT " + def
		}
		if f.Unique && !f.PrimaryKey {
			line += " UNIQUE"
		}
		lines = append(lines, line)
	}

	if pks := t.PrimaryKeys(); len(pks) > 0 {
		lines = append(lines, "  PRIMARY KEY ("+quoteAll(dl, pks)+")")
	}

	if dl.inlineForeignKeys {
		for _, r := range d.Relationships {
			dst := d.Table(r.TargetTable)
			if r.SourceTable != t.Name || dst == nil {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %sFOREIGN KEY (%s) REFERENCES %s (%s)",
				constraintName(dl, r.Name), dl.quote(r.SourceField),
				dl.tableName(dst), dl.quote(r.TargetField)))
		}
	}

	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n);\n")

	for _, idx := range t.Indexes {
		kind := "INDEX"
		if idx.Unique {
			kind = "UNIQUE INDEX"
		}
		fmt.Fprintf(b, "CREATE %s %s ON %s (%s);\n", kind, dl.quote(idx.Name), dl.tableName(t), quoteAll(dl, idx.FieldNames))
	}
}

func constraintName(dl dialect, name string) string {
	if name == "" {
		return ""
	}
	return "CONSTRAINT " + dl.quote(name) + " "
}

func quoteAll(dl dialect, names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = dl.quote(n)
	}
	return strings.Join(out, ", ")
}

func schemas(d *diagram.Diagram) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range d.Tables {
		if t.Schema == "" || t.Schema == "public" || seen[t.Schema] {
			continue
		}
		seen[t.Schema] = true
		out = append(out, t.Schema)
	}
	sort.Strings(out)
	return out
}

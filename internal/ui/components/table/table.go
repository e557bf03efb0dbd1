package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	bbtable "github.com/evertras/bubble-table/table"

	"github.com/nhath/ezchart/internal/diagram"
	"github.com/nhath/ezchart/internal/store"
	"github.com/nhath/ezchart/internal/ui/icons"
)

// Nord colors (matching OpenCode theme)
const (
	ColorForeground = "#D8DEE9" // Nord4: Light gray
	ColorComment    = "#4C566A" // Nord3: Dark gray
	ColorCyan       = "#88C0D0" // Nord8: Cyan blue
	ColorGreen      = "#A3BE8C" // Nord14: Green
	ColorOrange     = "#D08770" // Nord12: Orange
	ColorPink       = "#B48EAD" // Nord15: Pink
	ColorYellow     = "#EBCB8B" // Nord13: Yellow
	ColorTeal       = "#8FBCBB" // Nord7: Teal
)

// Column keys for the diagram list
const (
	KeyID       = "id"
	KeyName     = "name"
	KeyDatabase = "database"
	KeyTables   = "tables"
	KeyModified = "modified"
)

// New creates a new bubble-table with Nord theme (no background)
func New(cols []bbtable.Column) bbtable.Model {
	return bbtable.New(cols).
		WithBaseStyle(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorForeground))).
		HeaderStyle(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorTeal)).
			Bold(true)).
		HighlightStyle(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorGreen)).
			Bold(true)).
		Focused(true).
		BorderRounded()
}

// FromSummaries builds the stored-diagram list
func FromSummaries(items []store.Summary) bbtable.Model {
	headers := []string{"Name", "Database", "Tables", "Last modified"}
	rowsData := make([][]string, 0, len(items))
	for _, s := range items {
		rowsData = append(rowsData, []string{
			s.Name,
			icons.DatabaseIcon(s.DatabaseType) + " " + s.DatabaseType.Label(),
			humanize.Comma(int64(s.TableCount)),
			humanize.Time(s.UpdatedAt),
		})
	}

	widths := calculateColumnWidths(headers, rowsData)
	cols := []bbtable.Column{
		bbtable.NewColumn(KeyName, "Name", min(widths["Name"], 40)),
		bbtable.NewColumn(KeyDatabase, "Database", widths["Database"]),
		bbtable.NewColumn(KeyTables, "Tables", widths["Tables"]),
		bbtable.NewColumn(KeyModified, "Last modified", widths["Last modified"]),
	}

	rows := make([]bbtable.Row, 0, len(items))
	for i, s := range items {
		rd := rowsData[i]
		rows = append(rows, bbtable.NewRow(bbtable.RowData{
			KeyID:       s.ID,
			KeyName:     rd[0],
			KeyDatabase: rd[1],
			KeyTables:   bbtable.NewStyledCell(rd[2], lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPink))),
			KeyModified: bbtable.NewStyledCell(rd[3], lipgloss.NewStyle().Foreground(lipgloss.Color(ColorComment))),
		}))
	}

	return New(cols).
		WithRows(rows).
		WithPageSize(10).
		WithStaticFooter("enter: open • x: delete • /: filter • esc: close")
}

// FromFields builds the column table of one diagram table
func FromFields(fields []diagram.Field) bbtable.Model {
	headers := []string{"Name", "Type", "Null", "Key", "Default"}
	var rowsData [][]string
	for _, f := range fields {
		nullStr := "YES"
		if !f.Nullable || f.PrimaryKey {
			nullStr = "NO"
		}
		key := ""
		switch {
		case f.PrimaryKey:
			key = "PK"
		case f.Unique:
			key = "UQ"
		}
		rowsData = append(rowsData, []string{f.Name, f.Type, nullStr, key, f.Default})
	}

	widths := calculateColumnWidths(headers, rowsData)
	tableCols := []bbtable.Column{}
	for _, h := range headers {
		tableCols = append(tableCols, bbtable.NewColumn(h, h, widths[h]))
	}

	var rows []bbtable.Row
	for _, rd := range rowsData {
		rows = append(rows, bbtable.NewRow(bbtable.RowData{
			"Name":    rd[0],
			"Type":    bbtable.NewStyledCell(rd[1], lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCyan))),
			"Null":    rd[2],
			"Key":     bbtable.NewStyledCell(rd[3], lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow))),
			"Default": bbtable.NewStyledCell(rd[4], defaultStyle(rd[4])),
		}))
	}

	return New(tableCols).WithRows(rows)
}

// FromIndexes builds the index and foreign key table of one diagram table
func FromIndexes(t *diagram.Table, rels []diagram.Relationship) bbtable.Model {
	headers := []string{"Name", "Type", "Definition"}
	var rowsData [][]string
	for _, idx := range t.Indexes {
		kind := "INDEX"
		if idx.Unique {
			kind = "UNIQUE"
		}
		rowsData = append(rowsData, []string{idx.Name, kind, "(" + strings.Join(idx.FieldNames, ", ") + ")"})
	}
	for _, r := range rels {
		if r.SourceTable != t.Name {
			continue
		}
		rowsData = append(rowsData, []string{r.Name, "FOREIGN KEY",
			r.SourceField + " → " + r.TargetTable + "." + r.TargetField})
	}

	widths := calculateColumnWidths(headers, rowsData)
	cols := []bbtable.Column{}
	for _, h := range headers {
		w := widths[h]
		if h == "Definition" && w > 50 {
			w = 50
		}
		cols = append(cols, bbtable.NewColumn(h, h, w))
	}

	var rows []bbtable.Row
	for _, rd := range rowsData {
		rows = append(rows, bbtable.NewRow(bbtable.RowData{
			"Name":       rd[0],
			"Type":       rd[1],
			"Definition": rd[2],
		}))
	}

	return New(cols).WithRows(rows)
}

func calculateColumnWidths(headers []string, rows [][]string) map[string]int {
	widths := make(map[string]int)
	for _, h := range headers {
		widths[h] = lipgloss.Width(h)
	}

	for _, row := range rows {
		for i, val := range row {
			if i < len(headers) {
				if w := lipgloss.Width(val); w > widths[headers[i]] {
					widths[headers[i]] = w
				}
			}
		}
	}

	// Add padding
	for h := range widths {
		widths[h] += 2
	}

	return widths
}

func defaultStyle(val string) lipgloss.Style {
	if val == "" || strings.EqualFold(val, "null") {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPink)).Italic(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOrange))
}

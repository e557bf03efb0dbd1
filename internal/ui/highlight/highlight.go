// Package highlight colors SQL for terminal display.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/nhath/ezchart/internal/diagram"
)

const styleName = "nord"

var lexerByDialect = map[diagram.DatabaseType]string{
	diagram.PostgreSQL: "postgresql",
	diagram.MySQL:      "mysql",
	diagram.MariaDB:    "mysql",
	diagram.SQLServer:  "tsql",
}

func lexerFor(t diagram.DatabaseType) chroma.Lexer {
	l := lexers.Get("sql")
	if name, ok := lexerByDialect[t]; ok {
		if dl := lexers.Get(name); dl != nil {
			l = dl
		}
	}
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}

// SQL returns src with 256-color ANSI highlighting for the given dialect.
// On any tokenizer failure the input is returned unchanged.
func SQL(src string, t diagram.DatabaseType) string {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	it, err := lexerFor(t).Tokenise(nil, src)
	if err != nil {
		return src
	}
	var b strings.Builder
	if err := formatter.Format(&b, style, it); err != nil {
		return src
	}
	return b.String()
}

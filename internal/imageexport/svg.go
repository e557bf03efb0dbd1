package imageexport

import (
	"io"
	"text/template"

	"github.com/nhath/ezchart/internal/diagram"
)

var svgTemplate = template.Must(template.New("svg").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"row": func(i int) int { return padding + 11 + (i+1)*lineHeight + padding/2 },
}).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="{{.L.Width}}" height="{{.L.Height}}" font-family="monospace" font-size="12">
<title>{{html .Name}}</title>
<rect width="100%" height="100%" fill="{{.P.Background}}"/>
{{- range .Edges}}
<line x1="{{.X1}}" y1="{{.Y1}}" x2="{{.X2}}" y2="{{.Y2}}" stroke="{{$.P.Line}}" stroke-width="1.5"/>
{{- end}}
{{- range .Boxes}}
<g transform="translate({{.X}},{{.Y}})">
<rect width="{{.W}}" height="{{.H}}" rx="4" fill="{{$.P.Card}}" stroke="{{$.P.Border}}"/>
<rect width="{{.W}}" height="{{$.Header}}" rx="4" fill="{{$.P.Header}}"/>
<text x="{{$.Pad}}" y="{{add $.Pad 11}}" fill="{{$.P.Text}}" font-weight="bold">{{html .Title}}</text>
{{- range $i, $line := .Lines}}
<text x="{{$.Pad}}" y="{{row $i}}" fill="{{$.P.Text}}">{{html $line}}</text>
{{- end}}
</g>
{{- end}}
</svg>
`))

type svgBox struct {
	X, Y, W, H int
	Title      string
	Lines      []string
}

type svgEdge struct {
	X1, Y1, X2, Y2 int
}

type svgData struct {
	Name   string
	L      struct{ Width, Height int }
	P      Palette
	Boxes  []svgBox
	Edges  []svgEdge
	Header int
	Pad    int
}

func writeSVG(w io.Writer, d *diagram.Diagram, l layout, p Palette) error {
	data := svgData{Name: d.Name, P: p, Header: lineHeight + padding, Pad: padding}
	data.L.Width, data.L.Height = l.width, l.height
	for _, b := range l.boxes {
		data.Boxes = append(data.Boxes, svgBox{X: b.x, Y: b.y, W: b.w, H: b.h, Title: b.title, Lines: b.lines})
	}
	for _, e := range l.edges {
		a, b := l.boxes[e.from].center, l.boxes[e.to].center
		data.Edges = append(data.Edges, svgEdge{X1: a[0], Y1: a[1], X2: b[0], Y2: b[1]})
	}
	return svgTemplate.Execute(w, data)
}

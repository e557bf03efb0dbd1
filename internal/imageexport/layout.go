package imageexport

import (
	"math"

	"github.com/nhath/ezchart/internal/diagram"
)

const (
	charWidth  = 7
	lineHeight = 16
	padding    = 8
	gap        = 48
	margin     = 24
)

type box struct {
	title  string
	lines  []string
	x, y   int
	w, h   int
	center [2]int
}

type edge struct {
	from, to int
}

type layout struct {
	boxes  []box
	edges  []edge
	width  int
	height int
}

func fieldLine(f diagram.Field) string {
	line := f.Name + " " + f.Type
	if f.PrimaryKey {
		line += " PK"
	} else if f.Unique {
		line += " UQ"
	}
	return line
}

// computeLayout places tables on a grid sized to the table count
func computeLayout(d *diagram.Diagram) layout {
	var l layout
	n := len(d.Tables)
	if n == 0 {
		l.width, l.height = 2*margin+200, 2*margin+lineHeight
		return l
	}

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	index := make(map[string]int, n)
	for i, t := range d.Tables {
		b := box{title: t.QualifiedName()}
		longest := len(b.title)
		for _, f := range t.Fields {
			line := fieldLine(f)
			b.lines = append(b.lines, line)
			if len(line) > longest {
				longest = len(line)
			}
		}
		b.w = longest*charWidth + 2*padding
		b.h = (len(b.lines)+1)*lineHeight + 2*padding
		l.boxes = append(l.boxes, b)
		index[t.Name] = i
	}

	colWidth := make([]int, cols)
	rows := (n + cols - 1) / cols
	rowHeight := make([]int, rows)
	for i, b := range l.boxes {
		colWidth[i%cols] = max(colWidth[i%cols], b.w)
		rowHeight[i/cols] = max(rowHeight[i/cols], b.h)
	}

	y := margin
	for r := 0; r < rows; r++ {
		x := margin
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= n {
				break
			}
			b := &l.boxes[i]
			b.x, b.y = x, y
			b.center = [2]int{x + b.w/2, y + b.h/2}
			x += colWidth[c] + gap
		}
		y += rowHeight[r] + gap
	}

	for _, w := range colWidth {
		l.width += w + gap
	}
	l.width += 2*margin - gap
	for _, h := range rowHeight {
		l.height += h + gap
	}
	l.height += 2*margin - gap

	for _, r := range d.Relationships {
		from, ok1 := index[r.SourceTable]
		to, ok2 := index[r.TargetTable]
		if ok1 && ok2 {
			l.edges = append(l.edges, edge{from: from, to: to})
		}
	}
	return l
}

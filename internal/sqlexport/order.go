package sqlexport

import (
	"github.com/yourbasic/graph"

	"github.com/nhath/ezchart/internal/diagram"
)

// orderTables returns table indexes so that referenced tables precede the
// tables referencing them. Cycles fall back to declaration order.
func orderTables(d *diagram.Diagram) []int {
	index := make(map[string]int, len(d.Tables))
	for i, t := range d.Tables {
		index[t.Name] = i
	}

	g := graph.New(len(d.Tables))
	for _, r := range d.Relationships {
		src, ok1 := index[r.SourceTable]
		dst, ok2 := index[r.TargetTable]
		if !ok1 || !ok2 || src == dst {
			continue
		}
		g.Add(dst, src)
	}

	order, ok := graph.TopSort(g)
	if !ok {
		order = make([]int, len(d.Tables))
		for i := range order {
			order[i] = i
		}
	}
	return order
}

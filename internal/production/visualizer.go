// Package production provides production integrations: transition publishing,
// metrics, run traces with persistence and replay, and visualization.
package production

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/comalice/sweepfsm"
)

// DefaultVisualizer renders the behavior graph.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for the behavior graph with the
// current behavior highlighted. Edge labels carry the guard and its
// check order.
func (v *DefaultVisualizer) ExportDOT(cfg sweepfsm.Config, current sweepfsm.Behavior) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Sweep {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, fontsize=10, style=rounded];\n")
	buf.WriteString("  edge [fontsize=9];\n")

	for _, b := range sweepfsm.Behaviors {
		style := ""
		if b == current {
			style = " style=\"rounded,filled\" fillcolor=lightgreen"
		}
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", b.String(), b.String(), style)
	}

	for _, e := range sweepfsm.Edges(cfg) {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From.String(), e.To.String(),
			fmt.Sprintf("%d: %s", e.Priority+1, e.Guard))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// graphDoc is the JSON shape of the behavior graph.
type graphDoc struct {
	Config sweepfsm.Config     `json:"config"`
	States []sweepfsm.Behavior `json:"states"`
	Edges  []sweepfsm.Edge     `json:"edges"`
}

// ExportJSON serializes the behavior graph and its config to JSON.
func (v *DefaultVisualizer) ExportJSON(cfg sweepfsm.Config) ([]byte, error) {
	return json.MarshalIndent(graphDoc{
		Config: cfg,
		States: sweepfsm.Behaviors,
		Edges:  sweepfsm.Edges(cfg),
	}, "", "  ")
}

package nodelink

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/planviz/pkg/diagram"
)

// kindAttrs styles nodes by kind.
var kindAttrs = map[diagram.NodeKind][]string{
	diagram.KindActor:      {"shape=ellipse", "fillcolor=\"#e8eaf6\""},
	diagram.KindBucket:     {"shape=cylinder", "fillcolor=\"#c8e6c9\""},
	diagram.KindAnnotation: {"shape=note", "fillcolor=\"#f5f5f5\"", "fontsize=11"},
	diagram.KindTopic:      {"shape=box", "fillcolor=\"#f8bbd0\""},
	diagram.KindPolicy:     {"shape=hexagon", "fillcolor=\"#ffe0b2\""},
	diagram.KindSubscriber: {"shape=box3d", "fillcolor=\"#bbdefb\""},
}

// ToDOT converts a diagram spec to Graphviz DOT source.
// The result can be rendered with [Graphviz] or saved for external tools.
func ToDOT(s *diagram.Spec) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", quote(s.Title))

	fmt.Fprintf(&buf, "  label=%s;\n", quote(s.Title))
	buf.WriteString("  labelloc=t;\n")
	if s.Direction != "" {
		fmt.Fprintf(&buf, "  rankdir=%s;\n", s.Direction)
	}
	for _, k := range slices.Sorted(maps.Keys(s.Attrs)) {
		fmt.Fprintf(&buf, "  %s=%s;\n", k, quote(s.Attrs[k]))
	}
	buf.WriteString("  node [style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=13, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=11];\n")

	w := &dotWriter{buf: &buf, spec: s}
	w.nodes("", 1)
	for _, c := range s.Children("") {
		w.cluster(c, 1)
	}

	if len(s.Edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range s.Edges {
		fmt.Fprintf(&buf, "  %s -> %s", quote(e.From), quote(e.To))
		if attrs := edgeAttrs(e); len(attrs) > 0 {
			fmt.Fprintf(&buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf  *bytes.Buffer
	spec *diagram.Spec
}

func (w *dotWriter) cluster(c diagram.Cluster, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w.buf, "\n%ssubgraph %s {\n", indent, quote("cluster_"+c.ID))
	fmt.Fprintf(w.buf, "%s  label=%s;\n", indent, quote(c.Label))
	fmt.Fprintf(w.buf, "%s  style=rounded;\n", indent)
	fmt.Fprintf(w.buf, "%s  color=\"#90a4ae\";\n", indent)
	w.nodes(c.ID, depth+1)
	for _, child := range w.spec.Children(c.ID) {
		w.cluster(child, depth+1)
	}
	fmt.Fprintf(w.buf, "%s}\n", indent)
}

func (w *dotWriter) nodes(clusterID string, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range w.spec.NodesIn(clusterID) {
		attrs := append([]string{"label=" + quote(n.Label)}, kindAttrs[n.Kind]...)
		fmt.Fprintf(w.buf, "%s%s [%s];\n", indent, quote(n.ID), strings.Join(attrs, ", "))
	}
}

func edgeAttrs(e diagram.Edge) []string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, "label="+quote(e.Label))
	}
	if e.Kind == diagram.EdgeAssociation {
		attrs = append(attrs, "dir=none")
	}
	if e.Style != "" {
		attrs = append(attrs, "style="+e.Style)
	}
	if e.Color != "" {
		attrs = append(attrs, "color="+quote(e.Color))
		if e.Label != "" {
			attrs = append(attrs, "fontcolor="+quote(e.Color))
		}
	}
	return attrs
}

// quote produces a DOT double-quoted ID. Go escapes are a superset of what
// DOT needs; "\n" is kept as DOT's centered line break.
func quote(s string) string {
	return strconv.Quote(s)
}

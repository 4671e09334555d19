package diagram

import (
	"fmt"

	errs "github.com/matzehuels/planviz/pkg/errors"
)

// NodeKind selects how a node is drawn.
type NodeKind string

const (
	KindActor      NodeKind = "actor"
	KindBucket     NodeKind = "bucket"
	KindAnnotation NodeKind = "annotation"
	KindTopic      NodeKind = "topic"
	KindPolicy     NodeKind = "policy"
	KindSubscriber NodeKind = "subscriber"
)

// EdgeKind distinguishes directed data flow from undirected association.
type EdgeKind string

const (
	// EdgeFlow is a directed edge: data or events move from From to To.
	EdgeFlow EdgeKind = "flow"
	// EdgeAssociation links a configuration annotation to what it configures.
	EdgeAssociation EdgeKind = "association"
)

// Edge styles understood by renderers.
const (
	StyleSolid  = ""
	StyleDashed = "dashed"
	StyleDotted = "dotted"
)

// Direction is the rank direction of the layout.
type Direction string

const (
	LeftToRight Direction = "LR"
	TopToBottom Direction = "TB"
)

// Cluster is a named visual grouping. Parent is empty for top-level clusters.
type Cluster struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Parent string `json:"parent,omitempty"`
}

// Node is a drawable element. Cluster is empty for top-level nodes.
type Node struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Kind    NodeKind `json:"kind"`
	Cluster string   `json:"cluster,omitempty"`
}

// Edge connects two nodes by ID.
type Edge struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Label string   `json:"label,omitempty"`
	Kind  EdgeKind `json:"kind"`
	Style string   `json:"style,omitempty"`
	Color string   `json:"color,omitempty"`
}

// Spec is the complete graph description handed to a renderer.
// Clusters always appear after their parent. A Spec returned by [Assemble]
// must be treated as read-only.
type Spec struct {
	Title     string            `json:"title"`
	Direction Direction         `json:"direction"`
	Attrs     map[string]string `json:"attrs,omitempty"`
	Clusters  []Cluster         `json:"clusters"`
	Nodes     []Node            `json:"nodes"`
	Edges     []Edge            `json:"edges"`
}

// Node returns the node with the given ID.
func (s *Spec) Node(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// HasNode reports whether a node with the given ID exists.
func (s *Spec) HasNode(id string) bool {
	_, ok := s.Node(id)
	return ok
}

// Cluster returns the cluster with the given ID.
func (s *Spec) Cluster(id string) (Cluster, bool) {
	for _, c := range s.Clusters {
		if c.ID == id {
			return c, true
		}
	}
	return Cluster{}, false
}

// NodesIn returns the nodes placed directly in a cluster.
// Pass "" for top-level nodes.
func (s *Spec) NodesIn(clusterID string) []Node {
	var out []Node
	for _, n := range s.Nodes {
		if n.Cluster == clusterID {
			out = append(out, n)
		}
	}
	return out
}

// Children returns the clusters nested directly in a cluster.
// Pass "" for top-level clusters.
func (s *Spec) Children(clusterID string) []Cluster {
	var out []Cluster
	for _, c := range s.Clusters {
		if c.Parent == clusterID {
			out = append(out, c)
		}
	}
	return out
}

// EdgesFrom returns edges whose source is id.
func (s *Spec) EdgesFrom(id string) []Edge {
	var out []Edge
	for _, e := range s.Edges {
		if e.From == id {
			out = append(out, e)
		}
	}
	return out
}

// EdgesTo returns edges whose target is id.
func (s *Spec) EdgesTo(id string) []Edge {
	var out []Edge
	for _, e := range s.Edges {
		if e.To == id {
			out = append(out, e)
		}
	}
	return out
}

// Edge returns the first edge from → to.
func (s *Spec) Edge(from, to string) (Edge, bool) {
	for _, e := range s.Edges {
		if e.From == from && e.To == to {
			return e, true
		}
	}
	return Edge{}, false
}

// Validate checks that the spec is well formed: IDs are unique, every
// cluster's parent is declared before it, every node's cluster exists,
// and every edge joins two existing nodes.
func (s *Spec) Validate() error {
	clusters := make(map[string]bool, len(s.Clusters))
	for _, c := range s.Clusters {
		if c.ID == "" {
			return errs.New(errs.ErrCodeInvalidGraph, "cluster with empty id")
		}
		if clusters[c.ID] {
			return errs.New(errs.ErrCodeInvalidGraph, "duplicate cluster %q", c.ID)
		}
		if c.Parent != "" && !clusters[c.Parent] {
			return errs.New(errs.ErrCodeInvalidGraph, "cluster %q: parent %q not declared before it", c.ID, c.Parent)
		}
		clusters[c.ID] = true
	}

	nodes := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.ID == "" {
			return errs.New(errs.ErrCodeInvalidGraph, "node with empty id")
		}
		if nodes[n.ID] {
			return errs.New(errs.ErrCodeInvalidGraph, "duplicate node %q", n.ID)
		}
		if n.Cluster != "" && !clusters[n.Cluster] {
			return errs.New(errs.ErrCodeInvalidGraph, "node %q: unknown cluster %q", n.ID, n.Cluster)
		}
		nodes[n.ID] = true
	}

	for i, e := range s.Edges {
		if !nodes[e.From] || !nodes[e.To] {
			return errs.New(errs.ErrCodeInvalidGraph, "edge %d (%s -> %s): %s", i, e.From, e.To, missingEnd(nodes, e))
		}
		if e.Kind != EdgeFlow && e.Kind != EdgeAssociation {
			return errs.New(errs.ErrCodeInvalidGraph, "edge %d (%s -> %s): unknown kind %q", i, e.From, e.To, e.Kind)
		}
	}
	return nil
}

func missingEnd(nodes map[string]bool, e Edge) string {
	if !nodes[e.From] {
		return fmt.Sprintf("unknown source %q", e.From)
	}
	return fmt.Sprintf("unknown target %q", e.To)
}

package diagram

import (
	"testing"

	errs "github.com/matzehuels/planviz/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr bool
	}{
		{
			name: "valid",
			spec: Spec{
				Clusters: []Cluster{{ID: "a"}, {ID: "b", Parent: "a"}},
				Nodes:    []Node{{ID: "x"}, {ID: "y", Cluster: "b"}},
				Edges:    []Edge{{From: "x", To: "y", Kind: EdgeFlow}},
			},
		},
		{
			name:    "duplicate node",
			spec:    Spec{Nodes: []Node{{ID: "x"}, {ID: "x"}}},
			wantErr: true,
		},
		{
			name:    "empty node id",
			spec:    Spec{Nodes: []Node{{ID: ""}}},
			wantErr: true,
		},
		{
			name:    "duplicate cluster",
			spec:    Spec{Clusters: []Cluster{{ID: "a"}, {ID: "a"}}},
			wantErr: true,
		},
		{
			name:    "parent declared later",
			spec:    Spec{Clusters: []Cluster{{ID: "b", Parent: "a"}, {ID: "a"}}},
			wantErr: true,
		},
		{
			name:    "self parent",
			spec:    Spec{Clusters: []Cluster{{ID: "a", Parent: "a"}}},
			wantErr: true,
		},
		{
			name:    "unknown node cluster",
			spec:    Spec{Nodes: []Node{{ID: "x", Cluster: "nope"}}},
			wantErr: true,
		},
		{
			name: "edge to unknown node",
			spec: Spec{
				Nodes: []Node{{ID: "x"}},
				Edges: []Edge{{From: "x", To: "y", Kind: EdgeFlow}},
			},
			wantErr: true,
		},
		{
			name: "edge from unknown node",
			spec: Spec{
				Nodes: []Node{{ID: "y"}},
				Edges: []Edge{{From: "x", To: "y", Kind: EdgeFlow}},
			},
			wantErr: true,
		},
		{
			name: "edge without kind",
			spec: Spec{
				Nodes: []Node{{ID: "x"}, {ID: "y"}},
				Edges: []Edge{{From: "x", To: "y"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errs.Is(err, errs.ErrCodeInvalidGraph) {
				t.Errorf("Validate() code = %v, want %v", errs.GetCode(err), errs.ErrCodeInvalidGraph)
			}
		})
	}
}

func TestSpecAccessors(t *testing.T) {
	s := &Spec{
		Clusters: []Cluster{{ID: "env"}, {ID: "inner", Parent: "env"}},
		Nodes: []Node{
			{ID: "top"},
			{ID: "a", Cluster: "env"},
			{ID: "b", Cluster: "inner"},
		},
		Edges: []Edge{
			{From: "top", To: "a", Kind: EdgeFlow},
			{From: "a", To: "b", Kind: EdgeFlow},
		},
	}

	if got := s.NodesIn(""); len(got) != 1 || got[0].ID != "top" {
		t.Errorf("NodesIn(\"\") = %v", got)
	}
	if got := s.NodesIn("inner"); len(got) != 1 || got[0].ID != "b" {
		t.Errorf("NodesIn(inner) = %v", got)
	}
	if got := s.Children(""); len(got) != 1 || got[0].ID != "env" {
		t.Errorf("Children(\"\") = %v", got)
	}
	if got := s.Children("env"); len(got) != 1 || got[0].ID != "inner" {
		t.Errorf("Children(env) = %v", got)
	}
	if got := s.EdgesFrom("a"); len(got) != 1 || got[0].To != "b" {
		t.Errorf("EdgesFrom(a) = %v", got)
	}
	if got := s.EdgesTo("a"); len(got) != 1 || got[0].From != "top" {
		t.Errorf("EdgesTo(a) = %v", got)
	}
	if _, ok := s.Node("missing"); ok {
		t.Error("Node(missing) should not be found")
	}
	if _, ok := s.Cluster("missing"); ok {
		t.Error("Cluster(missing) should not be found")
	}
	if _, ok := s.Edge("b", "a"); ok {
		t.Error("Edge(b, a) should not be found")
	}
}

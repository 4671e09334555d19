package diagram_test

import (
	"fmt"

	"github.com/matzehuels/planviz/pkg/diagram"
	"github.com/matzehuels/planviz/pkg/feature"
)

func ExampleAssemble() {
	spec := diagram.Assemble(feature.Set{S3: true, SNS: true, TopicPolicy: true})

	for _, e := range spec.Edges {
		fmt.Printf("%s -> %s %q\n", e.From, e.To, e.Label)
	}
	// Output:
	// uploader -> bucket "put-object"
	// bucket -> topic_policy "object-created event"
	// topic_policy -> topic ""
}

func ExampleAssemble_empty() {
	spec := diagram.Assemble(feature.Set{Subscription: true})

	fmt.Println("nodes:", len(spec.Nodes), spec.Nodes[0].Label)
	fmt.Println("clusters:", len(spec.Clusters))
	// Output:
	// nodes: 1 Uploader
	// clusters: 0
}

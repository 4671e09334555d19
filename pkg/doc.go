// Package pkg provides the libraries behind planviz.
//
// # Overview
//
// planviz turns a Terraform plan into an architecture diagram that shows only
// what the plan deploys. The pkg directory is organized by pipeline stage:
//
//  1. [plan] - Read plan JSON and .tfvars files
//  2. [feature] - Map resource types and variables to a feature set
//  3. [diagram] - Assemble the diagram spec from a feature set
//  4. [render] - Output formats and the Renderer interface
//  5. [pipeline] - Orchestration with caching (load → detect → render)
//
// Supporting packages: [cache] (rendered artifacts), [errors] (coded
// errors), [observability] (hooks) and [buildinfo] (version).
//
// # Architecture
//
//	terraform show -json
//	         ↓
//	    [plan] package (resources + variables)
//	         ↓
//	    [feature] package (8 boolean flags)
//	         ↓
//	    [diagram] package (clusters, nodes, edges)
//	         ↓
//	    [render/nodelink] package (DOT + Graphviz)
//	         ↓
//	    PNG/SVG/DOT output
//
// # Quick Start
//
//	doc, err := plan.Load("../plan.json")
//	if err != nil {
//	    return err
//	}
//	fs := feature.Detect(doc.Resources, doc.Variables)
//	spec := diagram.Assemble(fs)
//	png, err := nodelink.NewGraphviz().Render(ctx, spec, render.FormatPNG)
//
// [plan]: github.com/matzehuels/planviz/pkg/plan
// [feature]: github.com/matzehuels/planviz/pkg/feature
// [diagram]: github.com/matzehuels/planviz/pkg/diagram
// [render]: github.com/matzehuels/planviz/pkg/render
// [render/nodelink]: github.com/matzehuels/planviz/pkg/render/nodelink
// [pipeline]: github.com/matzehuels/planviz/pkg/pipeline
// [cache]: github.com/matzehuels/planviz/pkg/cache
// [errors]: github.com/matzehuels/planviz/pkg/errors
// [observability]: github.com/matzehuels/planviz/pkg/observability
// [buildinfo]: github.com/matzehuels/planviz/pkg/buildinfo
package pkg

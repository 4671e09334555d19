// Package pipeline provides the load → detect → assemble → render pipeline
// behind planviz.
//
// The CLI commands all go through a [Runner] so that caching, logging and
// observability hooks behave the same whichever subcommand started the run.
//
// # Stages
//
//  1. Load: read the Terraform plan JSON, plus an optional .tfvars file
//  2. Detect: derive the feature set from resource types and variables
//  3. Assemble: build the diagram spec and check it is well-formed
//  4. Render: lay out and draw the diagram, served from cache when possible
//  5. Write: replace the output file atomically
//
// Stages run sequentially and any failure aborts the run before the output
// file is touched.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    PlanPath: "../plan.json",
//	    Format:   "svg",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.OutputPath)
package pipeline

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planviz/pkg/diagram"
	errs "github.com/matzehuels/planviz/pkg/errors"
	"github.com/matzehuels/planviz/pkg/feature"
	"github.com/matzehuels/planviz/pkg/plan"
	"github.com/matzehuels/planviz/pkg/render"
)

// DefaultOutput is the output file name without extension.
const DefaultOutput = "secure_backup_architecture"

// Options configures a pipeline run.
type Options struct {
	// PlanPath is the `terraform show -json` output. A missing file is
	// treated as an empty plan.
	PlanPath string `json:"plan_path,omitempty"`

	// VarFile is an optional .tfvars file whose variables fill in names
	// the plan does not define.
	VarFile string `json:"var_file,omitempty"`

	// Output is the artifact path. The format extension is appended
	// unless already present.
	Output string `json:"output,omitempty"`

	// Format is png, svg or dot.
	Format string `json:"format,omitempty"`

	// Refresh skips cache reads. Fresh results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	format    render.Format
	validated bool
}

// ValidateAndSetDefaults fills unset fields and validates the rest.
// Calling it more than once is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.PlanPath == "" {
		o.PlanPath = plan.DefaultPath
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if err := errs.ValidatePath(o.PlanPath); err != nil {
		return err
	}
	if o.VarFile != "" {
		if err := errs.ValidatePath(o.VarFile); err != nil {
			return err
		}
	}
	if err := errs.ValidateOutputName(o.Output); err != nil {
		return err
	}
	f, err := render.ParseFormat(o.Format)
	if err != nil {
		return err
	}
	o.format = f
	o.Format = string(f)
	o.validated = true
	return nil
}

// RenderFormat returns the parsed output format.
func (o Options) RenderFormat() render.Format {
	if o.format != "" {
		return o.format
	}
	f, err := render.ParseFormat(o.Format)
	if err != nil {
		return render.DefaultFormat
	}
	return f
}

// OutputPath returns Output with the format extension appended.
func (o Options) OutputPath() string {
	out := o.Output
	if out == "" {
		out = DefaultOutput
	}
	ext := o.RenderFormat().Ext()
	if strings.EqualFold(filepath.Ext(out), ext) {
		return out
	}
	return out + ext
}

// ValidateFormat checks that format names a supported output format.
func ValidateFormat(format string) error {
	_, err := render.ParseFormat(format)
	return err
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Document is the loaded plan.
	Document *plan.Document

	// Variables are the plan variables merged over any var file.
	Variables map[string]plan.Variable

	// Features is the detected feature set.
	Features feature.Set

	// Spec is the assembled diagram. Nil for detect-only runs.
	Spec *diagram.Spec

	// Format is the format that was rendered.
	Format render.Format

	// Artifact holds the rendered bytes.
	Artifact []byte

	// OutputPath is where the artifact was written.
	OutputPath string

	// CacheHit reports whether the artifact came from cache.
	CacheHit bool

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ResourceCount int
	NodeCount     int
	EdgeCount     int
	LoadTime      time.Duration
	RenderTime    time.Duration
}

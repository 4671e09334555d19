package pipeline

import (
	"testing"

	errs "github.com/matzehuels/planviz/pkg/errors"
	"github.com/matzehuels/planviz/pkg/plan"
	"github.com/matzehuels/planviz/pkg/render"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"png", false},
		{"svg", false},
		{"dot", false},
		{"SVG", false},
		{"", false}, // default
		{"pdf", true},
		{"json", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errs.Is(err, errs.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errs.GetCode(err))
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero options should be valid: %v", err)
	}

	if opts.PlanPath != plan.DefaultPath {
		t.Errorf("PlanPath = %q, want %q", opts.PlanPath, plan.DefaultPath)
	}
	if opts.Output != DefaultOutput {
		t.Errorf("Output = %q, want %q", opts.Output, DefaultOutput)
	}
	if opts.Format != "png" || opts.RenderFormat() != render.FormatPNG {
		t.Errorf("Format = %q, want png", opts.Format)
	}
	if got := opts.OutputPath(); got != "secure_backup_architecture.png" {
		t.Errorf("OutputPath() = %q", got)
	}
}

func TestOptionsValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"bad format", Options{Format: "gif"}, errs.ErrCodeInvalidFormat},
		{"control char in plan", Options{PlanPath: "plan\x00.json"}, errs.ErrCodeInvalidPath},
		{"control char in var file", Options{VarFile: "a\nb.tfvars"}, errs.ErrCodeInvalidPath},
		{"output is a directory", Options{Output: "out/"}, errs.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errs.Is(err, tt.code) {
				t.Errorf("code = %s, want %s", errs.GetCode(err), tt.code)
			}
		})
	}
}

func TestOptionsOutputPath(t *testing.T) {
	tests := []struct {
		output, format, want string
	}{
		{"diagram", "svg", "diagram.svg"},
		{"diagram.svg", "svg", "diagram.svg"},
		{"diagram.SVG", "svg", "diagram.SVG"},
		{"diagram.png", "svg", "diagram.png.svg"},
		{"docs/arch", "dot", "docs/arch.dot"},
		{"", "", "secure_backup_architecture.png"},
	}

	for _, tt := range tests {
		opts := Options{Output: tt.output, Format: tt.format}
		if got := opts.OutputPath(); got != tt.want {
			t.Errorf("Options{Output: %q, Format: %q}.OutputPath() = %q, want %q",
				tt.output, tt.format, got, tt.want)
		}
	}
}

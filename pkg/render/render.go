package render

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/planviz/pkg/diagram"
	errs "github.com/matzehuels/planviz/pkg/errors"
)

// Format is an output format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatDOT Format = "dot"
)

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatPNG

var formats = []Format{FormatPNG, FormatSVG, FormatDOT}

// Formats returns the supported formats.
func Formats() []Format {
	return slices.Clone(formats)
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// ParseFormat validates a format name. Matching is case-insensitive and an
// empty string selects [DefaultFormat].
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return DefaultFormat, nil
	}
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(formats, f) {
		return "", errs.New(errs.ErrCodeInvalidFormat, "invalid format: %s (must be 'png', 'svg', or 'dot')", s)
	}
	return f, nil
}

// Renderer lays out and draws a diagram.
//
// Implementations must be deterministic: the same spec and format always
// produce equivalent output. Failures are returned with code RENDER_FAILED
// and are not retried.
type Renderer interface {
	Render(ctx context.Context, spec *diagram.Spec, format Format) ([]byte, error)
}

// RendererFunc adapts a function to [Renderer].
type RendererFunc func(ctx context.Context, spec *diagram.Spec, format Format) ([]byte, error)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, spec *diagram.Spec, format Format) ([]byte, error) {
	return f(ctx, spec, format)
}

// WriteArtifact writes data to path, replacing any existing file.
// The data goes to a temporary file in the same directory which is then
// renamed over path. Returns the cleaned path.
func WriteArtifact(path string, data []byte) (string, error) {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeWriteFailed, err, "create %s", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", errs.Wrap(errs.ErrCodeWriteFailed, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return "", errs.Wrap(errs.ErrCodeWriteFailed, err, "close %s", path)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return "", errs.Wrap(errs.ErrCodeWriteFailed, err, "chmod %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", errs.Wrap(errs.ErrCodeWriteFailed, err, "replace %s", path)
	}
	return path, nil
}

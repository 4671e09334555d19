package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/planviz/pkg/diagram"
	errs "github.com/matzehuels/planviz/pkg/errors"
	"github.com/matzehuels/planviz/pkg/render"
)

// Graphviz renders specs with the in-process Graphviz engine.
type Graphviz struct{}

// NewGraphviz returns a Graphviz renderer.
func NewGraphviz() *Graphviz {
	return &Graphviz{}
}

var _ render.Renderer = (*Graphviz)(nil)

// Render lays out spec and encodes it in format. FormatDOT returns the DOT
// source without invoking the engine.
func (r *Graphviz) Render(ctx context.Context, spec *diagram.Spec, format render.Format) ([]byte, error) {
	if spec == nil {
		return nil, errs.New(errs.ErrCodeRenderFailed, "nil diagram spec")
	}
	dot := ToDOT(spec)

	switch format {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatSVG:
		out, err := renderDOT(ctx, dot, graphviz.SVG)
		if err != nil {
			return nil, err
		}
		return normalizeViewBox(out), nil
	case render.FormatPNG:
		return renderDOT(ctx, dot, graphviz.PNG)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeRenderFailed, err, "render %s", format)
	}
	if buf.Len() == 0 {
		return nil, errs.New(errs.ErrCodeRenderFailed, "render %s: empty output", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales with its
// container; Graphviz emits pt-based width/height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

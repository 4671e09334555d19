package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/planviz/pkg/cache"
	"github.com/matzehuels/planviz/pkg/diagram"
	errs "github.com/matzehuels/planviz/pkg/errors"
	"github.com/matzehuels/planviz/pkg/feature"
	"github.com/matzehuels/planviz/pkg/observability"
	"github.com/matzehuels/planviz/pkg/plan"
	"github.com/matzehuels/planviz/pkg/render"
	"github.com/matzehuels/planviz/pkg/render/nodelink"
)

const artifactKeyType = "artifact"

// Runner executes the pipeline with caching.
//
// The Runner holds no per-run state, so one Runner can serve any number of
// runs.
type Runner struct {
	Cache    cache.Cache
	Renderer render.Renderer
	Logger   *log.Logger
}

// NewRunner creates a runner.
// If c is nil, a NullCache is used (caching disabled).
// If renderer is nil, the in-process Graphviz renderer is used.
func NewRunner(c cache.Cache, renderer render.Renderer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if renderer == nil {
		renderer = nodelink.NewGraphviz()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Renderer: renderer,
		Logger:   logger,
	}
}

// Execute runs the full pipeline and writes the artifact.
// Nothing is written unless every earlier stage succeeded.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result, err := r.detect(ctx, opts)
	if err != nil {
		return nil, err
	}

	spec, err := r.Assemble(result.Features)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	result.Spec = spec
	result.Stats.NodeCount = len(spec.Nodes)
	result.Stats.EdgeCount = len(spec.Edges)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := opts.RenderFormat()
	renderStart := time.Now()
	data, hit, err := r.RenderWithCacheInfo(ctx, spec, format, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Format = format
	result.Artifact = data
	result.CacheHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered diagram",
		"format", format,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"bytes", len(data),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	path, err := render.WriteArtifact(opts.OutputPath(), data)
	if err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	result.OutputPath = path
	return result, nil
}

// Detect loads the plan and derives the feature set without rendering.
func (r *Runner) Detect(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)
	return r.detect(ctx, opts)
}

func (r *Runner) detect(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID[:8])

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.PlanPath)
	loadStart := time.Now()
	doc, vars, err := r.Load(opts)
	result.Stats.LoadTime = time.Since(loadStart)
	hooks.OnLoadComplete(ctx, opts.PlanPath, resourceCount(doc), result.Stats.LoadTime, err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Document = doc
	result.Variables = vars
	result.Stats.ResourceCount = len(doc.Resources)

	logger.Info("loaded plan",
		"path", opts.PlanPath,
		"resources", len(doc.Resources),
		"variables", len(vars),
		"duration", result.Stats.LoadTime)

	result.Features = feature.Detect(doc.Resources, vars, feature.WithLogger(logger))
	enabled := result.Features.Enabled()
	hooks.OnDetectComplete(ctx, enabled)
	logger.Info("detected features", "enabled", enabled)

	return result, nil
}

// Load reads the plan and merges in the var file, if any.
func (r *Runner) Load(opts Options) (*plan.Document, map[string]plan.Variable, error) {
	doc, err := plan.Load(opts.PlanPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.VarFile == "" {
		return doc, doc.Variables, nil
	}
	extra, err := plan.LoadVarFile(opts.VarFile)
	if err != nil {
		return nil, nil, err
	}
	return doc, doc.MergeVariables(extra), nil
}

// Assemble builds the diagram for fs and checks it is well-formed.
func (r *Runner) Assemble(fs feature.Set) (*diagram.Spec, error) {
	spec := diagram.Assemble(fs)
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// RenderWithCacheInfo renders spec, consulting the cache first unless
// refresh is set. The bool result reports a cache hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, spec *diagram.Spec, format render.Format, refresh bool) ([]byte, bool, error) {
	key := cache.ArtifactKey(string(format), spec)

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit && len(data) > 0 {
			observability.Cache().OnCacheHit(ctx, artifactKeyType)
			return data, true, nil
		} else if err != nil {
			r.log().Warn("cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, artifactKeyType)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, string(format), len(spec.Nodes))
	start := time.Now()
	data, err := r.Renderer.Render(ctx, spec, format)
	if err == nil && len(data) == 0 {
		err = fmt.Errorf("renderer returned no data")
	}
	if err != nil && errs.GetCode(err) == "" {
		err = errs.Wrap(errs.ErrCodeRenderFailed, err, "render %s", format)
	}
	hooks.OnRenderComplete(ctx, string(format), len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		r.log().Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, artifactKeyType, len(data))
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.log()
	}
}

func (r *Runner) log() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

func resourceCount(doc *plan.Document) int {
	if doc == nil {
		return 0
	}
	return len(doc.Resources)
}

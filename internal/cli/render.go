package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planviz/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts    pipeline.Options
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the architecture diagram from a Terraform plan",
		Long: `Render the architecture diagram from a Terraform plan.

The plan is the JSON written by "terraform show -json". A missing plan file
renders a diagram with only the uploader, so the command can run before the
first "terraform plan".`,
		Example: `  terraform show -json tfplan > ../plan.json
  planviz render
  planviz render --plan plan.json -f svg -o docs/architecture`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.config.apply(cmd.Flags(), &opts)
			return c.runRender(cmd.Context(), opts, c.config.noCache(cmd.Flags(), noCache))
		},
	}

	addInputFlags(cmd, &opts)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output path; the format extension is appended (default "+pipeline.DefaultOutput+")")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "output format: png (default), svg, dot")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the rendered-artifact cache")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even if a cached artifact exists")

	return cmd
}

// addInputFlags registers the flags shared by every command that reads a plan.
func addInputFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.PlanPath, "plan", "", "path to terraform show -json output (default ../plan.json)")
	cmd.Flags().StringVar(&opts.VarFile, "var-file", "", "Terraform .tfvars file supplying variables the plan lacks")
}

// runRender executes the full pipeline and reports the written file.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, noCache bool) error {
	if err := pipeline.ValidateFormat(opts.Format); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, "Rendering diagram...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done("Pipeline finished")

	printSuccess("Diagram rendered")
	printFile(result.OutputPath)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheHit)
	if enabled := result.Features.Enabled(); len(enabled) == 0 {
		printDetail("No features detected; only the uploader is drawn")
	}
	return nil
}

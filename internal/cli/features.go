package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planviz/pkg/pipeline"
)

// featuresCommand creates the features command.
func (c *CLI) featuresCommand() *cobra.Command {
	var (
		opts    pipeline.Options
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "features",
		Short: "Show which features the plan deploys",
		Example: `  planviz features
  planviz features --plan plan.json --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.config.apply(cmd.Flags(), &opts)
			return c.runFeatures(cmd.Context(), cmd.OutOrStdout(), opts, jsonOut)
		},
	}

	addInputFlags(cmd, &opts)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the feature set as JSON")

	return cmd
}

func (c *CLI) runFeatures(ctx context.Context, w io.Writer, opts pipeline.Options, jsonOut bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts.Logger = c.Logger
	result, err := runner.Detect(ctx, opts)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Features)
	}

	fmt.Fprintln(w, renderFeatureTable(result.Features))
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("%d resources in %s", result.Stats.ResourceCount, opts.PlanPath)))
	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planviz/pkg/pipeline"
	"github.com/matzehuels/planviz/pkg/render/nodelink"
)

// dotCommand creates the dot command, which prints DOT source to stdout.
func (c *CLI) dotCommand() *cobra.Command {
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:     "dot",
		Short:   "Print the diagram as Graphviz DOT source",
		Example: `  planviz dot | dot -Tpdf > architecture.pdf`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.config.apply(cmd.Flags(), &opts)
			return c.runDOT(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	addInputFlags(cmd, &opts)
	return cmd
}

func (c *CLI) runDOT(ctx context.Context, w io.Writer, opts pipeline.Options) error {
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
	spec, err := runner.Assemble(result.Features)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, nodelink.ToDOT(spec))
	return err
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/barbell/pkg/pipeline"
)

// traceCommand creates the trace command, which draws the greedy walk as
// a Graphviz diagram.
func (c *CLI) traceCommand() *cobra.Command {
	var (
		flags   loadFlags
		format  string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "trace [target]",
		Short: "Diagram how the plates were picked",
		Long: `Diagram how the plates were picked.

Each node is one denomination the calculator considered, heaviest first,
with the pairs needed, available and taken and the weight left after it.
Use -f dot to get the Graphviz source.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if err := pipeline.ValidateTraceFormat(format); err != nil {
				return err
			}

			ctx := cmd.Context()
			p, closePrefs := c.bestEffortPrefs(ctx)
			defer closePrefs()

			in, err := c.resolveLoad(ctx, cmd, args, flags, p)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts := in.options()
			opts.Logger = c.Logger

			spinner := newSpinner(ctx, "Rendering trace...")
			spinner.Start()
			data, cached, err := runner.Trace(ctx, opts, format)
			if err != nil {
				spinner.StopWithError("Trace failed")
				return fmt.Errorf("trace: %w", err)
			}
			spinner.Stop()

			loggerFromContext(ctx).Debug("trace rendered", "format", format, "bytes", len(data), "cached", cached)

			return writeArtifacts(ctx, artifactWriteParams{
				artifacts: map[string][]byte{format: data},
				formats:   []string{format},
				base:      defaultBase(in.Target) + "-trace",
				output:    output,
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatSVG, "output format: svg, png, pdf, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; - for stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

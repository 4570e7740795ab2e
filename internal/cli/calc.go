package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/barbell/pkg/pipeline"
	"github.com/matzehuels/barbell/pkg/plates"
)

// noMatchMessage is shown when the inventory cannot make the target.
const noMatchMessage = "No exact match with current inventory."

// calcCommand creates the calc command.
func (c *CLI) calcCommand() *cobra.Command {
	var (
		flags  loadFlags
		asJSON bool
		steps  bool
	)

	cmd := &cobra.Command{
		Use:   "calc [target]",
		Short: "Work out which plates to load for a target weight",
		Long: `Work out which plates to load for a target weight.

Plates are picked heaviest first for one side of the bar; the other side
mirrors it. Without --plates the saved form state is used, or four pairs of
every standard plate.

Examples:
  barbell calc 225
  barbell calc 185 --bar 35 --plates 45=2,25=2,10=1
  barbell calc 315 --quick --save`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, closePrefs := c.bestEffortPrefs(ctx)
			defer closePrefs()

			in, err := c.resolveLoad(ctx, cmd, args, flags, p)
			if err != nil {
				return err
			}
			loggerFromContext(ctx).Debug("calculating",
				"target", in.Target, "bar", in.Bar, "plates", in.Plates.String(), "source", in.Source)

			res := pipeline.Calculate(ctx, in.options())
			if asJSON {
				return writeCalcJSON(in, res)
			}
			printCalc(in, res, steps)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&steps, "steps", false, "show each step of the greedy walk")

	return cmd
}

// calcOutput is the --json document.
type calcOutput struct {
	Target        float64          `json:"target"`
	Bar           float64          `json:"bar"`
	Plates        plates.Inventory `json:"plates"`
	Result        plates.Layout    `json:"result"`
	Loaded        map[string]int   `json:"loaded"`
	PerSideWeight float64          `json:"per_side_weight"`
	Message       string           `json:"message,omitempty"`
}

func writeCalcJSON(in load, res plates.Layout) error {
	loaded := make(map[string]int, len(res.Loaded()))
	for d, n := range res.Loaded() {
		loaded[d.String()] = n
	}
	out := calcOutput{
		Target:        in.Target,
		Bar:           in.Bar,
		Plates:        in.Plates,
		Result:        res,
		Loaded:        loaded,
		PerSideWeight: res.PerSideWeight(),
	}
	if !res.OK {
		out.Message = noMatchMessage
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printCalc(in load, res plates.Layout, steps bool) {
	if res.OK {
		printSuccess("%s: %s", StyleNumber.Render(formatWeight(in.Target)), res.Summary())
	} else {
		printWarning("%s", noMatchMessage)
		if res.Remainder < 0 {
			printDetail("the bar alone is %s over the target", formatWeight(-2*res.Remainder))
		} else {
			printDetail("%s per side left over", formatWeight(res.Remainder))
		}
	}
	printKeyValue("Bar", formatWeight(in.Bar))
	printKeyValue("Plates", in.Source)
	fmt.Println(plateTable(in.Plates, &res))
	printLoadStats(res, false)

	if steps {
		printNewline()
		for _, s := range res.Steps {
			printDetail("%-4s need %d, have %d, take %d → %s left",
				s.Denomination, s.Needed, s.Available, s.Taken, formatWeight(s.Remaining))
		}
	}
}

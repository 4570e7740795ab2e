package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/barbell/pkg/prefs"
)

// stateCommand creates the saved form state command.
func (c *CLI) stateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect or clear the remembered target, bar and plates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the saved form state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, closePrefs := c.bestEffortPrefs(cmd.Context())
			defer closePrefs()

			st := p.LoadState(cmd.Context())
			if st == nil {
				printInfo("No saved state")
				printNextStep("Save one", appName+" calc 225 --save")
				return nil
			}
			printState(*st)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget the saved form state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, closePrefs, err := c.requirePrefs(cmd.Context())
			defer closePrefs()
			if err != nil {
				return err
			}
			p.ClearState(cmd.Context())
			printSuccess("Saved state cleared")
			return nil
		},
	})

	return cmd
}

func printState(st prefs.FormState) {
	fmt.Println(StyleTitle.Render("Saved state"))
	printKeyValue("Target", st.Target)
	printKeyValue("Bar", st.Bar)
	printKeyValue("Zoom", fmt.Sprintf("%d%%", st.Zoom))
	fmt.Println(plateTable(st.Inventory(), nil))
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/barbell/pkg/errors"
	"github.com/matzehuels/barbell/pkg/io"
	"github.com/matzehuels/barbell/pkg/plates"
	"github.com/matzehuels/barbell/pkg/prefs"
)

// stockCommand creates the quick-stock management command.
func (c *CLI) stockCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Manage the quick-stock preset",
		Long: `Manage the quick-stock preset.

The quick stock is a saved inventory you can load with --quick (or the
Quick stock button in the web page and TUI).`,
	}

	cmd.AddCommand(c.stockShowCommand())
	cmd.AddCommand(c.stockSaveCommand())
	cmd.AddCommand(c.stockResetCommand())
	cmd.AddCommand(c.stockImportCommand())
	cmd.AddCommand(c.stockExportCommand())

	return cmd
}

// requirePrefs opens preference storage and fails when persistence is off.
func (c *CLI) requirePrefs(ctx context.Context) (*prefs.Prefs, func(), error) {
	p, closeFn, err := c.openPrefs(ctx)
	if err != nil {
		return nil, closeFn, err
	}
	if !p.Enabled() {
		closeFn()
		return nil, func() {}, errors.New(errors.ErrCodeInvalidStorage, "preferences are disabled (storage backend %q)", c.Config.Storage.Backend)
	}
	return p, closeFn, nil
}

func (c *CLI) stockShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the quick-stock preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, closePrefs := c.bestEffortPrefs(cmd.Context())
			defer closePrefs()

			inv := p.LoadQuickStock(cmd.Context()).Inventory()
			fmt.Println(StyleTitle.Render("Quick stock"))
			fmt.Println(plateTable(inv, nil))
			printDetail("%s", inv.String())
			return nil
		},
	}
}

func (c *CLI) stockSaveCommand() *cobra.Command {
	var platesStr string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save plates as the quick-stock preset",
		Long: `Save plates as the quick-stock preset.

Without --plates the inventory from the saved form state is used, the same
as pressing "Save as quick stock" in the web page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, closePrefs, err := c.requirePrefs(ctx)
			defer closePrefs()
			if err != nil {
				return err
			}

			var inv plates.Inventory
			if platesStr != "" {
				if inv, err = plates.ParseInventory(platesStr); err != nil {
					return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse --plates")
				}
			} else if st := p.LoadState(ctx); st != nil {
				inv = st.Inventory()
			} else {
				inv = prefs.DefaultFormState().Inventory()
			}

			p.SaveQuickStock(ctx, prefs.PresetFrom(inv))
			printSuccess("Quick stock saved")
			printDetail("%s", p.LoadQuickStock(ctx).Inventory().String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&platesStr, "plates", "p", "", "pairs to save, e.g. 45=4,25=2")
	return cmd
}

func (c *CLI) stockResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default quick-stock preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, closePrefs, err := c.requirePrefs(ctx)
			defer closePrefs()
			if err != nil {
				return err
			}
			p.SaveQuickStock(ctx, prefs.DefaultQuickStock())
			printSuccess("Quick stock reset")
			printDetail("%s", prefs.DefaultQuickStock().Inventory().String())
			return nil
		},
	}
}

func (c *CLI) stockImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load the quick-stock preset from a JSON, TOML or YAML file",
		Long: `Load the quick-stock preset from a JSON, TOML or YAML file.

The file maps plate weights to pairs:

  # plates.toml
  bar = 45.0
  [plates]
  "45" = 4
  "25" = 2

Only the standard plates (45, 35, 25, 10, 5, 2.5) are kept. A bar weight in
the file is stored in the form state.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeInventoryFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := io.Import(args[0])
			if err != nil {
				return err
			}

			p, closePrefs, err := c.requirePrefs(ctx)
			defer closePrefs()
			if err != nil {
				return err
			}

			p.SaveQuickStock(ctx, prefs.PresetFrom(doc.Plates))
			if doc.Bar > 0 {
				st := prefs.DefaultFormState()
				if saved := p.LoadState(ctx); saved != nil {
					st = *saved
				}
				st.Bar = formatWeight(doc.Bar)
				p.SaveState(ctx, st)
			}

			printSuccess("Imported quick stock")
			printFile(args[0])
			for _, d := range doc.Plates.Denominations() {
				if !plates.IsDefault(d) {
					printWarning("Skipped non-standard plate %s", d)
				}
			}
			return nil
		},
	}
}

func (c *CLI) stockExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write the quick-stock preset to a JSON, TOML or YAML file",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeInventoryFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, closePrefs := c.bestEffortPrefs(ctx)
			defer closePrefs()

			doc := io.Document{
				Bar:    c.Config.Bar,
				Plates: p.LoadQuickStock(ctx).Inventory(),
			}
			if st := p.LoadState(ctx); st != nil {
				doc.Bar = st.BarWeight()
			}
			if err := io.Export(doc, args[0]); err != nil {
				return err
			}
			printSuccess("Exported quick stock")
			printFile(args[0])
			return nil
		},
	}
}

package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/barbell/pkg/errors"
	"github.com/matzehuels/barbell/pkg/pipeline"
	"github.com/matzehuels/barbell/pkg/plates"
	"github.com/matzehuels/barbell/pkg/prefs"
)

// Inventory sources, reported in verbose output.
const (
	sourceFlag  = "--plates"
	sourceQuick = "quick stock"
	sourceState = "saved state"
	sourceFull  = "default"
)

// loadFlags are the input flags shared by calc, render and trace.
type loadFlags struct {
	bar    float64
	plates string
	quick  bool
	save   bool
}

func (f *loadFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.bar, "bar", pipeline.DefaultBar, "bar weight (overrides saved state and config)")
	cmd.Flags().StringVarP(&f.plates, "plates", "p", "", "available pairs, e.g. 45=4,25=2,2.5=1")
	cmd.Flags().BoolVarP(&f.quick, "quick", "q", false, "use the saved quick-stock preset")
	cmd.Flags().BoolVar(&f.save, "save", false, "remember target, bar and plates for next time (standard plates only)")
}

// load is a resolved calculation input.
type load struct {
	Target float64
	Bar    float64
	Plates plates.Inventory
	Source string
}

// resolveLoad combines the positional target, flags and saved state.
//
// Precedence: explicit flags, then the saved form state, then defaults
// (config bar, target 225, four pairs of every plate). --save stores the
// resolved input as the new form state.
func (c *CLI) resolveLoad(ctx context.Context, cmd *cobra.Command, args []string, f loadFlags, p *prefs.Prefs) (load, error) {
	saved := p.LoadState(ctx)
	st := prefs.DefaultFormState()
	in := load{Source: sourceFull}
	if saved != nil {
		st, in.Source = *saved, sourceState
	}
	in.Target = st.TargetWeight()
	in.Plates = st.Inventory()
	in.Bar = f.bar
	if !cmd.Flags().Changed("bar") {
		in.Bar = c.Config.Bar
		if saved != nil {
			in.Bar = st.BarWeight()
		}
	}

	if len(args) > 0 {
		t, err := errors.ParseWeight("target", args[0])
		if err != nil {
			return in, err
		}
		in.Target = t
	}
	if err := errors.ValidateWeight("bar", in.Bar); err != nil {
		return in, err
	}

	switch {
	case f.plates != "":
		inv, err := plates.ParseInventory(f.plates)
		if err != nil {
			return in, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse --plates")
		}
		in.Plates, in.Source = inv, sourceFlag
	case f.quick:
		in.Plates, in.Source = p.LoadQuickStock(ctx).Inventory(), sourceQuick
	}
	if err := pipeline.ValidateInventory(in.Plates); err != nil {
		return in, err
	}

	if f.save {
		if msg := unsavedPlatesWarning(in.Plates); msg != "" {
			printWarning("%s", msg)
		}
		p.SaveState(ctx, in.formState(st.Zoom))
	}
	return in, nil
}

// formState converts the input back to the persisted form.
func (in load) formState(zoom int) prefs.FormState {
	st := prefs.DefaultFormState()
	st.Target = strconv.FormatFloat(in.Target, 'f', -1, 64)
	st.Bar = strconv.FormatFloat(in.Bar, 'f', -1, 64)
	st.Plates = in.Plates.ToStrings()
	if zoom != 0 {
		st.Zoom = zoom
	}
	return st
}

func (in load) options() pipeline.Options {
	return pipeline.Options{
		Target: in.Target,
		Bar:    in.Bar,
		Plates: in.Plates,
	}
}

// unsavedPlatesWarning names the plates of inv a saved form cannot hold,
// or returns "" when every plate fits.
func unsavedPlatesWarning(inv plates.Inventory) string {
	dropped := inv.Unsupported()
	if len(dropped) == 0 {
		return ""
	}
	return "Saved form keeps only " + denominationList(plates.DefaultPlates) +
		" lb plates; not saving " + denominationList(dropped) + "."
}

func denominationList(ds []plates.Denomination) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.String()
	}
	return strings.Join(parts, "/")
}

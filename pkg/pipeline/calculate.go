package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/barbell/pkg/observability"
	"github.com/matzehuels/barbell/pkg/plates"
)

// Calculate runs the greedy plate selection and reports it to the
// pipeline hooks. It never fails; an inexact load is reported through
// Layout.OK.
func Calculate(ctx context.Context, opts Options) plates.Layout {
	start := time.Now()
	res := plates.ComputeLayout(opts.Target, opts.Bar, opts.Plates)
	observability.Pipeline().OnCalculate(ctx, res.OK, time.Since(start))
	return res
}

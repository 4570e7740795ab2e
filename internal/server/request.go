package server

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/barbell/pkg/errors"
	"github.com/matzehuels/barbell/pkg/pipeline"
	"github.com/matzehuels/barbell/pkg/plates"
	"github.com/matzehuels/barbell/pkg/prefs"
)

// platePrefix starts every per-plate query parameter, as in p45=4.
const platePrefix = "p"

// optionsFromQuery builds pipeline options from calculation query
// parameters. Values are checked strictly; the lenient form coercion is
// only applied to the HTML form. quick supplies the inventory when the
// query names no plates.
func (s *Server) optionsFromQuery(q url.Values, quick func() plates.Inventory) (pipeline.Options, error) {
	opts := pipeline.Options{
		Bar:   s.opts.Bar,
		Style: s.opts.Style,
		Unit:  s.opts.Unit,
		Title: q.Get("title"),
	}

	var err error
	if opts.Target, err = errors.ParseWeight("target", q.Get("target")); err != nil {
		return opts, err
	}
	if q.Has("bar") {
		if opts.Bar, err = errors.ParseWeight("bar", q.Get("bar")); err != nil {
			return opts, err
		}
	}
	if v := q.Get("style"); v != "" {
		opts.Style = strings.ToLower(v)
	}
	if v := q.Get("unit"); v != "" {
		opts.Unit = v
	}
	if v := q.Get("scale"); v != "" {
		if opts.Scale, err = strconv.ParseFloat(v, 64); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale must be a number, got %q", v)
		}
	}

	inv, err := inventoryFromQuery(q)
	if err != nil {
		return opts, err
	}
	if inv == nil {
		inv = quick()
	}
	opts.Plates = inv
	return opts, nil
}

// inventoryFromQuery collects the p<weight> parameters. It returns nil when
// there are none.
func inventoryFromQuery(q url.Values) (plates.Inventory, error) {
	var inv plates.Inventory
	for key, vals := range q {
		raw, ok := strings.CutPrefix(key, platePrefix)
		if !ok {
			continue
		}
		d, ok := plates.ParseDenomination(raw)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid plate weight in parameter %q", key)
		}
		n, err := strconv.Atoi(strings.TrimSpace(vals[0]))
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "pairs of %s must be a whole number, got %q", d, vals[0])
		}
		if inv == nil {
			inv = make(plates.Inventory)
		}
		inv[d] = n
	}
	return inv, nil
}

// stateQuery encodes a form state as calculation query parameters.
func stateQuery(st prefs.FormState, style string) url.Values {
	q := url.Values{}
	q.Set("target", fmt.Sprint(st.TargetWeight()))
	q.Set("bar", fmt.Sprint(st.BarWeight()))
	inv := st.Inventory()
	for _, d := range plates.DefaultPlates {
		q.Set(platePrefix+d.String(), strconv.Itoa(inv.Pairs(d)))
	}
	if style != "" {
		q.Set("style", style)
	}
	return q
}

// stateFromForm reads the calculator form, applying the same fallbacks as
// leaving a field: an empty target is 0, an empty bar is 45, and pair
// counts are normalized. Fields missing from the form keep prev's value.
func stateFromForm(form url.Values, prev prefs.FormState) prefs.FormState {
	st := prefs.FormState{
		Target: prev.Target,
		Bar:    prev.Bar,
		Plates: make(map[string]string, len(plates.DefaultPlates)),
		Zoom:   prev.Zoom,
	}
	if form.Has("target") {
		st.Target = strings.TrimSpace(form.Get("target"))
		if st.Target == "" {
			st.Target = "0"
		}
	}
	if form.Has("bar") {
		st.Bar = strings.TrimSpace(form.Get("bar"))
		if st.Bar == "" {
			st.Bar = prefs.DefaultBar
		}
	}
	for _, d := range plates.DefaultPlates {
		key := d.String()
		raw, ok := prev.Plates[key]
		if name := platePrefix + key; form.Has(name) {
			raw, ok = form.Get(name), true
		}
		if !ok {
			raw = "0"
		}
		st.Plates[key] = strconv.Itoa(plates.ParseNonNegInt(raw, 0))
	}
	return st
}

// Package pipeline provides the calculate → render pipeline shared by the
// barbell CLI and HTTP server.
//
// By centralizing this logic, both entry points validate input the same
// way, pick the same defaults, and share the artifact cache.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Calculate: greedy plate selection with [plates.ComputeLayout]
//  2. Render: geometry plus one artifact per requested format (SVG, PNG,
//     PDF, JSON)
//
// The calculation is cheap and never cached. Rendered artifacts are cached
// under a key derived from the calculation inputs and the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Target:  225,
//	    Bar:     45,
//	    Plates:  plates.QuickStock(),
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/barbell/pkg/cache"
	"github.com/matzehuels/barbell/pkg/errors"
	"github.com/matzehuels/barbell/pkg/plates"
	"github.com/matzehuels/barbell/pkg/render/barbell/layout"
	"github.com/matzehuels/barbell/pkg/render/barbell/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultBar is the default bar weight.
	DefaultBar = 45.0

	// DefaultTarget is the target shown before the user enters one.
	DefaultTarget = 225.0

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 1.0

	// MaxScale bounds PNG output size.
	MaxScale = 4.0

	// DefaultUnit labels weights in the badge style heading.
	DefaultUnit = "lb"
)

// DefaultStyle is the default visual style.
const DefaultStyle = styles.NameContrast

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported barbell output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidTraceFormats is the set of supported trace diagram formats.
var ValidTraceFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
	FormatDOT: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Calculate options
	Target float64          `json:"target"`
	Bar    float64          `json:"bar"`
	Plates plates.Inventory `json:"plates,omitempty"` // nil selects the quick stock

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Style     string   `json:"style,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	Unit      string   `json:"unit,omitempty"`
	EmbedFont bool     `json:"embed_font,omitempty"`
	Title     string   `json:"title,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Calculation is the greedy plate selection.
	Calculation plates.Layout

	// Layout is the geometry the artifacts were drawn from.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks whether rendering hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PlateCount    int
	CalculateTime time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTraceFormat checks that a trace format is valid.
func ValidateTraceFormat(format string) error {
	if !ValidTraceFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid trace format: %q (must be one of: svg, png, pdf, dot)", format)
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !styles.IsValid(style) {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: %s)", style, strings.Join(styles.Names(), ", "))
	}
	return nil
}

// ValidateInventory checks every pair count in inv.
func ValidateInventory(inv plates.Inventory) error {
	for d, n := range inv {
		if !(d > 0) {
			return errors.New(errors.ErrCodeInvalidInput, "invalid plate weight: %v", float64(d))
		}
		if err := errors.ValidatePairs(d.String(), n); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForCalculate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForCalculate checks the calculation inputs.
func (o *Options) ValidateForCalculate() error {
	if err := errors.ValidateWeight("target", o.Target); err != nil {
		return err
	}
	if err := errors.ValidateWeight("bar", o.Bar); err != nil {
		return err
	}
	if o.Plates == nil {
		o.Plates = plates.QuickStock()
	}
	if err := ValidateInventory(o.Plates); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	formats := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	o.Formats = formats
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Unit == "" {
		o.Unit = DefaultUnit
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be between 0 and %v", MaxScale)
	}
	return ValidateStyle(o.Style)
}

// ResolveStyle returns the style named by o.Style, carrying o.Unit into
// styles that print it.
func (o *Options) ResolveStyle() (styles.Style, error) {
	s, err := styles.ByName(o.Style)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStyle, err, "resolve style")
	}
	if b, ok := s.(styles.Badge); ok {
		b.Unit = o.Unit
		return b, nil
	}
	return s, nil
}

// LayoutKeyOpts returns cache key options for the calculation inputs.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Target:    o.Target,
		Bar:       o.Bar,
		Inventory: o.Plates.String(),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Style:  o.Style,
		Format: format,
		Title:  o.Title,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	if format == FormatSVG {
		k.EmbedFont = o.EmbedFont
	}
	if o.Style == styles.NameBadge {
		k.Style += ":" + o.Unit
	}
	return k
}

// String describes the calculation inputs for log lines.
func (o *Options) String() string {
	return fmt.Sprintf("target=%v bar=%v plates=%s", o.Target, o.Bar, o.Plates)
}

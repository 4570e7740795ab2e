package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/barbell/pkg/errors"
	"github.com/matzehuels/barbell/pkg/pipeline"
	"github.com/matzehuels/barbell/pkg/render"
	"github.com/matzehuels/barbell/pkg/render/barbell/styles"
)

// renderCommand creates the render command for drawing a loaded bar.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      loadFlags
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [target]",
		Short: "Draw the loaded barbell as SVG, PNG, PDF or JSON",
		Long: `Draw the loaded barbell as SVG, PNG, PDF or JSON.

Plates are picked exactly like 'calc'. When the inventory cannot make the
target, an empty bar is drawn and a warning printed.

PDF output needs rsvg-convert (librsvg) on PATH; PNG is rendered natively.
Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			c.setCLIDefaults(&opts)
			if err := pipeline.ValidateStyle(opts.Style); err != nil {
				return err
			}
			return c.runRender(cmd, args, flags, opts, output, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: "+strings.Join(styles.Names(), ", ")+" (default from config)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG scale factor (1-4)")
	cmd.Flags().StringVar(&opts.Unit, "unit", "", "unit label for the badge style")
	cmd.Flags().BoolVar(&opts.EmbedFont, "embed-font", false, "embed the label font in SVG output")
	cmd.Flags().StringVar(&opts.Title, "title", "", "SVG document title")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender resolves the load and renders it through the pipeline runner.
func (c *CLI) runRender(cmd *cobra.Command, args []string, flags loadFlags, opts pipeline.Options, output string, noCache bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	p, closePrefs := c.bestEffortPrefs(ctx)
	defer closePrefs()

	in, err := c.resolveLoad(ctx, cmd, args, flags, p)
	if err != nil {
		return err
	}
	opts.Target, opts.Bar, opts.Plates = in.Target, in.Bar, in.Plates

	if slices.Contains(opts.Formats, pipeline.FormatPDF) && !render.Available() {
		return errors.New(errors.ErrCodeUnsupported, "pdf output needs rsvg-convert on PATH")
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger.Debug("rendering", "opts", opts.String(), "style", opts.Style, "formats", opts.Formats)

	spinner := newSpinner(ctx, "Rendering barbell...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if !result.Calculation.OK {
		printWarning("%s Drawing an empty bar.", noMatchMessage)
	}

	return writeArtifacts(ctx, artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		base:      defaultBase(in.Target),
		output:    output,
		summary: func() {
			printLoadStats(result.Calculation, result.CacheInfo.RenderHit)
		},
	})
}

// artifactWriteParams describes rendered outputs to write to disk.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	base      string // used when output is empty
	output    string
	summary   func()
}

// writeArtifacts writes each artifact to its own file. A single artifact
// goes to output verbatim (stdout for "-"); multiple artifacts use output
// as a base path with the format as extension.
func writeArtifacts(ctx context.Context, p artifactWriteParams) error {
	logger := loggerFromContext(ctx)

	if len(p.formats) == 1 && p.output == "-" {
		_, err := os.Stdout.Write(p.artifacts[p.formats[0]])
		return err
	}

	paths := outputPaths(p.formats, p.output, p.base)
	for _, format := range p.formats {
		path := paths[format]
		if err := writeFile(path, p.artifacts[format]); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debug("wrote artifact", "path", path, "bytes", len(p.artifacts[format]))
	}

	printSuccess("Render complete")
	for _, format := range p.formats {
		printFile(paths[format])
	}
	if p.summary != nil {
		p.summary()
	}
	return nil
}

// outputPaths maps each format to its output file.
func outputPaths(formats []string, output, base string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	b := basePath(output, base)
	for _, f := range formats {
		paths[f] = b + "." + f
	}
	return paths
}

// basePath strips a known format extension from output, falling back to
// base when output is empty.
func basePath(output, base string) string {
	if output == "" {
		return base
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] || pipeline.ValidTraceFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// defaultBase names output files after the target, e.g. "barbell-225".
func defaultBase(target float64) string {
	return appName + "-" + formatWeight(target)
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// openOutput opens path for writing; an empty path or "-" means stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

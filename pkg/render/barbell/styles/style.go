package styles

import (
	"fmt"
	"strings"

	"github.com/matzehuels/barbell/pkg/render/barbell/layout"
	"github.com/matzehuels/barbell/pkg/render/canvas"
)

// Style defines the visual appearance of a barbell frame.
type Style interface {
	// Name is the identifier used on the command line and in URLs.
	Name() string
	// Metrics returns the geometry knobs the layout must be built with.
	Metrics() layout.Metrics
	// Paint draws l onto c. The caller resets c first.
	Paint(c canvas.Canvas, l layout.Layout)
}

const (
	NameContrast = "contrast"
	NameBadge    = "badge"
)

// Default returns the contrast style.
func Default() Style { return Contrast{} }

// Names lists the available styles.
func Names() []string { return []string{NameContrast, NameBadge} }

// ByName returns the style called name. An empty name selects the default.
func ByName(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameContrast:
		return Contrast{}, nil
	case NameBadge, "classic":
		return Badge{}, nil
	}
	return nil, fmt.Errorf("unknown style %q (available: %s)", name, strings.Join(Names(), ", "))
}

// IsValid reports whether name selects a style.
func IsValid(name string) bool {
	_, err := ByName(name)
	return err == nil
}

package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/barbell/pkg/pipeline"
	"github.com/matzehuels/barbell/pkg/plates"
	"github.com/matzehuels/barbell/pkg/prefs"
)

// Form styles
var (
	formLabelStyle = lipgloss.NewStyle().Foreground(colorGray).Width(10)
	formFocusStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	formValueStyle = lipgloss.NewStyle().Foreground(colorWhite)
	formDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	formErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	barStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	collarStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e5e7eb"))
)

// tuiCommand creates the interactive calculator.
func (c *CLI) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive plate calculator",
		Long: `Interactive plate calculator.

Type weights and pair counts; the plates update as you type. The form is
remembered between runs.

Keys:
  ↑/↓, tab   move between fields
  + / -      step the focused value
  b          set the bar to 45
  c          clear all plates
  a          apply the quick stock
  s          save plates as the quick stock
  esc, q     quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, closePrefs := c.bestEffortPrefs(ctx)
			defer closePrefs()

			m := NewCalcModel(ctx, p)
			final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(CalcModel); ok {
				p.SaveState(ctx, fm.State())
			}
			return nil
		},
	}
}

// =============================================================================
// CalcModel - Interactive calculator
// =============================================================================

type fieldKind int

const (
	fieldTarget fieldKind = iota
	fieldBar
	fieldPlate
)

type formField struct {
	kind  fieldKind
	denom plates.Denomination
	value string
}

func (f formField) label() string {
	switch f.kind {
	case fieldTarget:
		return "Target"
	case fieldBar:
		return "Bar"
	}
	return f.denom.String() + " lb"
}

// CalcModel is the bubbletea model for the interactive calculator.
type CalcModel struct {
	ctx    context.Context
	prefs  *prefs.Prefs
	fields []formField
	zoom   int
	Cursor int
	Result plates.Layout
	Status string
}

// NewCalcModel creates a calculator seeded from the saved form state.
func NewCalcModel(ctx context.Context, p *prefs.Prefs) CalcModel {
	st := prefs.DefaultFormState()
	if saved := p.LoadState(ctx); saved != nil {
		st = *saved
	}

	m := CalcModel{ctx: ctx, prefs: p, zoom: st.Zoom}
	m.fields = append(m.fields,
		formField{kind: fieldTarget, value: st.Target},
		formField{kind: fieldBar, value: st.Bar},
	)
	for _, d := range plates.DefaultPlates {
		v, ok := st.Plates[d.String()]
		if !ok {
			v = "0"
		}
		m.fields = append(m.fields, formField{kind: fieldPlate, denom: d, value: v})
	}
	m.recompute()
	return m
}

// State returns the form as it would be persisted.
func (m CalcModel) State() prefs.FormState {
	st := prefs.FormState{
		Plates: make(map[string]string, len(plates.DefaultPlates)),
		Zoom:   m.zoom,
	}
	for _, f := range m.fields {
		switch f.kind {
		case fieldTarget:
			st.Target = f.value
		case fieldBar:
			st.Bar = f.value
		case fieldPlate:
			st.Plates[f.denom.String()] = f.value
		}
	}
	return st
}

func (m *CalcModel) recompute() {
	st := m.State()
	m.Result = pipeline.Calculate(m.ctx, pipeline.Options{
		Target: st.TargetWeight(),
		Bar:    st.BarWeight(),
		Plates: st.Inventory(),
	})
}

// commit applies the on-blur fallbacks: empty target is 0, empty bar is 45,
// and plate counts are normalized.
func (m *CalcModel) commit(i int) {
	f := &m.fields[i]
	v := strings.TrimSpace(f.value)
	switch f.kind {
	case fieldTarget:
		if v == "" {
			v = "0"
		}
	case fieldBar:
		if v == "" {
			v = prefs.DefaultBar
		}
	case fieldPlate:
		v = fmt.Sprint(plates.ParseNonNegInt(v, 0))
	}
	f.value = v
}

func (m *CalcModel) setPlates(inv plates.Inventory) {
	for i := range m.fields {
		if m.fields[i].kind == fieldPlate {
			m.fields[i].value = fmt.Sprint(inv.Pairs(m.fields[i].denom))
		}
	}
}

func (m *CalcModel) step(delta int) {
	f := &m.fields[m.Cursor]
	switch f.kind {
	case fieldPlate:
		f.value = fmt.Sprint(max(0, plates.ParseNonNegInt(f.value, 0)+delta))
	default:
		fallback := 0.0
		if f.kind == fieldBar {
			fallback = pipeline.DefaultBar
		}
		v := max(0, plates.ParseNonNegFloat(f.value, fallback)+float64(delta)*5)
		f.value = formatWeight(v)
	}
}

func (m CalcModel) Init() tea.Cmd {
	return nil
}

func (m CalcModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.Status = ""
	switch s := key.String(); s {
	case "ctrl+c", "esc", "q":
		m.commit(m.Cursor)
		return m, tea.Quit
	case "up", "shift+tab", "k":
		m.commit(m.Cursor)
		m.Cursor = (m.Cursor - 1 + len(m.fields)) % len(m.fields)
	case "down", "tab", "enter", "j":
		m.commit(m.Cursor)
		m.Cursor = (m.Cursor + 1) % len(m.fields)
	case "backspace":
		f := &m.fields[m.Cursor]
		if f.value != "" {
			f.value = f.value[:len(f.value)-1]
		}
	case "+", "=":
		m.step(1)
	case "-", "_":
		m.step(-1)
	case "b":
		m.fields[1].value = prefs.DefaultBar
	case "c":
		m.setPlates(plates.EmptyStock())
		m.Status = "Plates cleared"
	case "a":
		m.setPlates(m.prefs.LoadQuickStock(m.ctx).Inventory())
		m.Status = "Quick stock applied"
	case "s":
		m.commit(m.Cursor)
		m.prefs.SaveQuickStock(m.ctx, prefs.PresetFrom(m.State().Inventory()))
		m.Status = "Quick stock saved"
		if !m.prefs.Enabled() {
			m.Status = "Preferences are disabled; quick stock not saved"
		}
	default:
		if isNumericKey(s, m.fields[m.Cursor].kind != fieldPlate) {
			m.fields[m.Cursor].value += s
		}
	}

	m.recompute()
	return m, nil
}

func isNumericKey(s string, allowDot bool) bool {
	if len(s) != 1 {
		return false
	}
	return (s[0] >= '0' && s[0] <= '9') || (allowDot && s[0] == '.')
}

func (m CalcModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Barbell Plate Calculator"))
	b.WriteString("\n")
	b.WriteString(formDimStyle.Render("↑/↓ move  +/- step  a apply quick stock  s save quick stock  c clear  q quit"))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		if f.kind == fieldPlate && i > 0 && m.fields[i-1].kind != fieldPlate {
			b.WriteString(formDimStyle.Render("Plate pairs available"))
			b.WriteString("\n")
		}
		cursor := "  "
		value := formValueStyle.Render(f.value)
		if i == m.Cursor {
			cursor = "▸ "
			value = formFocusStyle.Render(f.value + "▏")
		}
		label := formLabelStyle.Render(f.label())
		if f.kind == fieldPlate {
			label = swatch(f.denom) + " " + formLabelStyle.Width(7).Render(f.label())
		}
		b.WriteString(cursor + label + " " + value + "\n")
	}

	st := m.State()
	b.WriteString("\n")
	b.WriteString(formDimStyle.Render(fmt.Sprintf("Bar %s + Plates = Target %s",
		formatWeight(st.BarWeight()), formatWeight(st.TargetWeight()))))
	b.WriteString(formDimStyle.Render(fmt.Sprintf("   Total plates used: %d", m.Result.TotalPlates())))
	b.WriteString("\n")
	if m.Result.OK {
		b.WriteString("Per side: " + StyleHighlight.Render(m.Result.Summary()))
	} else {
		b.WriteString(formErrorStyle.Render(noMatchMessage))
	}
	b.WriteString("\n\n")
	b.WriteString(barbellLine(m.Result.Loaded()))
	b.WriteString("\n")

	if m.Status != "" {
		b.WriteString("\n" + StyleSuccess.Render(m.Status) + "\n")
	}
	return b.String()
}

// barbellLine draws the loaded bar on one line, heaviest plates next to the
// collars and mirrored on both sides. Only default plates are drawn.
func barbellLine(perSide map[plates.Denomination]int) string {
	var inner []string
	for _, d := range plates.DefaultPlates {
		for range perSide[d] {
			inner = append(inner, plateBlock(d))
		}
	}

	left := make([]string, len(inner))
	for i, p := range inner {
		left[len(inner)-1-i] = p
	}

	sleeve := barStyle.Render("══")
	collar := collarStyle.Render("▌")
	shaft := barStyle.Render(strings.Repeat("─", 12))
	return sleeve + strings.Join(left, "") + collar + shaft + collarStyle.Render("▐") + strings.Join(inner, "") + sleeve
}

func plateBlock(d plates.Denomination) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(plates.ColorFor(d))).
		Foreground(lipgloss.Color("#ffffff")).
		Bold(true).
		Padding(0, 1).
		Render(d.String())
}

package server

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/matzehuels/barbell/pkg/errors"
	"github.com/matzehuels/barbell/pkg/httputil"
	"github.com/matzehuels/barbell/pkg/pipeline"
	"github.com/matzehuels/barbell/pkg/plates"
	"github.com/matzehuels/barbell/pkg/prefs"
	"github.com/matzehuels/barbell/pkg/render/barbell/styles"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"weight": formatWeight,
}).ParseFS(templateFS, "templates/index.html"))

// Form actions posted by the page buttons.
const (
	actionUpdate    = "update"
	actionClear     = "clear"
	actionQuick     = "quick"
	actionSaveQuick = "save-quick"
	actionBar45     = "bar45"
	actionZoomIn    = "zoom-in"
	actionZoomOut   = "zoom-out"
)

// zoomStep is the zoom change per button press, in percent.
const zoomStep = 10

type plateField struct {
	Name  string
	Label string
	Value string
	Color string
}

type pageData struct {
	State       prefs.FormState
	Plates      []plateField
	Result      plates.Layout
	Summary     string
	TotalPlates int
	Message     string
	Invalid     bool
	Persist     bool
	Style       string
	Styles      []string
	Width       int
	RenderURL   string
	TraceURL    string
	Flash       string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	p, err := s.clientPrefs(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	st := prefs.DefaultFormState()
	if saved := p.LoadState(r.Context()); saved != nil {
		st = *saved
	}
	s.renderPage(w, r, p, st, r.URL.Query().Get("flash"))
}

// handlePageAction applies a form button, saves the form and redirects
// back to the page.
func (s *Server) handlePageAction(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	p, err := s.clientPrefs(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	ctx := r.Context()

	prev := prefs.DefaultFormState()
	if saved := p.LoadState(ctx); saved != nil {
		prev = *saved
	}
	st := stateFromForm(r.PostForm, prev)

	var flash string
	switch r.PostForm.Get("action") {
	case actionClear:
		st.Plates = plates.EmptyStock().ToStrings()
		flash = "Plates cleared"
	case actionQuick:
		st.Plates = p.LoadQuickStock(ctx).Inventory().ToStrings()
		flash = "Quick stock applied"
	case actionSaveQuick:
		p.SaveQuickStock(ctx, prefs.PresetFrom(st.Inventory()))
		flash = "Quick stock saved"
	case actionBar45:
		st.Bar = prefs.DefaultBar
	case actionZoomIn:
		st.Zoom = min(st.Zoom+zoomStep, prefs.MaxZoom)
	case actionZoomOut:
		st.Zoom = max(st.Zoom-zoomStep, prefs.MinZoom)
	}
	p.SaveState(ctx, st)

	if !p.Enabled() {
		// Nothing to redirect to; show the result directly.
		s.renderPage(w, r, p, st, flash)
		return
	}
	target := "/"
	if flash != "" {
		target += "?flash=" + url.QueryEscape(flash)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, p *prefs.Prefs, st prefs.FormState, flash string) {
	style := s.opts.Style
	if v := r.URL.Query().Get("style"); styles.IsValid(v) {
		style = v
	}

	data := pageData{
		State:   st,
		Persist: p.Enabled(),
		Style:   style,
		Styles:  styles.Names(),
		Width:   st.Zoom * 8,
		Flash:   flash,
	}

	// The form is lenient, the render endpoints are not: out-of-range
	// values get a message instead of a summary and a broken image.
	opts := pipeline.Options{
		Target: st.TargetWeight(),
		Bar:    st.BarWeight(),
		Plates: st.Inventory(),
	}
	if err := opts.ValidateForCalculate(); err != nil {
		data.Invalid = true
		data.Message = errors.UserMessage(err)
	} else {
		res := pipeline.Calculate(r.Context(), opts)
		data.Result = res
		data.TotalPlates = res.TotalPlates()
		if res.OK {
			data.Summary = res.Summary()
		} else {
			data.Message = noMatchMessage
		}
	}
	for _, d := range plates.DefaultPlates {
		data.Plates = append(data.Plates, plateField{
			Name:  platePrefix + d.String(),
			Label: d.String(),
			Value: st.Plates[d.String()],
			Color: plates.ColorFor(d),
		})
	}
	if !data.Invalid {
		q := stateQuery(st, style).Encode()
		data.RenderURL = "/render.svg?" + q
		data.TraceURL = "/api/trace.svg?" + q
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("render page", "error", err)
	}
}

func formatWeight(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/matzehuels/barbell/pkg/buildinfo"
	"github.com/matzehuels/barbell/pkg/errors"
	"github.com/matzehuels/barbell/pkg/httputil"
	"github.com/matzehuels/barbell/pkg/pipeline"
	"github.com/matzehuels/barbell/pkg/plates"
	"github.com/matzehuels/barbell/pkg/prefs"
)

// noMatchMessage is reported when the inventory cannot make the target.
const noMatchMessage = "No exact match with current inventory."

// maxBodyBytes bounds PUT bodies.
const maxBodyBytes = 64 << 10

var contentTypes = map[string]string{
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
}

// layoutResponse is the JSON body of /api/layout.
type layoutResponse struct {
	plates.Layout
	Target        float64 `json:"target"`
	Bar           float64 `json:"bar"`
	PerSideWeight float64 `json:"per_side_weight"`
	TotalPlates   int     `json:"total_plates"`
	Summary       string  `json:"summary,omitempty"`
	Message       string  `json:"message,omitempty"`
}

func newLayoutResponse(opts pipeline.Options, res plates.Layout) layoutResponse {
	out := layoutResponse{
		Layout:        res,
		Target:        opts.Target,
		Bar:           opts.Bar,
		PerSideWeight: res.PerSideWeight(),
		TotalPlates:   res.TotalPlates(),
	}
	if res.OK {
		out.Summary = res.Summary()
	} else {
		out.Message = noMatchMessage
	}
	return out
}

// requestOptions parses the calculation query of r for its client.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	p, err := s.clientPrefs(r)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts, err := s.optionsFromQuery(r.URL.Query(), func() plates.Inventory {
		return p.LoadQuickStock(r.Context()).Inventory()
	})
	opts.Logger = s.logger
	return opts, err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"storage": s.storage != nil,
		"build":   buildinfo.Get(),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err == nil {
		err = opts.ValidateForCalculate()
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	res := pipeline.Calculate(r.Context(), opts)
	httputil.WriteJSON(w, http.StatusOK, newLayoutResponse(opts, res))
}

func (s *Server) handleRender(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := s.requestOptions(r)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		opts.Formats = []string{format}

		res, err := s.clientRunner(r).Execute(r.Context(), opts)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		writeArtifact(w, contentTypes[format], res.Artifacts[format], res.CacheInfo.RenderHit)
	}
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	data, hit, err := s.clientRunner(r).Trace(r.Context(), opts, pipeline.FormatSVG)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeArtifact(w, contentTypes[pipeline.FormatSVG], data, hit)
}

func writeArtifact(w http.ResponseWriter, contentType string, data []byte, hit bool) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// persistentPrefs is clientPrefs for endpoints that only make sense with
// storage.
func (s *Server) persistentPrefs(r *http.Request) (*prefs.Prefs, error) {
	p, err := s.clientPrefs(r)
	if err != nil {
		return nil, err
	}
	if !p.Enabled() {
		return nil, errors.New(errors.ErrCodeInvalidStorage, "preferences are disabled on this server")
	}
	return p, nil
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	p, err := s.persistentPrefs(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	st := p.LoadState(r.Context())
	if st == nil {
		httputil.WriteError(w, errors.New(errors.ErrCodeNotFound, "no saved state"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, st)
}

func (s *Server) handlePutState(w http.ResponseWriter, r *http.Request) {
	p, err := s.persistentPrefs(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var st prefs.FormState
	if err := decodeBody(w, r, &st); err != nil {
		httputil.WriteError(w, err)
		return
	}
	p.SaveState(r.Context(), st)

	saved := p.LoadState(r.Context())
	if saved == nil {
		httputil.WriteError(w, errors.New(errors.ErrCodeInvalidStorage, "state was not saved"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, saved)
}

func (s *Server) handleGetQuickStock(w http.ResponseWriter, r *http.Request) {
	p, err := s.clientPrefs(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.LoadQuickStock(r.Context()))
}

// handlePutQuickStock accepts pair counts as numbers or strings:
// {"45": 4, "25": "2"}.
func (s *Server) handlePutQuickStock(w http.ResponseWriter, r *http.Request) {
	p, err := s.persistentPrefs(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var raw map[string]any
	if err := decodeBody(w, r, &raw); err != nil {
		httputil.WriteError(w, err)
		return
	}
	preset := make(prefs.Preset, len(raw))
	for k, v := range raw {
		preset[k] = fmt.Sprint(v)
	}
	p.SaveQuickStock(r.Context(), preset)
	httputil.WriteJSON(w, http.StatusOK, p.LoadQuickStock(r.Context()))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	return nil
}

package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/barbell/pkg/errors"
	"github.com/matzehuels/barbell/pkg/observability"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   errors.Code
		wantMsg    string
	}{
		{"input", errors.New(errors.ErrCodeInvalidInput, "bad target"), 400, errors.ErrCodeInvalidInput, "bad target"},
		{"format", errors.New(errors.ErrCodeInvalidFormat, "bad format"), 400, errors.ErrCodeInvalidFormat, "bad format"},
		{"not found", errors.New(errors.ErrCodeNotFound, "nope"), 404, errors.ErrCodeNotFound, "nope"},
		{"storage", errors.New(errors.ErrCodeInvalidStorage, "redis down"), 503, errors.ErrCodeInvalidStorage, "redis down"},
		{"internal hides message", errors.New(errors.ErrCodeInternal, "secret path"), 500, errors.ErrCodeInternal, "Internal Server Error"},
		{"plain error", fmt.Errorf("boom"), 500, errors.ErrCodeInternal, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
				t.Errorf("Content-Type = %q", ct)
			}
			var body ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error.Code != tt.wantCode || body.Error.Message != tt.wantMsg {
				t.Errorf("body = %+v", body.Error)
			}
		})
	}
}

func TestClientID(t *testing.T) {
	var seen string
	h := ClientID(CookieOptions{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ClientIDFrom(r.Context())
	}))

	// No cookie: a fresh id is issued.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != ClientCookie {
		t.Fatalf("cookies = %v", cookies)
	}
	if _, err := uuid.Parse(seen); err != nil || cookies[0].Value != seen {
		t.Fatalf("issued id %q, cookie %q", seen, cookies[0].Value)
	}
	if !cookies[0].HttpOnly || cookies[0].MaxAge != 365*24*3600 {
		t.Errorf("cookie attributes = %+v", cookies[0])
	}

	// Existing valid cookie is reused.
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: id})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != id {
		t.Errorf("client id = %q, want %q", seen, id)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("valid cookie should not be reissued")
	}

	// Garbage is replaced.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: "../../etc"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen == "../../etc" || len(rec.Result().Cookies()) != 1 {
		t.Errorf("invalid cookie kept: %q", seen)
	}

	if ClientIDFrom(context.Background()) != "" {
		t.Error("ClientIDFrom outside the middleware should be empty")
	}
}

type requestRecord struct {
	method, route string
	code          int
}

type recordingHTTPHooks struct {
	mu   sync.Mutex
	reqs []requestRecord
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, method, route string, code int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reqs = append(h.reqs, requestRecord{method, route, code})
}

func TestInstrument(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	r := chi.NewRouter()
	r.Use(Instrument(log.New(nil)))
	r.Get("/render.svg", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<svg/>"))
	})
	r.Get("/missing/{id}", func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, errors.New(errors.ErrCodeNotFound, "no such thing"))
	})

	for _, path := range []string{"/render.svg?target=225", "/missing/42", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	want := []requestRecord{
		{"GET", "/render.svg", 200},
		{"GET", "/missing/{id}", 404},
		{"GET", "unmatched", 404},
	}
	if len(hooks.reqs) != len(want) {
		t.Fatalf("requests = %+v", hooks.reqs)
	}
	for i := range want {
		if hooks.reqs[i] != want[i] {
			t.Errorf("request %d = %+v, want %+v", i, hooks.reqs[i], want[i])
		}
	}
}

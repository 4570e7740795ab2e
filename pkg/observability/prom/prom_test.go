package prom

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/barbell/pkg/observability"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	ctx := context.Background()

	m.OnCalculate(ctx, true, time.Microsecond)
	m.OnCalculate(ctx, false, time.Microsecond)
	m.OnCalculate(ctx, false, time.Microsecond)
	m.OnCacheHit(ctx, "artifact")
	m.OnCacheSet(ctx, "artifact", 512)
	m.OnStorageOp(ctx, "redis", "get", time.Millisecond, errors.New("down"))
	m.OnRequest(ctx, "GET", "/api/layout", 200, time.Millisecond)
	m.OnRenderComplete(ctx, "contrast", []string{"svg", "png"}, time.Millisecond, nil)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"exact", m.calculations.WithLabelValues("exact"), 1},
		{"no match", m.calculations.WithLabelValues("no_match"), 2},
		{"cache hit", m.cacheEvents.WithLabelValues("artifact", "hit"), 1},
		{"cache bytes", m.cacheBytes, 512},
		{"storage error", m.storageOps.WithLabelValues("redis", "get", "error"), 1},
		{"http", m.httpRequests.WithLabelValues("GET", "/api/layout", "200"), 1},
		{"render", m.renders.WithLabelValues("contrast", "svg,png", "ok"), 1},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(tt.c); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestInstall(t *testing.T) {
	defer observability.Reset()

	m := New(prometheus.NewRegistry())
	m.Install()
	if observability.Pipeline() != m || observability.HTTP() != m || observability.Storage() != m || observability.Cache() != m {
		t.Error("Install should register m for every hook category")
	}
}

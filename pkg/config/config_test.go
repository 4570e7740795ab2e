package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/barbell/pkg/errors"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{"BARBELL_STORAGE", "BARBELL_STORAGE_DIR", "BARBELL_REDIS_ADDR", "BARBELL_REDIS_PASSWORD",
		"BARBELL_MONGO_URI", "BARBELL_ADDR", "BARBELL_STYLE", "BARBELL_BAR", "BARBELL_NO_CACHE"} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoadMissingFile(t *testing.T) {
	dir := isolate(t)
	cfg, err := Load(filepath.Join(dir, "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	want.Storage.Dir = filepath.Join(dir, "data", AppName, "prefs")
	want.Cache.Dir = filepath.Join(dir, "cache", AppName)
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	content := `
bar = 35.0
unit = "kg"
style = "badge"

[storage]
backend = "redis"
redis_addr = "localhost:6379"

[server]
addr = ":9090"
metrics = false

[cache]
ttl = "1h"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bar != 35 || cfg.Unit != "kg" || cfg.Style != "badge" {
		t.Errorf("top level = %v %q %q", cfg.Bar, cfg.Unit, cfg.Style)
	}
	if cfg.Storage.Backend != "redis" || cfg.Storage.RedisAddr != "localhost:6379" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.Metrics {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Error("unset keys should keep their defaults")
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("cache ttl = %v", cfg.Cache.TTL)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := isolate(t)
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", "bar = ", errors.ErrCodeInvalidInput},
		{"unknown key", "colour = \"red\"", errors.ErrCodeInvalidInput},
		{"bad style", "style = \"neon\"", errors.ErrCodeInvalidStyle},
		{"negative bar", "bar = -1.0", errors.ErrCodeInvalidInput},
		{"bad scale", "scale = 10.0", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"BARBELL_STORAGE":    "mongo",
		"BARBELL_MONGO_URI":  "mongodb://db:27017",
		"BARBELL_ADDR":       ":7000",
		"BARBELL_BAR":        "33",
		"BARBELL_NO_CACHE":   "true",
		"BARBELL_REDIS_ADDR": "",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	if cfg.Storage.Backend != "mongo" || cfg.Storage.MongoURI != "mongodb://db:27017" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.Server.Addr != ":7000" || cfg.Bar != 33 || !cfg.Cache.Disabled {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestApplyEnvNoCache(t *testing.T) {
	tests := []struct {
		value string
		start bool
		want  bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"yes", false, true},
		{" ON ", false, true},
		{"false", true, false},
		{"no", true, false},
		{"off", true, false},
		{"sometimes", true, true},
		{"sometimes", false, false},
		{"", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := Default()
			cfg.Cache.Disabled = tt.start
			cfg.ApplyEnv(func(k string) string {
				if k == "BARBELL_NO_CACHE" {
					return tt.value
				}
				return ""
			})
			if cfg.Cache.Disabled != tt.want {
				t.Errorf("BARBELL_NO_CACHE=%q: Disabled = %v, want %v", tt.value, cfg.Cache.Disabled, tt.want)
			}
		})
	}
}

func TestWriteAndLoad(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "sub", "config.toml")

	cfg := Default()
	cfg.Style = "badge"
	if err := cfg.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := cfg.Write(path); err == nil {
		t.Error("Write should not overwrite an existing file")
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Style != "badge" || got.Server.ShutdownTimeout != 10*time.Second || got.Cache.TTL != 7*24*time.Hour {
		t.Errorf("round trip = %+v", got)
	}
}

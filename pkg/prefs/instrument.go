package prefs

import (
	"context"
	"time"

	"github.com/matzehuels/barbell/pkg/observability"
)

// instrumented reports every operation to the storage hooks.
type instrumented struct {
	inner   Storage
	backend string
}

// Instrument wraps s so its operations are reported to
// [observability.Storage] under the given backend name.
func Instrument(s Storage, backend string) Storage {
	return &instrumented{inner: s, backend: backend}
}

func (s *instrumented) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	v, ok, err := s.inner.Get(ctx, key)
	observability.Storage().OnStorageOp(ctx, s.backend, "get", time.Since(start), err)
	return v, ok, err
}

func (s *instrumented) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.inner.Set(ctx, key, value)
	observability.Storage().OnStorageOp(ctx, s.backend, "set", time.Since(start), err)
	return err
}

func (s *instrumented) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.inner.Delete(ctx, key)
	observability.Storage().OnStorageOp(ctx, s.backend, "delete", time.Since(start), err)
	return err
}

func (s *instrumented) Close() error { return s.inner.Close() }

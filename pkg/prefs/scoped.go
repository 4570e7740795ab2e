package prefs

import (
	"context"

	"github.com/matzehuels/barbell/pkg/errors"
)

// ScopedStorage prefixes every key, giving each server client its own
// namespace in a shared backend.
type ScopedStorage struct {
	inner  Storage
	prefix string
}

// Scoped wraps s so that key k is stored as prefix+k. Closing the scoped
// storage does not close s.
func Scoped(s Storage, prefix string) (*ScopedStorage, error) {
	if err := errors.ValidateKey(prefix); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid scope %q", prefix)
	}
	return &ScopedStorage{inner: s, prefix: prefix}, nil
}

func (s *ScopedStorage) Get(ctx context.Context, key string) (string, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *ScopedStorage) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *ScopedStorage) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close is a no-op; the wrapped storage is owned by the caller.
func (s *ScopedStorage) Close() error { return nil }

var _ Storage = (*ScopedStorage)(nil)

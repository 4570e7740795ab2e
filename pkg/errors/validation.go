package errors

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Limits on user-supplied values. They keep rendering and storage bounded;
// the allocator itself accepts anything.
const (
	MaxWeight = 10000
	MaxPairs  = 100
	maxKeyLen = 128
)

// ParseWeight parses a target or bar weight typed by a user. Unlike the
// lenient form coercion in package plates, it rejects bad input with a
// message naming the field.
func ParseWeight(field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, New(ErrCodeInvalidInput, "%s cannot be empty", field)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, New(ErrCodeInvalidInput, "%s must be a number, got %q", field, raw)
	}
	return v, ValidateWeight(field, v)
}

// ValidateWeight checks that v is finite and within [0, MaxWeight].
func ValidateWeight(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", field)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s cannot be negative", field)
	}
	if v > MaxWeight {
		return New(ErrCodeInvalidInput, "%s too large (max %d)", field, MaxWeight)
	}
	return nil
}

// ValidatePairs checks a plate count for one denomination.
func ValidatePairs(weight string, n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "pairs of %s cannot be negative", weight)
	}
	if n > MaxPairs {
		return New(ErrCodeInvalidInput, "too many pairs of %s (max %d)", weight, MaxPairs)
	}
	return nil
}

// ValidateKey validates a storage key or key prefix. Keys end up as Redis
// keys, Mongo document ids, bolt keys and file names, so they are limited
// to printable characters without path separators.
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "key cannot be empty")
	}
	if len(key) > maxKeyLen {
		return New(ErrCodeInvalidInput, "key too long (max %d characters)", maxKeyLen)
	}
	for _, r := range key {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "key contains invalid characters")
		}
	}
	if strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return New(ErrCodeInvalidInput, "key cannot contain path separators or ..")
	}
	return nil
}

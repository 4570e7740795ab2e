package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Key kinds, the leading segment of every generated key.
const (
	KindLayout   = "layout"
	KindArtifact = "artifact"
	KindTrace    = "trace"
)

// hashKey returns "kind:<sha256 of the JSON-encoded parts>". Struct parts
// encode their fields in declaration order, so equal options give equal keys.
func hashKey(kind string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		// NaN and infinite floats do not encode as JSON.
		data = fmt.Appendf(nil, "%#v", parts)
	}
	sum := sha256.Sum256(data)
	return kind + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 of data. [FileCache] names its entry files
// after the hash of the key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

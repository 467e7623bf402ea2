package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds "prefix:sha256(json(parts))".
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashInput hashes puzzle text with CRLF line endings folded to LF. The
// parser strips a trailing '\r' from every line, so both spellings of the
// same puzzle share one cache entry.
func HashInput(input []byte) string {
	return Hash(bytes.ReplaceAll(input, []byte("\r\n"), []byte("\n")))
}

// Package hash fingerprints legal document content. Two hashes flow through
// the system and must never be confused: the hash of the raw authored
// template (stored on the document row and frozen at publish) and the hash of
// the rendered, variable-substituted text (embedded in acceptance tokens).
// Callers label which one they hold; the function is the same.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Content returns the SHA-256 hex fingerprint of content. This is an
// integrity fingerprint, not a MAC; there is no key.
func Content(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ContentString is Content over a string, for call sites that hold the
// document text as a string.
func ContentString(content string) string {
	return Content([]byte(content))
}

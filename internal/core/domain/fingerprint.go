package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint returns a deterministic digest of normalized text.
// Normalization collapses whitespace runs to single spaces, trims, and
// lower-cases, so texts differing only in case or spacing collide.
// Used as the embedding cache key and as the exact-duplicate detector,
// which makes re-indexing the same document idempotent.
func Fingerprint(text string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(text), " "))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

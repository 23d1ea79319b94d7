package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_Deterministic(t *testing.T) {
	text := "The sum insured resets every policy year."

	assert.Equal(t, Fingerprint(text), Fingerprint(text))
}

func TestFingerprint_NormalizesCaseAndWhitespace(t *testing.T) {
	base := Fingerprint("sum insured resets annually")

	assert.Equal(t, base, Fingerprint("Sum Insured Resets Annually"))
	assert.Equal(t, base, Fingerprint("  sum   insured\n\tresets  annually  "))
}

func TestFingerprint_DistinctContent(t *testing.T) {
	assert.NotEqual(t, Fingerprint("premium is due monthly"), Fingerprint("premium is due yearly"))
}

func TestFingerprint_HexEncoded(t *testing.T) {
	fp := Fingerprint("anything")

	assert.Len(t, fp, 64)
	assert.Regexp(t, "^[0-9a-f]+$", fp)
}

package quality

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyq/policyq-cli/internal/core/domain"
)

func TestEmbeddable(t *testing.T) {
	goodText := "The policy covers hospitalisation expenses including room rent, " +
		"nursing charges and surgeon fees up to the sum insured for each policy year."

	tests := []struct {
		name  string
		chunk string
		want  bool
	}{
		{
			name:  "normal prose passes",
			chunk: goodText,
			want:  true,
		},
		{
			name:  "too short",
			chunk: "short text",
			want:  false,
		},
		{
			name:  "whitespace padding does not satisfy min length",
			chunk: "tiny" + strings.Repeat(" ", 100),
			want:  false,
		},
		{
			name:  "too long",
			chunk: strings.Repeat("coverage details word ", 500),
			want:  false,
		},
		{
			name:  "mostly symbols",
			chunk: strings.Repeat("#$%^&*", 20) + " some words here",
			want:  false,
		},
		{
			name:  "repetitive words fail uniqueness",
			chunk: strings.Repeat("claim ", 40),
			want:  false,
		},
		{
			name:  "exactly at min length boundary",
			chunk: "alpha bravo charlie delta echo foxtrot golf hotels",
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Embeddable(tt.chunk))
		})
	}
}

func TestProcess_DropsFailingChunks(t *testing.T) {
	p := New()
	good := "The insurer shall settle or reject a claim within thirty days " +
		"of receipt of the last necessary document from the insured person."
	in := []domain.Chunk{
		{ID: "a", Index: 0, Content: good},
		{ID: "b", Index: 1, Content: "too short"},
		{ID: "c", Index: 2, Content: good + " Interest is payable on delayed settlements."},
	}

	out, err := p.Process(context.Background(), nil, in)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "c", out[1].ID)
}

func TestProcess_RenumbersIndexes(t *testing.T) {
	p := New()
	good := "Pre-existing diseases are covered after a waiting period of " +
		"thirty six months of continuous coverage under this policy."
	in := []domain.Chunk{
		{ID: "a", Index: 5, Content: "x"},
		{ID: "b", Index: 9, Content: good},
	}

	out, err := p.Process(context.Background(), nil, in)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].Index)
}

func TestProcess_Empty(t *testing.T) {
	out, err := New().Process(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestProcessor_Name(t *testing.T) {
	assert.Equal(t, "quality", New().Name())
}

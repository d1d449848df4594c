package repository

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorLiteral(t *testing.T) {
	tests := []struct {
		name      string
		embedding []float32
		expected  string
	}{
		{
			name:      "typical vector",
			embedding: []float32{0.1, -0.25, 3},
			expected:  "[0.1,-0.25,3]",
		},
		{
			name:      "single component",
			embedding: []float32{1.5},
			expected:  "[1.5]",
		},
		{
			name:      "empty vector",
			embedding: nil,
			expected:  "[]",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, vectorLiteral(tc.embedding))
		})
	}
}

func TestVectorLiteral_PgvectorTextFormat(t *testing.T) {
	// The server-side ::vector cast parses the bracketed comma-separated
	// form; spaces or float4[] brace syntax would be rejected.
	lit := vectorLiteral([]float32{0.123456, -9.75, 0})

	assert.True(t, strings.HasPrefix(lit, "["))
	assert.True(t, strings.HasSuffix(lit, "]"))
	assert.NotContains(t, lit, " ")
	assert.NotContains(t, lit, "{")

	parts := strings.Split(strings.Trim(lit, "[]"), ",")
	require.Len(t, parts, 3)
	for _, p := range parts {
		_, err := strconv.ParseFloat(p, 32)
		require.NoError(t, err)
	}
}

func TestVectorLiteral_RoundTripPrecision(t *testing.T) {
	in := []float32{0.0012345678, 1e-7, 123456.78}
	parts := strings.Split(strings.Trim(vectorLiteral(in), "[]"), ",")
	require.Len(t, parts, len(in))

	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 32)
		require.NoError(t, err)
		assert.Equal(t, in[i], float32(f))
	}
}

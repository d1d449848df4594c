package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "name with space",
			input:    "John Smith",
			expected: "johnsmith",
		},
		{
			name:     "mixed case",
			input:    "MARIA Garcia-Lopez",
			expected: "mariagarcialopez",
		},
		{
			name:     "digits kept",
			input:    "Agent 007",
			expected: "agent007",
		},
		{
			name:     "tabs and newlines",
			input:    "  Jane\tDoe\n",
			expected: "janedoe",
		},
		{
			name:     "symbols only",
			input:    "!@#$%^&*",
			expected: "",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Slugify(tc.input))
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	first := Slugify("John Smith")
	second := Slugify("John Smith")
	assert.Equal(t, first, second)
}

func TestSanitizeUTF8(t *testing.T) {
	valid := "résumé text"
	assert.Equal(t, valid, sanitizeUTF8(valid))

	broken := "abc" + string([]byte{0xff, 0xfe}) + "def"
	assert.Equal(t, "abcdef", sanitizeUTF8(broken))
}

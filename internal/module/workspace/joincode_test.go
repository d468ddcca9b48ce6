package workspace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJoinCode_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateJoinCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, ch := range code {
			assert.Contains(t, joinCodeAlphabet, string(ch))
		}
	}
}

func TestGenerateJoinCode_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateJoinCode()
		require.NoError(t, err)
		seen[code] = true
	}
	// 36^6 codes; 50 draws colliding down to a single value is not chance.
	assert.Greater(t, len(seen), 1)
}

func TestJoinCodeMatches(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		supplied string
		expected bool
	}{
		{"exact", "abc123", "abc123", true},
		{"case insensitive", "abc123", "ABC123", true},
		{"mixed case stored", "AbC123", "aBc123", true},
		{"mismatch", "abc123", "abc124", false},
		{"empty supplied", "abc123", "", false},
		{"empty stored", "", "", false},
		{"prefix only", "abc123", "abc12", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, JoinCodeMatches(tt.stored, tt.supplied))
		})
	}
}

func TestNormalizeChannelName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"general", "general"},
		{"General", "general"},
		{"Team Updates", "team-updates"},
		{"multiple   spaces", "multiple-spaces"},
		{"tabs\tand\nnewlines", "tabs-and-newlines"},
		{"ALLCAPS", "allcaps"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeChannelName(tt.input))
		})
	}

	// Rename path stores names verbatim; normalization is create-only.
	assert.NotEqual(t, strings.ToLower("Kept As Is"), "Kept As Is")
}

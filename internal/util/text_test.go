package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Quality Of Service", "quality of service"},
		{"collapses whitespace", "  quality   of\tservice ", "quality of service"},
		{"strips hyphen comments suffix", "Communication - Comments", "communication"},
		{"strips en dash comments suffix", "Communication – Comments", "communication"},
		{"strips em dash comments suffix", "Communication — Comments", "communication"},
		{"strips joined comments suffix", "Communication -Comments", "communication"},
		{"plain category untouched", "timeliness", "timeliness"},
		{"empty input", "   ", ""},
		{"suffix only once", "comments - comments", "comments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.input))
		})
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"strips punctuation", "Need faster turnaround!!", "need faster turnaround"},
		{"lowercases and collapses", "Need   FASTER  turnaround", "need faster turnaround"},
		{"keeps digits", "respond within 24 hours", "respond within 24 hours"},
		{"only punctuation", "?!...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.input))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"same", "same", 0},
		{"abc", "abd", 1},
		{"日本語", "日本人", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "Levenshtein(%q, %q)", tt.a, tt.b)
	}
}

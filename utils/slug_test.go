package utils

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
		{"Simple", "Boru", "boru"},
		{"TurkishDiacritics", "Silindir Çapı", "silindir_capi"},
		{"DottedI", "İskonto", "iskonto"},
		{"MixedSeparators", "Mil - Çap / Ölçü", "mil_cap_olcu"},
		{"LeadingTrailingSpace", "  Kapak  ", "kapak"},
		{"AlreadySlugged", "boru_fiyat", "boru_fiyat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Silindir Çapı", "Boru Fiyatı", "60x50 Honlu Boru"}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once))
	}
}

// Package utils provides utility functions for the application.
package utils

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

var underscoreRuns = regexp.MustCompile(`_+`)

// Slugify derives a stable machine key from a human-readable category
// label. Turkish diacritics are transliterated ("Silindir Çapı" ->
// "silindir_capi") and separator runs collapse to a single underscore.
// The function is idempotent: Slugify(Slugify(x)) == Slugify(x).
func Slugify(text string) string {
	key := slug.MakeLang(text, "tr")
	key = strings.ReplaceAll(key, "-", "_")
	key = underscoreRuns.ReplaceAllString(key, "_")
	return strings.Trim(key, "_")
}

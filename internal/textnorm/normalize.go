// Package textnorm cleans up scraped Turkish news text.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

const bom = '\uFEFF'

var (
	// lowercase letter glued to an uppercase one, e.g. "BakanlıkAçıkladı"
	camelBoundary = regexp.MustCompile(`([a-zçğıöşü])([A-ZÇĞİÖŞÜ])`)
	symbols       = regexp.MustCompile(`[|*"'\\\[\](){}<>/]`)
	backslashRun  = regexp.MustCompile(`\\+`)
	spaceRun      = regexp.MustCompile(`[\s\p{Z}]{2,}`)

	controlReplacer = strings.NewReplacer("\n", " ", "\t", " ")
)

// Normalize cleans a raw title or body fragment. Empty input is returned
// as is; callers treat "" as no usable text.
//
// The word split is a heuristic: it also separates legitimate mixed-case
// tokens such as "iPhone".
func Normalize(raw string) string {
	if raw == "" {
		return raw
	}

	s := trim(raw)
	s = controlReplacer.Replace(s)
	s = symbols.ReplaceAllString(s, "")
	s = backslashRun.ReplaceAllString(s, "")
	// Split only after symbol removal, otherwise "a(B" would become "aB"
	// and a second pass would split it.
	s = camelBoundary.ReplaceAllString(s, "${1} ${2}")
	s = spaceRun.ReplaceAllString(s, " ")

	return trim(s)
}

// IsBlank reports whether s carries no text at all
func IsBlank(s string) bool {
	return trim(s) == ""
}

// trim strips whitespace and byte-order marks from both ends
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == bom || unicode.IsSpace(r)
	})
}

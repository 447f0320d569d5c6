// Package slugx derives URL slugs from tenant display names.
//
// Slugs are never stored; every lookup re-derives the slug from each
// candidate name and compares. That only works if derivation is fully
// deterministic, so the pipeline here is fixed: case-fold, strip accents,
// map runs of anything outside [a-z0-9] to a single hyphen, trim.
package slugx

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper decomposes to NFD, drops combining marks, recomposes.
// "São João" -> "Sao Joao".
var accentStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Derive computes the canonical slug for a display name.
// Derive is idempotent: Derive(Derive(x)) == Derive(x).
func Derive(name string) string {
	stripped, _, err := transform.String(accentStripper, name)
	if err != nil {
		// transform only fails on malformed UTF-8; fall back to the raw
		// input so derivation stays total.
		stripped = name
	}

	stripped = strings.ToLower(stripped)

	var b strings.Builder
	b.Grow(len(stripped))
	lastHyphen := true // suppress leading hyphen
	for _, r := range stripped {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// Matches reports whether the given slug identifies the given display name.
func Matches(slug, name string) bool {
	return slug != "" && Derive(name) == slug
}

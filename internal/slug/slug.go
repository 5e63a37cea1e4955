// Package slug turns user supplied names into stable URL identifiers.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make lowercases s, strips accents and joins the remaining letters and
// digits with single hyphens. "Emergency Fund (Año 2)" becomes
// "emergency-fund-ano-2".
func Make(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var sb strings.Builder

	pendingDash := false

	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && sb.Len() > 0 {
				sb.WriteByte('-')
			}

			sb.WriteRune(r)

			pendingDash = false

			continue
		}

		pendingDash = true
	}

	return sb.String()
}

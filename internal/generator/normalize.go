package generator

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const fallbackLocalPart = "persona"

// EmailLocalPart derives an ASCII-friendly email local part from a name:
// diacritics are stripped, everything is lowercased, only letters and digits
// are kept and the two parts are joined with a dot.
//
//	EmailLocalPart("José", "Núñez") == "jose.nunez"
func EmailLocalPart(first, last string) string {
	parts := make([]string, 0, 2)
	for _, s := range []string{first, last} {
		if p := normalizePart(s); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return fallbackLocalPart
	}

	return strings.Join(parts, ".")
}

func normalizePart(s string) string {
	// transformer chains keep state, build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	for _, r := range strings.ToLower(stripped) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

package energy

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const byteOrderMark = "\ufeff"

// FoldKey normalizes a header, token or identifier fragment for comparison:
// it strips a UTF-8 BOM and surrounding space, removes combining accents
// ("Pérdida" → "perdida") and lower-cases the result.
//
// Safe for concurrent use: the transformer chain is built per call because
// transform.Chain values keep internal state.
func FoldKey(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(s, byteOrderMark))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	return strings.ToLower(folded)
}

package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// maxPasses bounds the fixed-point loop in Normalize. Real input settles after
// one or two passes; the bound only guards against pathological sequences.
const maxPasses = 8

// Normalize reduces a display name to the canonical form used for impersonation
// matching. It is pure and safe for concurrent use, and may return "" for input
// made only of symbols or whitespace.
//
// A single pass applies NFKC, drops Other Symbol (So) runes such as emoji, drops
// whitespace, substitutes confusable letters and finally case-folds. Folding can
// expose a new confusable (Cyrillic "Е" folds to "е"), so passes repeat until the
// output is stable, which makes Normalize idempotent.
func Normalize(raw string) string {
	out := raw
	for i := 0; i < maxPasses; i++ {
		next := normalizePass(out)
		if next == out {
			break
		}
		out = next
	}
	return out
}

func normalizePass(s string) string {
	s = norm.NFKC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.So, r) || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(substitute(r))
	}

	// cases.Caser is stateful; a fresh one per call keeps Normalize goroutine-safe.
	return cases.Fold().String(b.String())
}

func substitute(r rune) rune {
	if isASCIIWord(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
		return r
	}
	if c, ok := confusables[r]; ok {
		return c
	}
	return r
}

func isASCIIWord(r rune) bool {
	return r == '_' ||
		('a' <= r && r <= 'z') ||
		('A' <= r && r <= 'Z') ||
		('0' <= r && r <= '9')
}

// Canonical pairs a raw display name with its normalized form.
type Canonical struct {
	Raw  string
	Form string
}

// NewCanonical normalizes raw and keeps both forms for reporting.
func NewCanonical(raw string) Canonical {
	return Canonical{Raw: raw, Form: Normalize(raw)}
}

// Empty reports whether nothing comparable survived normalization.
func (c Canonical) Empty() bool { return c.Form == "" }

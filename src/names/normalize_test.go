package names

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "joe", "joe"},
		{"upper case", "JOE", "joe"},
		{"spaced", "J o e", "joe"},
		{"tabs and newlines", "j\to\ne", "joe"},
		{"no-break space", "jo\u00a0e", "joe"},
		{"cyrillic look-alikes", "\u0458\u043e\u0435", "joe"},
		{"cyrillic capitals fold into look-alikes", "\u0408\u041e\u0415", "joe"},
		{"greek and cyrillic mix", "Fr\u03bfgm\u03bfnk\u0435\u0435", "frogmonkee"},
		{"emoji decoration", "\U0001f438Frogmonkee\U0001f412", "frogmonkee"},
		{"fullwidth", "Ｆｒｏｇ", "frog"},
		{"mathematical bold", "\U0001d405\U0001d42b\U0001d428\U0001d420", "frog"},
		{"small capitals", "\u0280\u1d0f\u0262", "rog"},
		{"accents", "Fr\u00f6gm\u00f3nk\u00e9\u00e8", "frogmonkee"},
		{"combining accent", "joe\u0301", "joe"},
		{"sharp s folds", "Straße", "strasse"},
		{"punctuation kept", "joe.", "joe."},
		{"ascii digits untouched", "fr0gmonkee", "fr0gmonkee"},
		{"unmapped passes through", "日本", "日本"},
		{"only symbols", "\U0001f525 \U0001f525", ""},
		{"empty", "", ""},
		{"invalid utf8 dropped", "jo\xffe", "joe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeConfusableTable(t *testing.T) {
	for from, to := range confusables {
		got := Normalize(string(from))
		assert.Equal(t, string(to), got, "confusable %U", from)
	}
}

func TestCanonical(t *testing.T) {
	c := NewCanonical("  \u0408oe ")
	assert.Equal(t, "  \u0408oe ", c.Raw)
	assert.Equal(t, "joe", c.Form)
	assert.False(t, c.Empty())

	assert.True(t, NewCanonical("✨").Empty())
}

// Property: normalizing an already canonical name changes nothing.
func TestProperty_NormalizeIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.String().Draw(rt, "s")
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			rt.Fatalf("Normalize not idempotent: %q -> %q -> %q", s, once, twice)
		}
	})
}

// Property: ASCII names compare equal regardless of letter case.
func TestProperty_NormalizeCaseInsensitive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.StringMatching(`[a-zA-Z0-9_]{0,32}`).Draw(rt, "s")
		lower := Normalize(strings.ToLower(s))
		upper := Normalize(strings.ToUpper(s))
		if lower != upper {
			rt.Fatalf("case changed canonical form: %q vs %q", lower, upper)
		}
	})
}

// Property: whitespace inserted anywhere in a name is ignored.
func TestProperty_NormalizeWhitespaceInsensitive(t *testing.T) {
	alphabet := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_.-")
	for r := range confusables {
		alphabet = append(alphabet, r)
	}
	spaces := []string{" ", "\t", "\n", "\u00a0", "\u2003", "\u3000"}

	rapid.Check(t, func(rt *rapid.T) {
		runes := rapid.SliceOfN(rapid.SampledFrom(alphabet), 0, 24).Draw(rt, "runes")

		var spaced strings.Builder
		for _, r := range runes {
			if rapid.Bool().Draw(rt, "space") {
				spaced.WriteString(spaces[rapid.IntRange(0, len(spaces)-1).Draw(rt, "kind")])
			}
			spaced.WriteRune(r)
		}

		want := Normalize(string(runes))
		if got := Normalize(spaced.String()); got != want {
			rt.Fatalf("whitespace changed canonical form: %q -> %q, want %q", spaced.String(), got, want)
		}
	})
}

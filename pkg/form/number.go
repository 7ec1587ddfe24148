package form

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

var (
	decimalLiteral = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)$`)
	radixLiteral   = regexp.MustCompile(`^0(?:[xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
)

// trimSpace trims the characters String.prototype.trim removes: Unicode
// space separators, line terminators and the byte order mark. U+0085 is
// not white space there.
func trimSpace(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == '\uFEFF' || (r != '\u0085' && unicode.IsSpace(r))
	})
}

// textLength counts UTF-16 code units.
func textLength(s string) int {
	n := 0

	for _, r := range s {
		n += max(utf16.RuneLen(r), 1)
	}

	return n
}

// parseNumber converts s the way Number(s) does, reporting false where that
// would give NaN.
func parseNumber(s string) (float64, bool) {
	s = trimSpace(s)

	if s == "" {
		return 0, true
	}

	if radixLiteral.MatchString(s) {
		base := 16

		switch s[1] {
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}

		n, ok := new(big.Int).SetString(s[2:], base)
		if !ok {
			return 0, false
		}

		f, _ := new(big.Float).SetInt(n).Float64()

		return f, true
	}

	if !decimalLiteral.MatchString(s) {
		return 0, false
	}

	switch strings.TrimLeft(s, "+") {
	case "Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	// Out of range values come back as ±Inf or 0 together with ErrRange,
	// which is what Number gives too.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}

	return f, true
}

// formatNumber renders f the way JavaScript prints numbers in template
// strings: shortest round-trip digits, exponent form outside [1e-6, 1e21).
func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")

		return mantissa + "e" + sign + digits
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

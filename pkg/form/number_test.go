package form

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{in: "42", want: 42, wantOK: true},
		{in: " 12 ", want: 12, wantOK: true},
		{in: "-3.5", want: -3.5, wantOK: true},
		{in: "+7", want: 7, wantOK: true},
		{in: ".5", want: 0.5, wantOK: true},
		{in: "5.", want: 5, wantOK: true},
		{in: "1e3", want: 1000, wantOK: true},
		{in: "0x1F", want: 31, wantOK: true},
		{in: "0o17", want: 15, wantOK: true},
		{in: "0b101", want: 5, wantOK: true},
		{in: "Infinity", want: math.Inf(1), wantOK: true},
		{in: "-Infinity", want: math.Inf(-1), wantOK: true},
		{in: "1e400", want: math.Inf(1), wantOK: true},
		{in: "abc"},
		{in: "12abc"},
		{in: "-0x10"},
		{in: "1_000"},
		{in: "inf"},
		{in: "NaN"},
		{in: "0x"},
		{in: "1,5"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, ok := parseNumber(tt.in)
			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	tests := map[float64]string{
		18:     "18",
		2.5:    "2.5",
		-4:     "-4",
		0:      "0",
		1e21:   "1e+21",
		1e-7:   "1e-7",
		0.0001: "0.0001",
		123456: "123456",
	}

	for in, want := range tests {
		assert.Equal(t, want, formatNumber(in), "formatNumber(%v)", in)
	}
}

func TestTrimSpaceAndLength(t *testing.T) {
	t.Parallel()

	assert.Empty(t, trimSpace(" \t\n\u00a0\u3000\uFEFF "))
	assert.Equal(t, "\u0085x", trimSpace("\u0085x "))
	assert.Equal(t, 3, textLength("abc"))
	assert.Equal(t, 2, textLength("\U0001F600"))
	assert.Equal(t, 2, textLength("\u00e9!"))
}

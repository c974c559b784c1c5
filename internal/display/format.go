// Package display renders an engine for people: numbers formatted for a
// display, and the keypad logic that turns digit presses into operands.
package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Formatter formats numbers for display. The zero Formatter shows integers
// only, with no grouping; use DefaultFormatter for the usual settings.
type Formatter struct {
	// MaxFractionDigits is the most digits shown after the decimal
	// separator. Trailing zeros are never shown.
	MaxFractionDigits int `json:"maxFractionDigits"`
	// GroupingSeparator separates groups of three integer digits.
	GroupingSeparator string `json:"groupingSeparator"`
	// DecimalSeparator separates the integer and fraction digits. Empty
	// means ".".
	DecimalSeparator string `json:"decimalSeparator"`
	// NaNSymbol is shown in place of NaN.
	NaNSymbol string `json:"nanSymbol"`
}

// DefaultFormatter returns the usual display settings: six fraction digits
// grouped with spaces, NaN shown as "Error".
func DefaultFormatter() Formatter {
	return Formatter{
		MaxFractionDigits: 6,
		GroupingSeparator: " ",
		DecimalSeparator:  ".",
		NaNSymbol:         "Error",
	}
}

func (f Formatter) decimal() string {
	if f.DecimalSeparator == "" {
		return "."
	}
	return f.DecimalSeparator
}

// Format formats v.
func (f Formatter) Format(v float64) string {
	switch {
	case math.IsNaN(v):
		return f.NaNSymbol
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	}
	digits := f.MaxFractionDigits
	if digits < 0 {
		digits = 0
	}
	s := strconv.FormatFloat(math.Abs(v), 'f', digits, 64)
	ip, fp := s, ""
	if k := strings.IndexByte(s, '.'); k >= 0 {
		ip, fp = s[:k], strings.TrimRight(s[k+1:], "0")
	}
	var b strings.Builder
	if v < 0 && (strings.Trim(ip, "0") != "" || fp != "") {
		b.WriteByte('-')
	}
	for i, c := range ip {
		if i > 0 && (len(ip)-i)%3 == 0 {
			b.WriteString(f.GroupingSeparator)
		}
		b.WriteRune(c)
	}
	if fp != "" {
		b.WriteString(f.decimal())
		b.WriteString(fp)
	}
	return b.String()
}

// Parse reads a number written the way Format writes numbers, or the way a
// user types one.
func (f Formatter) Parse(s string) (float64, error) {
	t := strings.TrimSpace(s)
	if f.GroupingSeparator != "" && f.GroupingSeparator != f.decimal() {
		t = strings.ReplaceAll(t, f.GroupingSeparator, "")
	}
	t = strings.ReplaceAll(t, f.decimal(), ".")
	switch t {
	case "∞", "+∞":
		return math.Inf(1), nil
	case "-∞":
		return math.Inf(-1), nil
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("display: parse %q: %w", s, err)
	}
	return v, nil
}

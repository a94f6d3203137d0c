package field

import (
	"errors"
	"strconv"
	"strings"
)

// ParseNumber reads the leading decimal number of raw the way a browser's
// parseFloat does. Surrounding whitespace is ignored, then an optional sign,
// digits with an optional fraction, and an optional exponent are consumed.
// Anything after the number is ignored, so "7.5kg" reads as 7.5. Magnitudes
// beyond float64 saturate to ±Inf.
func ParseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrEmptyValue
	}
	end := numberPrefix(s)
	if end == 0 {
		return 0, ErrInvalidValue
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, ErrInvalidValue
	}
	return v, nil
}

// numberPrefix returns the length of the numeric prefix of s, or 0 when s does
// not start with a number.
func numberPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

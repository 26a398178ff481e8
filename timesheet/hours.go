package timesheet

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseHours parses the longest numeric prefix of s, so "7.5h" reads as 7.5.
// Leading whitespace, a sign, a fraction and an exponent are accepted. The
// result must be finite; "Infinity", "NaN" and overflowing values fail.
func ParseHours(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	n := numericPrefixLen(s)
	if n == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:n], 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func numericPrefixLen(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intDigits := i - start

	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		fracDigits = j - i - 1
		if intDigits > 0 || fracDigits > 0 {
			i = j
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isWhole(v float64) bool {
	return v == math.Trunc(v)
}

// TotalHours sums the hours of every entry in order. Sentinel entries are
// skipped and unparsable values count as zero.
func TotalHours(entries []Entry) float64 {
	var total float64
	for _, e := range entries {
		if e.IsSentinelHours() {
			continue
		}
		if v, ok := ParseHours(e.Hours); ok {
			total += v
		}
	}
	return total
}

// FormatTotal renders a total with exactly two decimals.
func FormatTotal(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

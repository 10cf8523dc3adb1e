package output

import (
	"math"
	"strconv"
	"strings"
)

// RoundFloat rounds a float to 6 decimal places
func RoundFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return math.Round(f*1e6) / 1e6
}

// FormatFloat formats a float rounded to 6 decimal places with no trailing zeros
func FormatFloat(f float64) string {
	str := strconv.FormatFloat(RoundFloat(f), 'f', 6, 64)
	str = strings.TrimRight(str, "0")
	str = strings.TrimSuffix(str, ".")
	if str == "-0" {
		return "0"
	}
	return str
}

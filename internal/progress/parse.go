package progress

import (
	"math"
	"regexp"
	"strconv"
)

var (
	// leadingFloatRe matches the longest decimal number at the start of a string.
	leadingFloatRe = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

	// leadingIntRe matches the longest integer at the start of a string.
	leadingIntRe = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseWeight reads the leading decimal number of s ("102.5", "100lbs").
// Input without one, including "", is 0.
func ParseWeight(s string) float64 {
	m := leadingFloatRe.FindString(trimLeft(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// ParseReps reads the leading integer of s ("8", "8.5" -> 8). Input without
// one, including "", is 0.
func ParseReps(s string) int64 {
	m := leadingIntRe.FindString(trimLeft(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func trimLeft(s string) string {
	for i, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			continue
		}
		return s[i:]
	}
	return ""
}

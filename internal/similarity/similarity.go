// Package similarity turns a verifier's distance and threshold into the
// display score returned to callers.
//
// The score is a heuristic, not a calibrated probability: a distance of 0
// maps to 100%, a distance equal to the threshold maps to 0%, and anything
// beyond the threshold is clamped to 0%.
package similarity

import (
	"fmt"
	"math"
	"strconv"
)

const (
	minPercent = 0.0
	maxPercent = 100.0
)

// Percent returns (1 - distance/threshold) * 100 clamped to [0, 100].
// A non-positive threshold or a NaN input yields 0.
func Percent(distance, threshold float64) float64 {
	if threshold <= 0 || math.IsNaN(distance) || math.IsNaN(threshold) {
		return minPercent
	}

	raw := (1 - distance/threshold) * 100

	switch {
	case math.IsNaN(raw), raw <= minPercent:
		// <= also folds -0 into 0 so it never formats as "-0.00%"
		return minPercent
	case raw > maxPercent:
		return maxPercent
	default:
		return raw
	}
}

// Format renders a percentage with two decimals and a trailing percent sign.
func Format(percent float64) string {
	return fmt.Sprintf("%.2f%%", percent)
}

// Round rounds the exact binary value of v to the given number of decimal
// places. Scaling by a power of ten first would invent ties such as 0.74315.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil || r == 0 {
		// also folds -0 into 0
		return 0
	}
	return r
}

// IsMatch reports whether distance falls within the decision threshold.
func IsMatch(distance, threshold float64) bool {
	return distance <= threshold
}

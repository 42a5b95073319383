// Package normalize converts raw feed records into canonical Market records.
// Each source gets its own converter; everything downstream of this package
// sees one probability scale (0-100 points) and dollar volumes.
package normalize

import "math"

// ValidateChange guards against upstream feeds reporting the complementary
// outcome's delta, which would flip the displayed direction. The previous
// probability implied by (prob - change) must land strictly inside (1, 99);
// if it does not, the sign-flipped reading is tried; if neither reading is
// plausible the change is zeroed rather than shown with a wrong sign.
//
// Best-effort: without ground truth from the feed this is a plausibility
// check, not a proof.
func ValidateChange(prob, change float64) float64 {
	if change == 0 {
		return 0
	}
	if plausiblePrior(prob - change) {
		return change
	}
	if plausiblePrior(prob + change) {
		return -change
	}
	return 0
}

func plausiblePrior(p float64) bool {
	return p > 1 && p < 99
}

// round1 rounds to one decimal, matching the display precision carried in
// the artifact.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Package scoring maps guess errors and answer outcomes to points.
// Every function here is pure.
package scoring

import "math"

// ErrorPct returns the relative deviation of guess from actual, in percent.
// actual must be > 0.
func ErrorPct(guess, actual float64) float64 {
	return math.Abs(guess-actual) / actual * 100
}

// PointsForGuess awards price-guess points by error band:
//
//	<= 5%  → 5
//	<= 10% → 3
//	<= 20% → 2
//	else   → 1
func PointsForGuess(errorPct float64) int {
	switch {
	case errorPct <= 5:
		return 5
	case errorPct <= 10:
		return 3
	case errorPct <= 20:
		return 2
	default:
		return 1
	}
}

// PointsForComparison awards 1 for picking the pricier listing.
func PointsForComparison(correct bool) int { return boolPoint(correct) }

// PointsForQuiz awards 1 for a correct answer.
func PointsForQuiz(correct bool) int { return boolPoint(correct) }

func boolPoint(ok bool) int {
	if ok {
		return 1
	}
	return 0
}

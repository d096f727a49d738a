package spatial

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// CircularMean calculates the mean direction of bearings in radians.
// weights may be nil for equal weights; missing weights count as 1.
// The result is normalized to [0, 2π).
func CircularMean(angles []float64, weights []float64) float64 {
	if len(angles) == 0 {
		return 0
	}

	if weights != nil && len(weights) != len(angles) {
		weights = padWeights(weights, len(angles))
	}
	return NormalizeBearing(stat.CircularMean(angles, weights))
}

// MeanResultantLength calculates the mean resultant length (R) of bearings.
// R ranges from 0 (no preferred direction) to 1 (all bearings identical).
func MeanResultantLength(angles []float64, weights []float64) float64 {
	if len(angles) == 0 {
		return 0
	}

	sumSin, sumCos, sumWeights := resultant(angles, weights)
	if sumWeights == 0 {
		return 0
	}
	return math.Sqrt(sumSin*sumSin+sumCos*sumCos) / sumWeights
}

// padWeights extends or truncates weights to n entries, filling with 1.
func padWeights(weights []float64, n int) []float64 {
	padded := make([]float64, n)
	for i := range padded {
		padded[i] = 1
		if i < len(weights) {
			padded[i] = weights[i]
		}
	}
	return padded
}

func resultant(angles []float64, weights []float64) (sumSin, sumCos, sumWeights float64) {
	for i, angle := range angles {
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		sumSin += w * math.Sin(angle)
		sumCos += w * math.Cos(angle)
		sumWeights += w
	}
	return sumSin, sumCos, sumWeights
}

// NormalizeBearing maps an angle in radians onto [0, 2π).
func NormalizeBearing(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// AngularDifference calculates the smallest signed difference between two
// bearings in radians, in the range [-π, π].
func AngularDifference(angle1, angle2 float64) float64 {
	diff := angle2 - angle1
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	for diff < -math.Pi {
		diff += 2 * math.Pi
	}
	return diff
}

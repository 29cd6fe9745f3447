package tween

import "math"

// Ease maps linear progress in [0, 1] to eased progress in [0, 1].
type Ease func(t float64) float64

// Linear leaves progress unchanged.
func Linear(t float64) float64 {
	return t
}

// InOutQuad accelerates through the first half and decelerates through the second.
func InOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// InOutSine follows half a cosine wave.
func InOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// Arc returns the height of a single parabolic hop of the given peak at
// progress t. It is 0 at both ends and peak at t = 0.5.
func Arc(t, peak float64) float64 {
	if t <= 0 || t >= 1 {
		return 0
	}
	return 4 * peak * t * (1 - t)
}

package glm

import "math"

func sincos(r Rad) (float32, float32) {
	s, c := math.Sincos(float64(r))
	return float32(s), float32(c)
}

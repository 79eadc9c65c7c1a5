package glm

import "math"

// Perspective builds a right handed projection matrix mapping depth to [0, 1],
// as expected by webgpu.
func Perspective[T float](fovY Rad, aspect, near, far T) Mat4[T] {
	f := T(1 / math.Tan(float64(fovY*0.5)))

	return Mat4Of([4][4]T{
		{f / aspect, 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, far / (near - far), -1},
		{0, 0, (far * near) / (near - far), 0},
	})
}

func DegToRad[T float](deg T) Rad {
	return Rad(float64(deg) * (math.Pi / 180))
}

func RadToDeg[T float](rad Rad) (deg T) {
	return T(float64(rad) * (180 / math.Pi))
}

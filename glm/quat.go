package glm

// Quat is a rotation quaternion with vector part V and scalar part S.
type Quat[T float] struct {
	V Vec3[T]
	S T
}

func IdentityQuat[T float]() Quat[T] {
	return Quat[T]{S: 1}
}

// QuatFromAxisAngle returns the rotation of angle around the given axis.
// The axis does not need to be normalized.
func QuatFromAxisAngle[T float](axis Vec3[T], angle Rad) Quat[T] {
	s, c := sincos(angle * 0.5)

	return Quat[T]{
		V: axis.Normalize().MulScalar(T(s)),
		S: T(c),
	}
}

// Mul returns the rotation that first applies rhs, then lhs.
func (lhs Quat[T]) Mul(rhs Quat[T]) Quat[T] {
	return Quat[T]{
		V: rhs.V.MulScalar(lhs.S).
			Add(lhs.V.MulScalar(rhs.S)).
			Add(lhs.V.Cross(rhs.V)),
		S: lhs.S*rhs.S - lhs.V.Dot(rhs.V),
	}
}

func (lhs Quat[T]) Normalize() Quat[T] {
	length := lhs.V.Extend(lhs.S).Length()
	if length == 0 {
		return IdentityQuat[T]()
	}

	return Quat[T]{
		V: lhs.V.MulScalar(1 / length),
		S: lhs.S / length,
	}
}

func (lhs Quat[T]) Conjugate() Quat[T] {
	return Quat[T]{V: lhs.V.MulScalar(-1), S: lhs.S}
}

// Rotate applies the rotation to v.
func (lhs Quat[T]) Rotate(v Vec3[T]) Vec3[T] {
	t := lhs.V.Cross(v).MulScalar(2)
	return v.Add(t.MulScalar(lhs.S)).Add(lhs.V.Cross(t))
}

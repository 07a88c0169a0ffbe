package mocap

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// nlerpDotThreshold is the cosine above which two orientations are close
// enough that linear interpolation plus renormalisation is numerically
// safer than the spherical formula (sin of the arc approaches zero).
const nlerpDotThreshold = 0.9995

// RotateVector rotates v by the unit quaternion q. The vector is embedded
// as a pure quaternion and conjugated: q * (0,v) * q̄.
func RotateVector(q quat.Number, v r3.Vector) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// NormalizeQuat scales q to unit norm. A zero quaternion normalises to the
// identity rotation rather than producing NaNs.
func NormalizeQuat(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}

// Slerp spherically interpolates from q1 (t=0) to q2 (t=1) along the
// shortest rotational arc. Inputs are assumed unit-norm. When the two
// orientations are nearly parallel the result falls back to normalised
// linear interpolation.
func Slerp(q1, q2 quat.Number, t float64) quat.Number {
	dot := q1.Real*q2.Real + q1.Imag*q2.Imag + q1.Jmag*q2.Jmag + q1.Kmag*q2.Kmag

	// Flip one endpoint so the interpolation takes the short way round.
	if dot < 0 {
		q2 = quat.Scale(-1, q2)
		dot = -dot
	}

	if dot > nlerpDotThreshold {
		lin := quat.Add(q1, quat.Scale(t, quat.Sub(q2, q1)))
		return NormalizeQuat(lin)
	}

	theta0 := math.Acos(dot)
	sinTheta0 := math.Sin(theta0)
	theta := theta0 * t

	s1 := math.Cos(theta) - dot*math.Sin(theta)/sinTheta0
	s2 := math.Sin(theta) / sinTheta0
	return quat.Add(quat.Scale(s1, q1), quat.Scale(s2, q2))
}

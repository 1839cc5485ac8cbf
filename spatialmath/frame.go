// Package spatialmath defines the spatial mathematical operations used to move
// tracked device poses between their 4x4 matrix form and an orthonormal
// coordinate-frame form.
package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// defaultOrthoTol is how far a raw basis may deviate from orthonormal before
// it is reported as degenerate.
const defaultOrthoTol = 1e-5

// A Frame is a rigid transform expressed as an origin point plus three unit,
// mutually orthogonal basis vectors. Origins are in application units.
type Frame struct {
	Origin r3.Vector
	AxisX  r3.Vector
	AxisY  r3.Vector
	AxisZ  r3.Vector
}

// NewZeroFrame returns a frame at the application origin with identity axes.
func NewZeroFrame() Frame {
	return Frame{
		AxisX: r3.Vector{X: 1},
		AxisY: r3.Vector{Y: 1},
		AxisZ: r3.Vector{Z: 1},
	}
}

// FrameFromMatrix reinterprets a 4x4 pose matrix as a coordinate frame.
//
// With rowMajor false the basis vectors occupy matrix columns and the
// translation the fourth column (mathgl's native, column-vector convention);
// with rowMajor true the basis vectors occupy rows and the translation the
// fourth row. The convention must match the producing runtime exactly: the
// wrong choice yields a frame that looks plausible but is rotated or
// reflected, so each call site picks one convention and documents it.
//
// The returned frame is re-orthonormalized via Gram-Schmidt with the Z axis
// rebuilt as X cross Y. If the raw basis deviates from orthonormal by more
// than tolerance, the normalized frame is still returned along with a
// non-nil error describing the deviation.
func FrameFromMatrix(m mgl64.Mat4, rowMajor bool) (Frame, error) {
	if rowMajor {
		m = m.Transpose()
	}
	rawX := r3.Vector{X: m.At(0, 0), Y: m.At(1, 0), Z: m.At(2, 0)}
	rawY := r3.Vector{X: m.At(0, 1), Y: m.At(1, 1), Z: m.At(2, 1)}
	rawZ := r3.Vector{X: m.At(0, 2), Y: m.At(1, 2), Z: m.At(2, 2)}

	dev := basisDeviation(rawX, rawY, rawZ)

	x := rawX.Normalize()
	y := rawY.Sub(x.Mul(rawY.Dot(x))).Normalize()
	frame := Frame{
		Origin: r3.Vector{X: m.At(0, 3), Y: m.At(1, 3), Z: m.At(2, 3)},
		AxisX:  x,
		AxisY:  y,
		AxisZ:  x.Cross(y),
	}
	if dev > defaultOrthoTol {
		return frame, errors.Errorf("basis deviates from orthonormal by %g", dev)
	}
	return frame, nil
}

// NewFrameFromMatrix is FrameFromMatrix with the degeneracy error discarded;
// malformed input silently produces a best-effort normalized frame.
func NewFrameFromMatrix(m mgl64.Mat4, rowMajor bool) Frame {
	frame, _ := FrameFromMatrix(m, rowMajor)
	return frame
}

// NewFrameFromQuaternion returns the frame at the given origin whose axes are
// the standard basis rotated by the given unit quaternion.
func NewFrameFromQuaternion(origin r3.Vector, q quat.Number) Frame {
	mq := mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}
	frame := NewFrameFromMatrix(mq.Mat4(), false)
	frame.Origin = origin
	return frame
}

// Matrix is the inverse of FrameFromMatrix under the same convention.
func (f Frame) Matrix(rowMajor bool) mgl64.Mat4 {
	// mgl64.Mat4 is stored column-major; each line below is one column.
	m := mgl64.Mat4{
		f.AxisX.X, f.AxisX.Y, f.AxisX.Z, 0,
		f.AxisY.X, f.AxisY.Y, f.AxisY.Z, 0,
		f.AxisZ.X, f.AxisZ.Y, f.AxisZ.Z, 0,
		f.Origin.X, f.Origin.Y, f.Origin.Z, 1,
	}
	if rowMajor {
		return m.Transpose()
	}
	return m
}

// Plane returns the plane view of the frame; the Z axis becomes the implied
// plane normal.
func (f Frame) Plane() Plane {
	return Plane{Origin: f.Origin, AxisX: f.AxisX, AxisY: f.AxisY}
}

// Quaternion returns the frame's orientation as a unit quaternion.
func (f Frame) Quaternion() quat.Number {
	q := mgl64.Mat4ToQuat(f.Matrix(false))
	return quat.Number{Real: q.W, Imag: q.X(), Jmag: q.Y(), Kmag: q.Z()}
}

// OrthonormalWithin reports whether the frame's axes are unit length and
// mutually orthogonal within the given tolerance.
func (f Frame) OrthonormalWithin(tol float64) bool {
	return basisDeviation(f.AxisX, f.AxisY, f.AxisZ) <= tol
}

// FrameAlmostEqual reports whether two frames have approximately the same
// origin and axes.
func FrameAlmostEqual(f1, f2 Frame, tol float64) bool {
	return vectorAlmostEqual(f1.Origin, f2.Origin, tol) &&
		vectorAlmostEqual(f1.AxisX, f2.AxisX, tol) &&
		vectorAlmostEqual(f1.AxisY, f2.AxisY, tol) &&
		vectorAlmostEqual(f1.AxisZ, f2.AxisZ, tol)
}

// QuaternionAlmostEqual reports whether two quaternions represent
// approximately the same orientation, accounting for the double cover.
func QuaternionAlmostEqual(q1, q2 quat.Number, tol float64) bool {
	q2Neg := quat.Number{Real: -q2.Real, Imag: -q2.Imag, Jmag: -q2.Jmag, Kmag: -q2.Kmag}
	return quatNorm(quat.Sub(q1, q2)) < tol || quatNorm(quat.Sub(q1, q2Neg)) < tol
}

func quatNorm(q quat.Number) float64 {
	return math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}

func vectorAlmostEqual(v1, v2 r3.Vector, tol float64) bool {
	return v1.Sub(v2).Norm() <= tol
}

func basisDeviation(x, y, z r3.Vector) float64 {
	dev := math.Abs(x.Norm() - 1)
	dev = math.Max(dev, math.Abs(y.Norm()-1))
	dev = math.Max(dev, math.Abs(z.Norm()-1))
	dev = math.Max(dev, math.Abs(x.Dot(y)))
	dev = math.Max(dev, math.Abs(y.Dot(z)))
	dev = math.Max(dev, math.Abs(x.Dot(z)))
	return dev
}

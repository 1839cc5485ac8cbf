package spatialmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

// a 45 degree rotation around the x axis, with a distinct origin
var (
	th     = math.Pi / 4.
	q45x   = quat.Number{Real: math.Cos(th / 2.), Imag: math.Sin(th / 2.)}
	origin = r3.Vector{X: 1, Y: 2, Z: 3}
)

func TestZeroFrame(t *testing.T) {
	zero := NewZeroFrame()
	test.That(t, zero.Origin, test.ShouldResemble, r3.Vector{})
	test.That(t, zero.AxisX, test.ShouldResemble, r3.Vector{X: 1})
	test.That(t, zero.AxisY, test.ShouldResemble, r3.Vector{Y: 1})
	test.That(t, zero.AxisZ, test.ShouldResemble, r3.Vector{Z: 1})
	test.That(t, zero.OrthonormalWithin(0), test.ShouldBeTrue)
}

func TestMatrixRoundTrip(t *testing.T) {
	f := NewFrameFromQuaternion(origin, q45x)
	for _, rowMajor := range []bool{false, true} {
		back, err := FrameFromMatrix(f.Matrix(rowMajor), rowMajor)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, FrameAlmostEqual(back, f, 1e-5), test.ShouldBeTrue)
	}
}

func TestMatrixConvention(t *testing.T) {
	// Distinguishable fixture: every basis vector is a different standard
	// axis, so swapping the convention is immediately visible. Written
	// column-major (mathgl storage): one column per line.
	m := mgl64.Mat4{
		0, 1, 0, 0,
		0, 0, 1, 0,
		1, 0, 0, 0,
		1, 2, 3, 1,
	}

	col := NewFrameFromMatrix(m, false)
	test.That(t, col.Origin, test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, col.AxisX, test.ShouldResemble, r3.Vector{Y: 1})
	test.That(t, col.AxisY, test.ShouldResemble, r3.Vector{Z: 1})
	test.That(t, col.AxisZ, test.ShouldResemble, r3.Vector{X: 1})

	row := NewFrameFromMatrix(m, true)
	test.That(t, row.Origin, test.ShouldResemble, r3.Vector{})
	test.That(t, row.AxisX, test.ShouldResemble, r3.Vector{Z: 1})
	test.That(t, row.AxisY, test.ShouldResemble, r3.Vector{X: 1})
	test.That(t, row.AxisZ, test.ShouldResemble, r3.Vector{Y: 1})
}

func TestDegenerateMatrix(t *testing.T) {
	// basis vectors of length 2 are well past tolerance
	m := mgl64.Ident4().Mul4(mgl64.Scale3D(2, 2, 2))
	frame, err := FrameFromMatrix(m, false)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "orthonormal")
	test.That(t, frame.OrthonormalWithin(1e-9), test.ShouldBeTrue)

	// the silent variant returns the same normalized frame
	test.That(t, NewFrameFromMatrix(m, false), test.ShouldResemble, frame)
}

func TestQuaternionView(t *testing.T) {
	f := NewFrameFromQuaternion(origin, q45x)
	test.That(t, f.Origin, test.ShouldResemble, origin)
	test.That(t, f.AxisX.X, test.ShouldAlmostEqual, 1)
	test.That(t, f.AxisY.Y, test.ShouldAlmostEqual, math.Cos(th))
	test.That(t, f.AxisY.Z, test.ShouldAlmostEqual, math.Sin(th))
	test.That(t, QuaternionAlmostEqual(f.Quaternion(), q45x, 1e-8), test.ShouldBeTrue)

	// double cover: the negated quaternion is the same orientation
	qNeg := quat.Number{Real: -q45x.Real, Imag: -q45x.Imag}
	test.That(t, QuaternionAlmostEqual(f.Quaternion(), qNeg, 1e-8), test.ShouldBeTrue)
}

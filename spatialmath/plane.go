package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// A Plane is the origin plus X/Y axis view of a frame. It carries no state of
// its own; it is always recomputable from the frame it was derived from, with
// the implied normal being X cross Y.
type Plane struct {
	Origin r3.Vector
	AxisX  r3.Vector
	AxisY  r3.Vector
}

// Normal returns the implied plane normal.
func (p Plane) Normal() r3.Vector {
	return p.AxisX.Cross(p.AxisY)
}

// Frame rebuilds the full coordinate frame, restoring the Z axis from the
// plane normal.
func (p Plane) Frame() Frame {
	return Frame{Origin: p.Origin, AxisX: p.AxisX, AxisY: p.AxisY, AxisZ: p.Normal()}
}

// Matrix converts the plane back to a 4x4 pose matrix under the given
// convention. Used when an external caller supplies a plane and the pipeline
// needs a matrix, as in calibration workflows.
func (p Plane) Matrix(rowMajor bool) mgl64.Mat4 {
	return p.Frame().Matrix(rowMajor)
}

// PlaneAlmostEqual reports whether two planes have approximately the same
// origin and axes.
func PlaneAlmostEqual(p1, p2 Plane, tol float64) bool {
	return vectorAlmostEqual(p1.Origin, p2.Origin, tol) &&
		vectorAlmostEqual(p1.AxisX, p2.AxisX, tol) &&
		vectorAlmostEqual(p1.AxisY, p2.AxisY, tol)
}

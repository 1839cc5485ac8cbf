package rig

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/echovr/rigtrack/utils"
)

// A generic tracker puck is strapped flat onto the object it tracks, so its
// reported up axis points along the object's forward axis. This fixed pitch
// about the puck's X axis brings the pose into the object's own frame.
const trackerMountPitchDeg = -90.0

var trackerMountCorrection = mgl64.QuatRotate(
	utils.DegToRad(trackerMountPitchDeg), mgl64.Vec3{1, 0, 0},
).Mat4()

// correctPose applies the class-specific fixed corrective transform to a raw
// device pose. HMDs, controllers, and lighthouses pass through unchanged;
// generic trackers get the constant mounting rotation. Pure and
// deterministic: the same matrix and class always yield the same result.
func correctPose(m mgl64.Mat4, class DeviceClass) mgl64.Mat4 {
	if class == ClassGenericTracker {
		return m.Mul4(trackerMountCorrection)
	}
	return m
}

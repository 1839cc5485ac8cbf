// Package rig implements the device classification, pose caching, and query
// pipeline for a multi-device VR tracking rig.
package rig

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"
)

// DeviceClass is the semantic role of a tracked device.
type DeviceClass int

// The known device classes.
const (
	ClassUnknown DeviceClass = iota
	ClassHMD
	ClassController
	ClassLighthouse
	ClassGenericTracker
)

func (c DeviceClass) String() string {
	switch c {
	case ClassHMD:
		return "hmd"
	case ClassController:
		return "controller"
	case ClassLighthouse:
		return "lighthouse"
	case ClassGenericTracker:
		return "generic_tracker"
	case ClassUnknown:
		fallthrough
	default:
		return "unknown"
	}
}

func (c DeviceClass) valid() bool {
	return c > ClassUnknown && c <= ClassGenericTracker
}

// A DeviceHandle is the runtime's opaque identifier for one physical tracked
// object. Handles are only meaningful within the poll cycle that enumerated
// them; the set of valid handles can grow or shrink between polls.
type DeviceHandle uint32

// DeviceInfo is one entry of the runtime's device enumeration.
type DeviceInfo struct {
	Handle DeviceHandle
	Class  DeviceClass
}

// Controller button bits within ButtonState masks.
const (
	ButtonSystem uint64 = 1 << iota
	ButtonMenu
	ButtonGrip
	ButtonTouchpad
	ButtonTrigger
)

// ButtonState is a controller's raw button and axis readings for one poll.
type ButtonState struct {
	Pressed uint64
	Touched uint64
	// TriggerValue ranges 0 to 1; the pad axes range -1 to 1.
	TriggerValue float64
	PadX         float64
	PadY         float64
}

// A Runtime is the hardware tracking runtime the session polls against. All
// calls are synchronous and authoritative for the current poll; connection
// and handshake details live behind the implementation.
type Runtime interface {
	// Devices enumerates the currently visible tracked devices. Order is
	// the runtime's own enumeration order and is preserved downstream.
	Devices(ctx context.Context) ([]DeviceInfo, error)

	// RawPose returns the device's raw 4x4 pose matrix in hardware space.
	// It may be non-orthonormal due to accumulated floating error.
	RawPose(ctx context.Context, handle DeviceHandle) (mgl64.Mat4, error)

	// ButtonState returns a controller's raw button and axis readings.
	ButtonState(ctx context.Context, handle DeviceHandle) (ButtonState, error)

	Close() error
}

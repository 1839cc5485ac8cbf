package rig

import (
	"time"

	"github.com/echovr/rigtrack/spatialmath"
)

// A Snapshot is the queryable view of one device slot: the last corrected
// coordinate frame, its derived plane, and (for controllers) the last button
// and axis readings.
type Snapshot struct {
	Class DeviceClass
	Index int

	Frame spatialmath.Frame
	Plane spatialmath.Plane

	// Buttons is only populated for the controller class.
	Buttons ButtonState

	// CapturedAt is when the frame was last recomputed from live tracking.
	CapturedAt time.Time

	// Fresh reports whether the query that produced this snapshot
	// recomputed the frame (tracked=true) rather than returning the
	// cached, frozen value.
	Fresh bool
}

type slotKey struct {
	class DeviceClass
	index int
}

// A deviceSlot persists across polls for one (class, index) pair. Slots are
// created lazily on the first query that resolves a device at that index and
// live until the session is torn down; only tracked=true queries mutate the
// cached frame.
type deviceSlot struct {
	snap Snapshot
}

func newDeviceSlot(class DeviceClass, index int) *deviceSlot {
	frame := spatialmath.NewZeroFrame()
	return &deviceSlot{snap: Snapshot{
		Class: class,
		Index: index,
		Frame: frame,
		Plane: frame.Plane(),
	}}
}

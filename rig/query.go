package rig

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/echovr/rigtrack/spatialmath"
)

// ErrNotConnected is returned by Query when the last Connect or Update
// against the tracking runtime failed.
var ErrNotConnected = errors.New("not connected to tracking runtime")

// ErrInvalidClass is returned by Query for a class value outside the known
// device classes. The query aborts before touching any slot.
var ErrInvalidClass = errors.New("invalid device class")

type deviceNotFoundError struct {
	class DeviceClass
	index int
}

func (e *deviceNotFoundError) Error() string {
	return fmt.Sprintf("no %s device at index %d", e.class, e.index)
}

// IsDeviceNotFound reports whether the error signals that no device is
// currently classified at the requested (class, index).
func IsDeviceNotFound(err error) bool {
	var dnf *deviceNotFoundError
	return errors.As(err, &dnf)
}

// Query resolves the device currently classified at (class, index) and
// returns its slot's snapshot.
//
// With tracked true, the device's raw pose is fetched, corrected, and
// converted into a fresh frame that overwrites the slot. With tracked false
// the slot is deliberately frozen: the snapshot from the last tracked query
// is returned unchanged, letting a caller lock a reference frame while still
// reading it every poll.
//
// A request for an index with no classified device returns a not-found error
// and leaves the slot cache untouched.
func (s *Session) Query(ctx context.Context, class DeviceClass, index int, tracked bool) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !class.valid() {
		return Snapshot{}, ErrInvalidClass
	}
	if !s.connected {
		return Snapshot{}, ErrNotConnected
	}
	handles := s.classIndex[class]
	if index < 0 || index >= len(handles) {
		return Snapshot{}, &deviceNotFoundError{class: class, index: index}
	}

	key := slotKey{class: class, index: index}
	slot, ok := s.slots[key]
	if !ok {
		slot = newDeviceSlot(class, index)
		s.slots[key] = slot
	}

	if !tracked {
		slot.snap.Fresh = false
		return slot.snap, nil
	}

	handle := handles[index]
	raw, err := s.runtime.RawPose(ctx, handle)
	if err != nil {
		return Snapshot{}, errors.Wrapf(err, "reading pose of %s %d", class, index)
	}
	frame, degenerate := spatialmath.FrameFromMatrix(correctPose(raw, class), rigRowMajor)
	if degenerate != nil {
		s.logger.Warnw("normalized degenerate pose",
			"class", class.String(), "index", index, "error", degenerate)
	}
	var buttons ButtonState
	if class == ClassController {
		if buttons, err = s.runtime.ButtonState(ctx, handle); err != nil {
			return Snapshot{}, errors.Wrapf(err, "reading buttons of controller %d", index)
		}
	}

	// all reads succeeded; commit the slot in one go
	slot.snap.Frame = frame
	slot.snap.Plane = frame.Plane()
	slot.snap.Buttons = buttons
	slot.snap.CapturedAt = s.clock.Now()
	slot.snap.Fresh = true
	return slot.snap, nil
}

// rigRowMajor fixes the matrix convention for every pose crossing the
// Runtime boundary: column-vector convention, basis vectors in columns and
// translation in the fourth column. This must match the runtime's wire
// convention exactly and is deliberately a single constant rather than a
// per-call choice.
const rigRowMajor = false

// Package fake implements a fake tracking runtime with a configurable rig
// layout and optionally animated poses.
package fake

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/echovr/rigtrack/rig"
)

// A Runtime is an in-memory rig.Runtime. Devices are added with AddDevice and
// their poses and buttons set directly; Animate optionally moves every device
// along a slow circle in the background, the way a headset drifts on a desk.
type Runtime struct {
	mu         sync.Mutex
	nextHandle rig.DeviceHandle
	devices    []rig.DeviceInfo
	poses      map[rig.DeviceHandle]mgl64.Mat4
	buttons    map[rig.DeviceHandle]rig.ButtonState

	cancelAnimation         func()
	activeBackgroundWorkers sync.WaitGroup
}

// NewRuntime returns a runtime populated with a typical room-scale rig: one
// HMD, two controllers, two lighthouses, and one generic tracker.
func NewRuntime() *Runtime {
	r := NewEmptyRuntime()
	r.AddDevice(rig.ClassHMD)
	r.AddDevice(rig.ClassController)
	r.AddDevice(rig.ClassController)
	r.AddDevice(rig.ClassLighthouse)
	r.AddDevice(rig.ClassLighthouse)
	r.AddDevice(rig.ClassGenericTracker)
	return r
}

// NewEmptyRuntime returns a runtime with no devices attached.
func NewEmptyRuntime() *Runtime {
	return &Runtime{
		nextHandle: 1,
		poses:      map[rig.DeviceHandle]mgl64.Mat4{},
		buttons:    map[rig.DeviceHandle]rig.ButtonState{},
	}
}

// AddDevice attaches a new device of the given class at an identity pose and
// returns its handle.
func (r *Runtime) AddDevice(class rig.DeviceClass) rig.DeviceHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	handle := r.nextHandle
	r.nextHandle++
	r.devices = append(r.devices, rig.DeviceInfo{Handle: handle, Class: class})
	r.poses[handle] = mgl64.Ident4()
	return handle
}

// RemoveDevice detaches the device with the given handle, if present.
func (r *Runtime) RemoveDevice(handle rig.DeviceHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.devices {
		if d.Handle == handle {
			r.devices = append(r.devices[:i], r.devices[i+1:]...)
			break
		}
	}
	delete(r.poses, handle)
	delete(r.buttons, handle)
}

// SetPose sets the raw pose the runtime will report for the given handle.
func (r *Runtime) SetPose(handle rig.DeviceHandle, pose mgl64.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.poses[handle] = pose
}

// SetButtons sets the button state the runtime will report for the given
// handle.
func (r *Runtime) SetButtons(handle rig.DeviceHandle, state rig.ButtonState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buttons[handle] = state
}

// Devices implements rig.Runtime, in attachment order.
func (r *Runtime) Devices(ctx context.Context) ([]rig.DeviceInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]rig.DeviceInfo, len(r.devices))
	copy(out, r.devices)
	return out, nil
}

// RawPose implements rig.Runtime.
func (r *Runtime) RawPose(ctx context.Context, handle rig.DeviceHandle) (mgl64.Mat4, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pose, ok := r.poses[handle]
	if !ok {
		return mgl64.Mat4{}, errors.Errorf("unknown device handle %d", handle)
	}
	return pose, nil
}

// ButtonState implements rig.Runtime.
func (r *Runtime) ButtonState(ctx context.Context, handle rig.DeviceHandle) (rig.ButtonState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.poses[handle]; !ok {
		return rig.ButtonState{}, errors.Errorf("unknown device handle %d", handle)
	}
	return r.buttons[handle], nil
}

// Animate starts a background worker that walks every device along a slow
// circle, one step per updateRate, until the context is cancelled or the
// runtime is closed. Calling Animate again replaces the previous worker.
func (r *Runtime) Animate(ctx context.Context, updateRate time.Duration) {
	if updateRate == 0 {
		updateRate = 10 * time.Millisecond
	}
	cancelCtx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	if r.cancelAnimation != nil {
		r.cancelAnimation()
	}
	r.cancelAnimation = cancel
	r.mu.Unlock()
	r.activeBackgroundWorkers.Add(1)
	utils.ManagedGo(func() {
		var step int
		for {
			select {
			case <-cancelCtx.Done():
				return
			default:
			}
			if !utils.SelectContextOrWait(cancelCtx, updateRate) {
				return
			}
			step++
			r.mu.Lock()
			for i, d := range r.devices {
				angle := float64(step)/100 + float64(i)
				pose := mgl64.Translate3D(math.Cos(angle), 1.5, math.Sin(angle))
				r.poses[d.Handle] = pose.Mul4(mgl64.HomogRotate3DY(angle))
			}
			r.mu.Unlock()
		}
	}, r.activeBackgroundWorkers.Done)
}

// Close stops any animation worker and waits for it to exit.
func (r *Runtime) Close() error {
	r.mu.Lock()
	if r.cancelAnimation != nil {
		r.cancelAnimation()
		r.cancelAnimation = nil
	}
	r.mu.Unlock()
	r.activeBackgroundWorkers.Wait()
	return nil
}

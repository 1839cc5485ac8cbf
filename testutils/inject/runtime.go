// Package inject provides dependency-injected implementations with
// overridable functions for tests.
package inject

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/echovr/rigtrack/rig"
)

// Runtime is an injected tracking runtime. Any unset function falls through
// to the embedded rig.Runtime.
type Runtime struct {
	rig.Runtime
	DevicesFunc     func(ctx context.Context) ([]rig.DeviceInfo, error)
	RawPoseFunc     func(ctx context.Context, handle rig.DeviceHandle) (mgl64.Mat4, error)
	ButtonStateFunc func(ctx context.Context, handle rig.DeviceHandle) (rig.ButtonState, error)
	CloseFunc       func() error
}

// Devices calls the injected Devices or the real version.
func (r *Runtime) Devices(ctx context.Context) ([]rig.DeviceInfo, error) {
	if r.DevicesFunc == nil {
		return r.Runtime.Devices(ctx)
	}
	return r.DevicesFunc(ctx)
}

// RawPose calls the injected RawPose or the real version.
func (r *Runtime) RawPose(ctx context.Context, handle rig.DeviceHandle) (mgl64.Mat4, error) {
	if r.RawPoseFunc == nil {
		return r.Runtime.RawPose(ctx, handle)
	}
	return r.RawPoseFunc(ctx, handle)
}

// ButtonState calls the injected ButtonState or the real version.
func (r *Runtime) ButtonState(ctx context.Context, handle rig.DeviceHandle) (rig.ButtonState, error) {
	if r.ButtonStateFunc == nil {
		return r.Runtime.ButtonState(ctx, handle)
	}
	return r.ButtonStateFunc(ctx, handle)
}

// Close calls the injected Close or the real version.
func (r *Runtime) Close() error {
	if r.CloseFunc == nil {
		return r.Runtime.Close()
	}
	return r.CloseFunc()
}

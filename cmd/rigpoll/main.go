// Package main contains a command to poll a fake VR tracking rig and print
// device snapshots.
package main

import (
	"context"
	"math"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"github.com/echovr/rigtrack/rig"
	"github.com/echovr/rigtrack/rig/fake"
	rigutils "github.com/echovr/rigtrack/utils"
)

var logger = golog.NewDevelopmentLogger("rigpoll")

// createRuntime is swapped out in tests.
var createRuntime = func(ctx context.Context) rig.Runtime {
	runtime := fake.NewRuntime()
	runtime.Animate(ctx, 0)
	return runtime
}

func main() {
	utils.ContextualMainQuit(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	IntervalMS int  `flag:"interval,default=100,usage=poll interval in milliseconds"`
	Count      int  `flag:"count,default=0,usage=number of polls to run (0 runs until interrupted)"`
	FreezeHMD  bool `flag:"freeze-hmd,usage=freeze the HMD frame after the first poll"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	if argsParsed.IntervalMS <= 0 {
		return errors.New("interval must be positive")
	}

	return pollRig(ctx, createRuntime(ctx), argsParsed)
}

func pollRig(ctx context.Context, runtime rig.Runtime, args Arguments) (err error) {
	session := rig.New(runtime, logger)
	defer func() {
		err = multierr.Combine(err, session.Close())
	}()

	if err := session.Connect(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Duration(args.IntervalMS) * time.Millisecond)
	defer ticker.Stop()
	var polls int
	var once bool
	for {
		err := func() error {
			defer utils.ContextMainIterFunc(ctx)()
			if !once {
				once = true
				defer utils.ContextMainReadyFunc(ctx)()
			}
			if !utils.SelectContextOrWaitChan(ctx, ticker.C) {
				return ctx.Err()
			}

			if err := session.Update(ctx); err != nil {
				logger.Errorw("failed to refresh device list", "error", err)
				return nil
			}
			trackHMD := !args.FreezeHMD || polls == 0
			logSnapshot(session.Query(ctx, rig.ClassHMD, 0, trackHMD))
			for i := 0; i < session.DeviceCount(rig.ClassController); i++ {
				logSnapshot(session.Query(ctx, rig.ClassController, i, true))
			}
			polls++
			return nil
		}()
		if err != nil {
			return err
		}
		if args.Count > 0 && polls >= args.Count {
			return nil
		}
	}
}

func logSnapshot(snap rig.Snapshot, err error) {
	if err != nil {
		logger.Errorw("query failed", "error", err)
		return
	}
	forward := snap.Frame.AxisZ
	headingDeg := rigutils.RadToDeg(math.Atan2(forward.X, forward.Z))
	logger.Infow("pose",
		"class", snap.Class.String(),
		"index", snap.Index,
		"origin", snap.Frame.Origin,
		"heading_deg", headingDeg,
		"fresh", snap.Fresh,
	)
}

package main

import (
	"context"
	"testing"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/zap/zaptest/observer"
	"go.viam.com/test"
	"go.viam.com/utils/testutils"

	"github.com/echovr/rigtrack/rig"
	"github.com/echovr/rigtrack/testutils/inject"
)

func TestMainMain(t *testing.T) {
	defaultCreateRuntime := createRuntime
	reset := func(t *testing.T, tLogger golog.Logger, _ *testutils.ContextualMainExecution) {
		t.Helper()
		logger = tLogger
		createRuntime = defaultCreateRuntime
	}
	defer func() {
		createRuntime = defaultCreateRuntime
	}()

	testutils.TestMain(t, mainWithArgs, []testutils.MainTestCase{
		// parsing
		{Name: "unknown named arg", Args: []string{"--unknown"}, Err: "not defined", Before: reset},
		{Name: "bad count flag", Args: []string{"--count=who"}, Err: "parse", Before: reset},
		{Name: "bad interval", Args: []string{"--interval=0"}, Err: "positive", Before: reset},

		// polling
		{Name: "unreachable runtime", Args: []string{"--count=1"}, Err: "whoops", Before: func(t *testing.T, tLogger golog.Logger, exec *testutils.ContextualMainExecution) {
			t.Helper()
			reset(t, tLogger, exec)
			createRuntime = func(ctx context.Context) rig.Runtime {
				runtime := &inject.Runtime{}
				runtime.DevicesFunc = func(ctx context.Context) ([]rig.DeviceInfo, error) {
					return nil, errors.New("whoops")
				}
				runtime.CloseFunc = func() error { return nil }
				return runtime
			}
		}},
		{Name: "counted polls", Args: []string{"--count=2", "--interval=5"}, Before: reset, After: func(t *testing.T, logs *observer.ObservedLogs) {
			t.Helper()
			test.That(t, len(logs.FilterMessageSnippet("pose").All()), test.ShouldBeGreaterThanOrEqualTo, 2)
			test.That(t, len(logs.FilterMessageSnippet("connected").All()), test.ShouldBeGreaterThanOrEqualTo, 1)
		}},
		{Name: "frozen hmd", Args: []string{"--count=2", "--interval=5", "--freeze-hmd"}, Before: reset, After: func(t *testing.T, logs *observer.ObservedLogs) {
			t.Helper()
			test.That(t, len(logs.FilterMessageSnippet("pose").All()), test.ShouldBeGreaterThanOrEqualTo, 2)
		}},
		{Name: "until interrupted", Before: func(t *testing.T, tLogger golog.Logger, exec *testutils.ContextualMainExecution) {
			t.Helper()
			reset(t, tLogger, exec)
			exec.ExpectIters(t, 2)
		}, During: func(ctx context.Context, t *testing.T, exec *testutils.ContextualMainExecution) {
			t.Helper()
			exec.WaitIters(t)
		}, After: func(t *testing.T, logs *observer.ObservedLogs) {
			t.Helper()
			test.That(t, len(logs.FilterMessageSnippet("pose").All()), test.ShouldBeGreaterThanOrEqualTo, 1)
		}},
	})
}

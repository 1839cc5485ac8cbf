package rig

import (
	"context"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// A Session owns the connect/update cycle against a tracking runtime and all
// state that persists across polls: the per-class device index, the device
// slot cache, and the connection state. It is the explicit context object the
// host scheduler passes around; there is no package-level state.
//
// A single mutex guards the resolve/correct/convert/write sequence, so a host
// that polls from more than one goroutine never observes a partially written
// slot. The intended use is still one sequential poll loop.
type Session struct {
	mu      sync.Mutex
	id      uuid.UUID
	runtime Runtime
	logger  golog.Logger
	clock   clock.Clock

	connected  bool
	lastErr    error
	classIndex map[DeviceClass][]DeviceHandle
	slots      map[slotKey]*deviceSlot
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used to stamp snapshot capture times.
func WithClock(c clock.Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// New returns a session polling the given runtime. Nothing is contacted until
// Connect.
func New(runtime Runtime, logger golog.Logger, opts ...Option) *Session {
	s := &Session{
		id:      uuid.New(),
		runtime: runtime,
		logger:  logger,
		clock:   clock.New(),
		slots:   map[slotKey]*deviceSlot{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session's identifier, used to correlate log lines.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Connect performs the handshake against the tracking runtime by running a
// first device enumeration. On failure the session records the error and
// stays disconnected; there is no automatic retry, the caller's poll loop is
// expected to call Connect again later.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	devices, err := s.runtime.Devices(ctx)
	if err != nil {
		s.connected = false
		s.lastErr = errors.Wrap(err, "connecting to tracking runtime")
		return s.lastErr
	}
	s.classIndex = classify(devices)
	s.connected = true
	s.lastErr = nil
	s.logger.Infow("connected to tracking runtime",
		"session", s.id.String(), "devices", len(devices))
	return nil
}

// Update refreshes the raw device list for the current poll and recomputes
// the per-class index. On failure the session transitions to disconnected
// and queries fail until a later Connect or Update succeeds; the previous
// slot cache is kept.
func (s *Session) Update(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	devices, err := s.runtime.Devices(ctx)
	if err != nil {
		s.connected = false
		s.lastErr = errors.Wrap(err, "refreshing device list")
		return s.lastErr
	}
	s.classIndex = classify(devices)
	s.connected = true
	s.lastErr = nil
	return nil
}

// Connected reports whether the last Connect or Update succeeded.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Err returns the error recorded by the last failed Connect or Update, or
// nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// DeviceCount returns how many devices are currently classified into the
// given class.
func (s *Session) DeviceCount(class DeviceClass) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.classIndex[class])
}

// Close releases the underlying runtime.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	return s.runtime.Close()
}

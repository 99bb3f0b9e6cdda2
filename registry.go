package rchan

import (
	"time"

	"github.com/cornelk/hashmap"
	"github.com/hedzr/go-ringbuf/v2/mpmc"
	"github.com/sirupsen/logrus"
)

// CommitEvent is one entry in a Registry's commit trace: a record that
// some wish on some channel was fulfilled, or that the channel was
// closed. It exists purely for debugging and for test failure output —
// nothing in the package reads it back to make a decision.
type CommitEvent struct {
	ChanID uint64
	Kind   string // "send", "receive" or "close"
	Closed bool
	At     time.Time
}

// ChannelSnapshot describes one live channel's state at the moment
// Registry.Snapshot was called.
type ChannelSnapshot struct {
	ID         uint64
	Closed     bool
	Buffered   int
	BufferCap  int
	SendersQ   int
	ReceiversQ int
}

// Registry is an opt-in, lock-free side channel for introspection. It
// has no lock of its own: registering, deregistering, and tracing all
// go through cornelk/hashmap (a lock-free concurrent map) and a
// lock-free MPMC ring. Trace events are recorded while the committing
// channel's lock is held, and Snapshot takes each channel's own lock
// in turn, one at a time, to read its state. A disabled
// or absent registry changes nothing about Send/Receive/Select/Close's
// observable behavior.
type Registry struct {
	channels *hashmap.Map[uint64, *Chan]
	trace    mpmc.RichOverlappedRingBuffer[CommitEvent]
	logger   *logrus.Logger
}

// defaultRegistry is the registry every NewChannel call registers
// into. Tracing is disabled (trace == nil) until EnableTrace is
// called, so the common case pays only a lock-free map insert.
var defaultRegistry = NewRegistry(nil)

// NewRegistry creates a standalone registry. Most callers don't need
// one: NewChannel always uses the package-level default. A logger may
// be supplied so registry events land in the same structured log
// stream as the rest of an application (see pkg/config); nil defaults
// to a silenced logger.
func NewRegistry(logger *logrus.Logger) *Registry {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	return &Registry{
		channels: hashmap.New[uint64, *Chan](),
		logger:   logger,
	}
}

// EnableTrace turns on the bounded commit-event trace with room for
// size recent events, overwriting the oldest once full. Calling it
// again replaces the trace and discards prior events.
func (r *Registry) EnableTrace(size uint32) {
	r.trace = mpmc.NewOverlappedRingBuffer[CommitEvent](size)
}

// DefaultRegistry returns the registry every NewChannel'd channel is
// registered in.
func DefaultRegistry() *Registry { return defaultRegistry }

func (r *Registry) register(c *Chan) {
	r.channels.Set(c.id, c)
}

// Unregister removes a channel from the registry. Tests that create
// many short-lived channels call this to keep Snapshot from
// accumulating entries for channels nobody holds a reference to
// anymore; production code can rely on process exit instead.
func (r *Registry) Unregister(c *Chan) {
	r.channels.Del(c.id)
}

func (r *Registry) recordClose(id uint64) {
	if ch, ok := r.channels.Get(id); ok {
		r.record(ch, "close", true)
	}
}

func (r *Registry) record(c *Chan, kind string, closed bool) {
	if r.trace == nil {
		return
	}
	overwrites, err := r.trace.EnqueueM(CommitEvent{
		ChanID: c.id,
		Kind:   kind,
		Closed: closed,
		At:     time.Now(),
	})
	if err != nil {
		r.logger.WithError(err).Warn("rchan: registry trace enqueue failed")
		return
	}
	if overwrites > 0 {
		r.logger.WithField("overwritten", overwrites).Debug("rchan: registry trace dropped oldest entries")
	}
}

// Snapshot returns the current state of every registered channel. The
// result is a point-in-time view assembled by holding each channel's
// lock only while that channel's fields are read, so it is cheap but
// not atomic across channels — fine for diagnostics, not for deciding
// correctness.
func (r *Registry) Snapshot() []ChannelSnapshot {
	out := make([]ChannelSnapshot, 0, r.channels.Len())
	r.channels.Range(func(id uint64, c *Chan) bool {
		c.mu.Lock()
		s := ChannelSnapshot{
			ID:         c.id,
			Closed:     c.closed,
			SendersQ:   c.senders.Len(),
			ReceiversQ: c.receivers.Len(),
		}
		if c.buf != nil {
			s.Buffered = c.buf.Len()
			s.BufferCap = c.buf.Cap()
		}
		c.mu.Unlock()
		out = append(out, s)
		return true
	})
	return out
}

// Trace drains the registry's commit-event history without blocking.
// Returns nil if tracing was never enabled via EnableTrace.
func (r *Registry) Trace() []CommitEvent {
	if r.trace == nil {
		return nil
	}
	var out []CommitEvent
	for !r.trace.IsEmpty() {
		ev, err := r.trace.Dequeue()
		if err != nil {
			break
		}
		out = append(out, ev)
	}
	return out
}

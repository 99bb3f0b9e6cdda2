package rchan

import (
	"sync/atomic"

	"github.com/srg/rchan/pkg/config"
)

var currentConfig atomic.Pointer[config.Config]

func init() {
	currentConfig.Store(config.DefaultConfig())
}

// Configure replaces the package-level defaults NewDefaultChannel,
// (*TypedChan[T]).SendDefault, and (*TypedChan[T]).ReceiveDefault
// consult, and routes the double-close/invariant-violation logger
// through cfg.NewLogger() so those diagnostics land in the same
// structured stream as the rest of an application built on this
// package. Passing nil is a no-op.
func Configure(cfg *config.Config) {
	if cfg == nil {
		return
	}
	currentConfig.Store(cfg)
	SetLogger(cfg.NewLogger())
}

func activeConfig() *config.Config {
	return currentConfig.Load()
}

// NewDefaultChannel constructs a channel using the active
// configuration's DefaultBufferSize rather than naming a capacity
// explicitly.
func NewDefaultChannel[T any]() *TypedChan[T] {
	return NewChannel[T](activeConfig().DefaultBufferSize)
}

// SendDefault sends using the active configuration's DefaultTimeout.
// A zero DefaultTimeout blocks forever, matching the package's own
// no-argument convention, rather than attempting a non-blocking send
// the way an explicit Send(v, 0) call would.
func (c *TypedChan[T]) SendDefault(v T) error {
	if d := activeConfig().DefaultTimeout; d > 0 {
		return c.Send(v, d)
	}
	return c.Send(v)
}

// ReceiveDefault receives using the active configuration's
// DefaultTimeout, with the same zero-means-forever treatment as
// SendDefault.
func (c *TypedChan[T]) ReceiveDefault() (T, error) {
	if d := activeConfig().DefaultTimeout; d > 0 {
		return c.Receive(d)
	}
	return c.Receive()
}

package rchan

import "time"

// TypedChan is the channel object callers construct and use directly.
// It pairs the untyped Chan core with a compile-time element type, so
// Send/Receive never require a type assertion at the call site. The
// embedded *Chan is what Select operates on, and what ID/Closed read
// from — Go generics can't put values of different T in one slice, so
// Select works against the erased core and TypedChan[T] supplies the
// boxing/unboxing around it.
type TypedChan[T any] struct {
	*Chan
}

// NewChannel constructs a channel. buflen == 0 means unbuffered: every
// send blocks until a receiver is present (or vice versa). buflen > 0
// backs the channel with a ringbuffer.Ring of that capacity.
//
// The channel registers itself with the package's default diagnostics
// registry; this has no effect on Send, Receive, Close, or Select
// semantics.
func NewChannel[T any](buflen int) *TypedChan[T] {
	return &TypedChan[T]{Chan: newChan(buflen, defaultRegistry)}
}

// Send places v onto the channel. With no timeout argument it blocks
// forever; timeout[0] == 0 is a non-blocking attempt; any other value
// is a wall-clock deadline computed once at the start of the call.
// Only the first variadic argument is consulted — Go has no optional
// parameters, so a variadic slot stands in for an optional timeout.
func (c *TypedChan[T]) Send(v T, timeout ...time.Duration) error {
	return c.Chan.send(v, toDeadline(timeout))
}

// Receive returns the next value placed on the channel, or ErrClosed
// if the channel closed with nothing left to deliver, or ErrTimeout if
// the deadline elapsed first.
func (c *TypedChan[T]) Receive(timeout ...time.Duration) (T, error) {
	v, err := c.Chan.receive(toDeadline(timeout))
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Close marks the channel closed. Calling Close twice panics after
// logging at Error level — ErrDoubleClose is a programmer error, not a
// recoverable outcome.
func (c *TypedChan[T]) Close() {
	if err := c.Chan.close(); err != nil {
		logDoubleClose(c.Chan.id)
		panic(err)
	}
}

// Closed reports an advisory status: closed, and no waiting sender is
// still enqueued. Buffered data may still be pending — prefer checking
// the error from Receive.
func (c *TypedChan[T]) Closed() bool {
	return c.Chan.closedAndDrained()
}

// Range is a receive loop that stops cleanly on ErrClosed. It has the
// shape Go 1.23's range-over-func expects, so `for v := range
// ch.Range` works directly.
func (c *TypedChan[T]) Range(yield func(T) bool) {
	for {
		v, err := c.Receive()
		if err != nil {
			return
		}
		if !yield(v) {
			return
		}
	}
}

func toDeadline(timeout []time.Duration) deadline {
	if len(timeout) == 0 {
		return noDeadline()
	}
	return deadlineFrom(timeout[0])
}

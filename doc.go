// Package rchan implements a CSP-style rendezvous channel with optional
// bounded buffering, explicit closure, per-operation timeouts, and an
// atomic multi-way Select over pending send/receive operations.
//
// A Chan pairs one sender with one receiver: an unbuffered channel's
// Send blocks until a Receive is ready for it (and vice versa), while a
// buffered channel's Send only blocks once its ring buffer is full.
// Close is one-shot; buffered values already in flight still drain to
// receivers afterward, and only once both the buffer and the waiting-
// sender queue are empty does Receive start failing with ErrClosed.
//
//	c := rchan.NewChannel[string](0)
//	go func() {
//		c.Send("hello")
//		c.Close()
//	}()
//	for v := range c.Range {
//		fmt.Println(v)
//	}
//
// Select commits to exactly one of a set of receive/send candidates,
// choosing uniformly at random among whichever are simultaneously
// ready:
//
//	winner, v, err := rchan.Select([]*rchan.Chan{a.Chan, b.Chan}, nil, 10*time.Millisecond)
//
// The package has no notion of cross-channel fairness, persistence, or
// priority delivery, and no cancellation mechanism besides a timeout.
package rchan

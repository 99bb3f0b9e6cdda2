package rchan

import (
	"sync"
	"sync/atomic"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/srg/rchan/pkg/ringbuffer"
)

// chanSeq assigns each Chan a stable identity used both for select's
// total lock order and as the diagnostics registry key — a stable
// per-channel integer rather than address identity, so traces stay
// reproducible across runs.
var chanSeq uint64

func nextChanID() uint64 {
	return atomic.AddUint64(&chanSeq, 1)
}

// Chan is the untyped core of a channel: one mutex guarding a closed
// flag, an optional ring buffer, and two FIFO queues of waiting
// wishes. It carries values boxed as any so that Select can operate
// over channels of different element types; TypedChan[T] is the
// generic, type-safe facade callers actually construct.
type Chan struct {
	id     uint64
	mu     sync.Mutex
	closed bool
	buf    *ringbuffer.Ring[any]

	// FIFO queues, keyed by wish id so a timeout sweep or a select's
	// post-wait cleanup can remove a specific wish in O(1) rather than
	// scanning a slice for it.
	senders   *orderedmap.OrderedMap[uint64, *wish]
	receivers *orderedmap.OrderedMap[uint64, *wish]

	registry *Registry
}

// newChan builds the untyped core shared by every TypedChan[T].
func newChan(buflen int, registry *Registry) *Chan {
	c := &Chan{
		id:        nextChanID(),
		senders:   orderedmap.New[uint64, *wish](),
		receivers: orderedmap.New[uint64, *wish](),
		registry:  registry,
	}
	if buflen > 0 {
		c.buf = ringbuffer.New[any](buflen)
	}
	if registry != nil {
		registry.register(c)
	}
	return c
}

// ID returns the channel's stable identity, used for lock ordering and
// as a diagnostics key. It has no meaning beyond uniqueness and
// construction order.
func (c *Chan) ID() uint64 { return c.id }

// tryReceive attempts a non-blocking receive. c.mu must be held.
//
// If the buffer holds a value, it is popped and, as a cycling step, one
// waiting sender's value (if any) is committed into the slot just
// freed — this preserves FIFO order between buffered values and
// waiting senders. If the buffer is empty or absent, the
// waiting-sender queue is walked head-first, skipping any wish whose
// group already committed elsewhere: a lazy sweep that tolerates a
// wish being claimed by a racing timeout or select just before this
// walk reaches it.
func (c *Chan) tryReceive() (any, bool) {
	fulfillWaitingSender := func() (any, bool) {
		for {
			pair := c.senders.Oldest()
			if pair == nil {
				return nil, false
			}
			c.senders.Delete(pair.Key)
			w := pair.Value
			w.group.mu.Lock()
			if w.group.committedBy != nil {
				w.group.mu.Unlock()
				continue
			}
			w.fulfill(nil, false)
			w.group.mu.Unlock()
			if c.registry != nil {
				c.registry.record(c, "receive", false)
			}
			return w.value, true
		}
	}

	if c.buf != nil && !c.buf.IsEmpty() {
		v := c.buf.Pop()
		if produced, ok := fulfillWaitingSender(); ok {
			c.buf.Push(produced)
		}
		return v, true
	}
	return fulfillWaitingSender()
}

// trySend attempts a non-blocking send. c.mu must be held.
//
// It walks the waiting-receiver queue the same way tryReceive walks
// senders; failing that, it pushes into a non-full buffer; failing
// that, it reports Full via the bool result.
func (c *Chan) trySend(v any) bool {
	for {
		pair := c.receivers.Oldest()
		if pair != nil {
			c.receivers.Delete(pair.Key)
			w := pair.Value
			w.group.mu.Lock()
			if w.group.committedBy != nil {
				w.group.mu.Unlock()
				continue
			}
			w.fulfill(v, false)
			w.group.mu.Unlock()
			if c.registry != nil {
				c.registry.record(c, "send", false)
			}
			return true
		}
		if c.buf != nil && !c.buf.IsFull() {
			c.buf.Push(v)
			return true
		}
		return false
	}
}

// deadline bundles an optional wall-clock deadline computed once at
// the start of a blocking call. Timeout is the only cancellation
// mechanism a blocking call supports.
type deadline struct {
	at  time.Time
	has bool
}

func noDeadline() deadline { return deadline{} }

func deadlineFrom(timeout time.Duration) deadline {
	return deadline{at: time.Now().Add(timeout), has: true}
}

// expired reports whether d has a deadline and it has already passed.
func (d deadline) expired() bool {
	return d.has && !time.Now().Before(d.at)
}

// send runs the blocking send protocol for value v against this
// untyped core. A zero-value deadline (no argument means block
// forever) never expires.
func (c *Chan) send(v any, d deadline) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return &ErrClosed{Which: c}
	}
	if c.trySend(v) {
		c.mu.Unlock()
		return nil
	}
	if d.expired() {
		c.mu.Unlock()
		return ErrTimeout
	}

	group := newWishGroup()
	w := newWish(group, wishSend, c, v)
	c.senders.Set(w.id, w)
	c.mu.Unlock()

	return c.awaitCommit(w, d, c.senders)
}

// receive runs the blocking receive protocol.
func (c *Chan) receive(d deadline) (any, error) {
	c.mu.Lock()
	if v, ok := c.tryReceive(); ok {
		c.mu.Unlock()
		return v, nil
	}
	if c.closed {
		c.mu.Unlock()
		return nil, &ErrClosed{Which: c}
	}
	if d.expired() {
		c.mu.Unlock()
		return nil, ErrTimeout
	}

	group := newWishGroup()
	w := newWish(group, wishReceive, c, nil)
	c.receivers.Set(w.id, w)
	c.mu.Unlock()

	v, err := c.awaitCommit(w, d, c.receivers)
	return v, err
}

// awaitCommit waits on w's group, then — on timeout — sweeps w out of
// queue under c's lock, tolerating its own absence (a peer may have
// committed it in the window between the condvar wake and the sweep).
func (c *Chan) awaitCommit(w *wish, d deadline, queue *orderedmap.OrderedMap[uint64, *wish]) (any, error) {
	w.group.waitForCommit(d)

	w.group.mu.Lock()
	committed := w.group.committedBy != nil
	w.group.mu.Unlock()

	if !committed {
		c.mu.Lock()
		queue.Delete(w.id)
		c.mu.Unlock()

		w.group.mu.Lock()
		committed = w.group.committedBy != nil
		w.group.mu.Unlock()

		if !committed {
			return nil, ErrTimeout
		}
	}

	if w.closed {
		return nil, &ErrClosed{Which: c}
	}
	if w.kind == wishReceive {
		return w.value, nil
	}
	return nil, nil
}

// close marks the channel closed and wakes every waiting wish with
// closed=true. The channel lock and a wish's group lock are never held
// simultaneously here: the waiting queues are snapshotted and emptied
// under c.mu, then each wish's group is locked individually after c.mu
// is released.
func (c *Chan) close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrDoubleClose
	}
	c.closed = true

	waiters := make([]*wish, 0, c.senders.Len()+c.receivers.Len())
	for pair := c.senders.Oldest(); pair != nil; pair = pair.Next() {
		waiters = append(waiters, pair.Value)
	}
	for pair := c.receivers.Oldest(); pair != nil; pair = pair.Next() {
		waiters = append(waiters, pair.Value)
	}
	c.senders = orderedmap.New[uint64, *wish]()
	c.receivers = orderedmap.New[uint64, *wish]()
	c.mu.Unlock()

	for _, w := range waiters {
		w.group.mu.Lock()
		if w.group.committedBy == nil {
			w.fulfill(nil, true)
		}
		w.group.mu.Unlock()
	}

	if c.registry != nil {
		c.registry.recordClose(c.id)
	}
	return nil
}

// closedAndDrained reports the advisory "closed" property: closed and
// no waiting sender remains enqueued. This is neither "no more values
// possible" (the buffer may still hold items) nor "buffer empty" —
// callers should route correctness through Receive's ErrClosed, not
// this property.
func (c *Chan) closedAndDrained() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed && c.senders.Len() == 0
}

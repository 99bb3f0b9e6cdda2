package rchan

import "sync/atomic"

type wishKind int

const (
	wishSend wishKind = iota
	wishReceive
)

func (k wishKind) String() string {
	if k == wishSend {
		return "send"
	}
	return "receive"
}

// wishSeq hands out the per-wish sequence numbers used as ordered-map
// keys, so two wishes enqueued in the same instant still sort FIFO.
var wishSeq uint64

func nextWishID() uint64 {
	return atomic.AddUint64(&wishSeq, 1)
}

// wish is a single pending intent to send or receive one value on one
// channel, bound to exactly one group.
//
// For a send wish, value holds the outgoing payload from construction
// onward. For a receive wish, value is nil until a peer's commit fills
// it in. closed is set by whichever commit (ordinary peer or Close's
// sweep) resolves the wish.
type wish struct {
	id      uint64
	kind    wishKind
	channel *Chan
	value   any
	closed  bool
	group   *wishGroup
}

func newWish(group *wishGroup, kind wishKind, ch *Chan, value any) *wish {
	w := &wish{
		id:      nextWishID(),
		kind:    kind,
		channel: ch,
		value:   value,
		group:   group,
	}
	group.wishes = append(group.wishes, w)
	return w
}

// fulfill commits w with the given value (for a receive wish) and
// closed flag. Caller must hold w.group.mu and must have confirmed the
// group isn't already committed.
func (w *wish) fulfill(value any, closed bool) {
	w.group.commit(w, value, closed)
}

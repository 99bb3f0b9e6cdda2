package rchan

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMutualExclusionOfCommit hammers a single unbuffered channel with
// many concurrent senders and one receiver per round; only one sender
// should ever observe its send as having succeeded for a given
// receive, and the group invariant (commit panics if called twice)
// backs this at the group level too.
func TestMutualExclusionOfCommit(t *testing.T) {
	const rounds = 200
	c := NewChannel[int](0)

	var committed int64
	var wg sync.WaitGroup
	wg.Add(rounds)

	for i := 0; i < rounds; i++ {
		go func(v int) {
			defer wg.Done()
			if err := c.Send(v); err == nil {
				atomic.AddInt64(&committed, 1)
			}
		}(i)
	}

	for i := 0; i < rounds; i++ {
		_, err := c.Receive()
		require.NoError(t, err)
	}
	wg.Wait()

	assert.Equal(t, int64(rounds), committed)
}

// TestClosureDrainFIFO checks that after Close, every value already
// buffered is still delivered in FIFO order before Receive starts
// reporting ErrClosed.
func TestClosureDrainFIFO(t *testing.T) {
	c := NewChannel[int](10)
	for i := 0; i < 10; i++ {
		require.NoError(t, c.Send(i))
	}
	c.Close()

	for i := 0; i < 10; i++ {
		v, err := c.Receive()
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}

	_, err := c.Receive()
	var closedErr *ErrClosed
	assert.ErrorAs(t, err, &closedErr)
}

// TestSelectFairness checks that with N receive candidates whose
// channels all have a sender ready, a select loop picks each roughly
// 1/N of the time rather
// than favoring position in the candidate list.
func TestSelectFairness(t *testing.T) {
	const n = 4
	const trials = 2000

	chans := make([]*TypedChan[int], n)
	for i := range chans {
		chans[i] = NewChannel[int](0)
	}

	counts := make([]int, n)
	var wg sync.WaitGroup
	wg.Add(trials)

	var mu sync.Mutex
	for i := 0; i < trials; i++ {
		go func() {
			defer wg.Done()
			receivers := make([]*Chan, n)
			for j, tc := range chans {
				receivers[j] = tc.Chan
			}
			winner, _, err := Select(receivers, nil, 200*time.Millisecond)
			if err != nil {
				return
			}
			for j, tc := range chans {
				if tc.Chan == winner {
					mu.Lock()
					counts[j]++
					mu.Unlock()
				}
			}
		}()
	}

	for i := 0; i < n; i++ {
		go func(idx int) {
			for j := 0; j < trials/n+1; j++ {
				_ = chans[idx].Send(idx, 200*time.Millisecond)
			}
		}(i)
	}

	wg.Wait()

	total := 0
	for _, c := range counts {
		total += c
	}
	require.Greater(t, total, 0)

	expected := float64(total) / float64(n)
	for j, c := range counts {
		deviation := float64(c) - expected
		if deviation < 0 {
			deviation = -deviation
		}
		assert.Lessf(t, deviation, expected, "candidate %d got %d of %d picks, expected roughly %.0f", j, c, total, expected)
	}
}

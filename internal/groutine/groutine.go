// Package groutine spawns named goroutines for the test harness. It is
// not part of rchan's public surface — a thread/task spawning helper
// is an external collaborator the channel primitive itself doesn't
// own — but the concurrency tests need a way to launch many
// producers/distributors/sinks and wait for all of them cleanly.
package groutine

import (
	"bytes"
	"context"
	"runtime"
	"runtime/pprof"
	"strconv"
	"sync"
)

type ctxKey string

const goroutineNameKey ctxKey = "goroutine_name"

// Go starts a named goroutine with an optional parent context. The
// name shows up in pprof labels and via GetName, which is enough to
// tell "dist_layer1_03" from "sayer" in a stack dump when a
// concurrency test hangs.
func Go(parentCtx context.Context, name string, fn func(ctx context.Context)) {
	if parentCtx == nil {
		parentCtx = context.Background()
	}

	labels := pprof.Labels("goroutine_name", name)

	go pprof.Do(parentCtx, labels, func(ctx context.Context) {
		ctx = context.WithValue(ctx, goroutineNameKey, name)
		fn(ctx)
	})
}

// GetName retrieves the goroutine name Go attached to ctx, or "".
func GetName(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v := ctx.Value(goroutineNameKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetGID returns the numeric goroutine ID (hacky, for test-failure
// diagnostics only — never compare or branch on it in production code).
func GetGID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	i := bytes.IndexByte(b, ' ')
	if i < 0 {
		return 0
	}
	gid, _ := strconv.ParseUint(string(b[:i]), 10, 64)
	return gid
}

// Fleet spawns one named goroutine per entry in fns (named
// "namePrefix-0", "namePrefix-1", ...) and returns a function that
// blocks until all of them have returned. Built for pipeline-shaped
// tests — a fan-in topology with dozens of distributor goroutines —
// where tracking each one's own *sync.WaitGroup by hand would be
// repetitive.
func Fleet(parentCtx context.Context, namePrefix string, fns ...func(ctx context.Context)) (wait func()) {
	var wg sync.WaitGroup
	wg.Add(len(fns))
	for i, fn := range fns {
		fn := fn
		Go(parentCtx, namePrefix+"-"+strconv.Itoa(i), func(ctx context.Context) {
			defer wg.Done()
			fn(ctx)
		})
	}
	return wg.Wait
}

package store

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Feed holds the latest materialized snapshot of one collection and
// fans it out to live watchers (SSE streams). Each pushed snapshot is
// a total replacement of the previous one; there is no merging and
// nothing expires.
type Feed[T Doc] struct {
	name   string
	logger *zap.Logger

	mu       sync.RWMutex
	latest   []T
	ready    bool
	failed   error
	watchers map[int]chan []T
	nextID   int
}

func NewFeed[T Doc](name string, logger *zap.Logger) *Feed[T] {
	return &Feed[T]{
		name:     name,
		logger:   logger,
		watchers: make(map[int]chan []T),
	}
}

// Run consumes a subscription until it ends, then records the terminal
// error so views render a failure instead of loading forever.
func (f *Feed[T]) Run(ctx context.Context, sub *Subscription[T]) {
	defer sub.Close()

	for {
		select {
		case snap, ok := <-sub.Snapshots():
			if !ok {
				if err := sub.Err(); err != nil {
					f.logger.Error("collection stream failed",
						zap.String("collection", f.name),
						zap.Error(err),
					)
					f.Fail(err)
				}
				return
			}
			f.Push(snap)
		case <-ctx.Done():
			return
		}
	}
}

// Push replaces the latest snapshot and notifies watchers. Slow
// watchers lose intermediate snapshots, never the newest.
func (f *Feed[T]) Push(snap []T) {
	f.mu.Lock()
	f.latest = snap
	f.ready = true
	for _, ch := range f.watchers {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	f.mu.Unlock()
}

// Latest returns the current snapshot. ok is false until the first
// snapshot arrives.
func (f *Feed[T]) Latest() (list []T, ok bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.latest, f.ready
}

// Err reports the terminal stream error, if the feed has failed.
func (f *Feed[T]) Err() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.failed
}

// Fail marks the feed broken so data endpoints answer with an error
// state instead of hanging on a perpetual loading indicator. Open
// watcher channels are closed so live streams end instead of waiting
// on a feed that will never push again.
func (f *Feed[T]) Fail(err error) {
	f.mu.Lock()
	f.failed = err
	for id, ch := range f.watchers {
		close(ch)
		delete(f.watchers, id)
	}
	f.mu.Unlock()
}

// Watch registers a live watcher. The returned cancel func must be
// called when the consumer goes away.
func (f *Feed[T]) Watch() (<-chan []T, func()) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	ch := make(chan []T, 1)
	if f.failed != nil {
		close(ch)
		f.mu.Unlock()
		return ch, func() {}
	}
	if f.ready {
		ch <- f.latest
	}
	f.watchers[id] = ch
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		delete(f.watchers, id)
		f.mu.Unlock()
	}
	return ch, cancel
}

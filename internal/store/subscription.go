package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

// Subscription is a long-lived push stream of whole-list snapshots.
// Every add, update or delete on the collection re-materializes the
// full ordered list; consumers replace their working list wholesale.
// A failed change stream is terminal: the snapshot channel closes and
// Err reports the cause. Close must be called exactly once.
type Subscription[T Doc] struct {
	snapshots chan []T
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu  sync.Mutex
	err error
}

// Subscribe opens a change stream and starts pushing snapshots. The
// initial snapshot is delivered before any change event.
func (c *Collection[T]) Subscribe(ctx context.Context) (*Subscription[T], error) {
	ctx, cancel := context.WithCancel(ctx)

	stream, err := c.coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, err
	}

	sub := &Subscription[T]{
		snapshots: make(chan []T, 1),
		cancel:    cancel,
	}

	go sub.run(ctx, c, stream)
	return sub, nil
}

func (s *Subscription[T]) run(ctx context.Context, c *Collection[T], stream *mongo.ChangeStream) {
	defer close(s.snapshots)
	defer stream.Close(context.Background())

	if !s.push(ctx, c) {
		return
	}

	for stream.Next(ctx) {
		if !s.push(ctx, c) {
			return
		}
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		s.setErr(err)
	}
}

func (s *Subscription[T]) push(ctx context.Context, c *Collection[T]) bool {
	list, err := c.List(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.setErr(err)
		}
		return false
	}

	select {
	case s.snapshots <- list:
	case <-ctx.Done():
		return false
	default:
		// Consumer is behind; drop the stale snapshot and queue the
		// fresh one. Only the latest list matters.
		select {
		case <-s.snapshots:
		default:
		}
		select {
		case s.snapshots <- list:
		case <-ctx.Done():
			return false
		}
	}
	return true
}

// Snapshots yields ordered whole-list snapshots until the subscription
// ends. After the channel closes, Err reports a terminal failure if
// there was one.
func (s *Subscription[T]) Snapshots() <-chan []T { return s.snapshots }

func (s *Subscription[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription[T]) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Close releases the subscription. Safe to call once per consumer
// lifetime; further calls are no-ops.
func (s *Subscription[T]) Close() {
	s.closeOnce.Do(s.cancel)
}

package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Deleter is the destructive slice of the collection sync adapter.
type Deleter interface {
	Delete(ctx context.Context, id string) error
}

// DeleteConfirm implements the two-step delete: a request parks the
// record behind a confirmation token, and only an explicit confirm
// reaches the store. Cancelling the confirmation issues no delete
// call at all. Deleting is the one operation in the dashboard that
// requires this second step.
type DeleteConfirm struct {
	store Deleter

	mu      sync.Mutex
	pending map[string]string // token -> record id
}

func NewDeleteConfirm(store Deleter) *DeleteConfirm {
	return &DeleteConfirm{
		store:   store,
		pending: make(map[string]string),
	}
}

// Request parks a delete and returns the confirmation token.
func (d *DeleteConfirm) Request(recordID string) string {
	token := uuid.NewString()
	d.mu.Lock()
	d.pending[token] = recordID
	d.mu.Unlock()
	return token
}

// Confirm performs the parked delete. A failed remote delete dismisses
// the confirmation; the operator starts over from the list.
func (d *DeleteConfirm) Confirm(ctx context.Context, token string) error {
	d.mu.Lock()
	recordID, ok := d.pending[token]
	delete(d.pending, token)
	d.mu.Unlock()

	if !ok {
		return fmt.Errorf("no pending delete for this token")
	}
	return d.store.Delete(ctx, recordID)
}

// Cancel dismisses the confirmation without touching the store.
func (d *DeleteConfirm) Cancel(token string) {
	d.mu.Lock()
	delete(d.pending, token)
	d.mu.Unlock()
}

// Pending reports whether a confirmation token is still parked.
func (d *DeleteConfirm) Pending(token string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[token]
	return ok
}

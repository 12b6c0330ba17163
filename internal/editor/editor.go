package editor

import (
	"context"
	"sync"
)

// Record is what the state machine needs from an editable document:
// deep copy on open, trim/coerce on submit, validation before any
// write.
type Record[T any] interface {
	Clone() T
	Normalize()
	Validate() error
}

// Writer is the slice of the collection sync adapter the editor
// writes through. Injected so tests can double the persistence
// collaborator.
type Writer[T any] interface {
	Create(ctx context.Context, doc T) (string, error)
	Update(ctx context.Context, id string, doc T) error
}

// Mode is the editor's lifecycle state.
type Mode int

const (
	ModeClosed Mode = iota
	ModeCreating
	ModeEditing
)

// Editor holds the in-progress edit buffer for a single record. The
// buffer is owned by the editing session: seeded from an empty
// template (create) or a deep copy of the selected record (edit), and
// discarded on cancel or successful submit. It never aliases the
// synchronized list entry.
//
// The session lock serializes concurrent requests on one session id:
// the form posts a buffer update per keystroke, so overlapping
// mutations are a normal input, and last write wins.
type Editor[T Record[T]] struct {
	mu     sync.Mutex
	mode   Mode
	seedID string
	buffer T
	store  Writer[T]
}

// NewCreate opens an editor in create mode seeded with the empty
// template.
func NewCreate[T Record[T]](template T, store Writer[T]) *Editor[T] {
	return &Editor[T]{
		mode:   ModeCreating,
		buffer: template,
		store:  store,
	}
}

// NewEdit opens an editor seeded with an independent copy of the
// selected record.
func NewEdit[T Record[T]](seed T, id string, store Writer[T]) *Editor[T] {
	return &Editor[T]{
		mode:   ModeEditing,
		seedID: id,
		buffer: seed.Clone(),
		store:  store,
	}
}

func (e *Editor[T]) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Buffer exposes the working copy for the nested field editors.
func (e *Editor[T]) Buffer() T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buffer
}

// SeedID is the id of the record being edited, empty in create mode.
func (e *Editor[T]) SeedID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seedID
}

// Mutate runs fn against the buffer under the session lock. All
// buffer mutations go through here so concurrent requests on one
// session serialize instead of racing.
func (e *Editor[T]) Mutate(fn func(buf T)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.buffer)
}

// Submit validates, normalizes and writes the buffer. Validation runs
// on submit only; on failure the editor stays open with the buffer
// intact and the error message is for the operator. A failed remote
// write also keeps the editor open so the submit can be retried. Only
// a successful write closes the editor and clears the buffer.
func (e *Editor[T]) Submit(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mode == ModeClosed {
		return nil
	}
	if err := e.buffer.Validate(); err != nil {
		return err
	}
	e.buffer.Normalize()

	var err error
	if e.mode == ModeEditing {
		err = e.store.Update(ctx, e.seedID, e.buffer)
	} else {
		_, err = e.store.Create(ctx, e.buffer)
	}
	if err != nil {
		return err
	}

	e.close()
	return nil
}

// Cancel discards the buffer without writing.
func (e *Editor[T]) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.close()
}

// close runs under the session lock.
func (e *Editor[T]) close() {
	var zero T
	e.mode = ModeClosed
	e.seedID = ""
	e.buffer = zero
}

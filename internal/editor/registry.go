package editor

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks the open editors of one record type, keyed by an
// opaque session id handed to the client when the form opens. An
// editor leaves the registry when it is submitted successfully or
// cancelled.
type Registry[T Record[T]] struct {
	mu      sync.Mutex
	editors map[string]*Editor[T]
}

func NewRegistry[T Record[T]]() *Registry[T] {
	return &Registry[T]{editors: make(map[string]*Editor[T])}
}

// Open registers an editor and returns its session id.
func (r *Registry[T]) Open(e *Editor[T]) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.editors[id] = e
	r.mu.Unlock()
	return id
}

func (r *Registry[T]) Get(id string) (*Editor[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.editors[id]
	return e, ok
}

// Release drops the session. Called after a successful submit or an
// explicit cancel.
func (r *Registry[T]) Release(id string) {
	r.mu.Lock()
	delete(r.editors, id)
	r.mu.Unlock()
}

// Len reports how many editors are open.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.editors)
}

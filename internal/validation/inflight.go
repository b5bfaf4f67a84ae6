package validation

import (
	"sync"

	"github.com/google/uuid"
)

// inflight tracks scans with a validation or revert in progress. Unlike
// a result-sharing single-flight group, a second caller is refused
// outright rather than joined to the first, so every expert sees their
// own submission either run or get a busy answer immediately.
type inflight struct {
	mu  sync.Mutex
	ids map[uuid.UUID]struct{}
}

func newInflight() *inflight {
	return &inflight{ids: make(map[uuid.UUID]struct{})}
}

// acquire claims the scan for an operation. Returns false if another
// operation already holds it.
func (f *inflight) acquire(id uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, held := f.ids[id]; held {
		return false
	}
	f.ids[id] = struct{}{}
	return true
}

// release frees the scan for subsequent operations.
func (f *inflight) release(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.ids, id)
}

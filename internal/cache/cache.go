// Package cache implements the local reconciliation cache, an in-memory
// projection of the scan store kept current through push events and
// optimistic updates from the validation coordinator. Merge decisions
// are timestamp based so replayed or out-of-order events are harmless.
package cache

import (
	"log/slog"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/scans"
)

// Mutation marks an in-flight local operation on a cache entry. While a
// mutation is pending, the entry reflects the expected outcome rather
// than the last confirmed store state.
type Mutation string

const (
	MutationNone       Mutation = ""
	MutationValidating Mutation = "validating"
	MutationReverting  Mutation = "reverting"
)

// offDomain matches classifications produced when the photographed
// subject is not a bitter gourd plant at all. Such scans never enter
// the validation queue.
var offDomain = regexp.MustCompile(`(?i)(not[ _-]?bitter[ _-]?gourd|non[ _-]?bitter[ _-]?gourd|unknown)`)

// Entry is one cached scan along with its reconciliation bookkeeping.
type Entry struct {
	Scan               scans.Scan
	Pending            Mutation
	LastKnownUpdatedAt time.Time
}

// Cache holds the scan projection. All methods are safe for concurrent
// use.
type Cache struct {
	mu       sync.RWMutex
	entries  map[int64]*Entry
	byUUID   map[uuid.UUID]int64
	logger   *slog.Logger
	onChange func(scans.Scan)
}

// New creates an empty cache.
func New(logger *slog.Logger) *Cache {
	return &Cache{
		entries: make(map[int64]*Entry),
		byUUID:  make(map[uuid.UUID]int64),
		logger:  logger.With("system", "cache"),
	}
}

// SetOnChange registers a hook invoked with the merged scan whenever an
// entry actually changes. Must be called before the cache starts
// receiving events.
func (c *Cache) SetOnChange(fn func(scans.Scan)) {
	c.onChange = fn
}

// Replace swaps the entire projection for a fresh store snapshot,
// discarding all reconciliation bookkeeping.
func (c *Cache) Replace(snapshot []scans.Scan) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[int64]*Entry, len(snapshot))
	c.byUUID = make(map[uuid.UUID]int64, len(snapshot))

	for _, s := range snapshot {
		c.entries[s.ID] = &Entry{
			Scan:               s,
			LastKnownUpdatedAt: s.UpdatedAt,
		}
		c.byUUID[s.UUID] = s.ID
	}

	c.logger.Info("cache replaced", "entries", len(snapshot))
}

// Apply merges an external change event into the cache. Events carrying
// an UpdatedAt that is not strictly newer than the last known timestamp
// are ignored, which makes replayed and out-of-order deliveries
// idempotent. A merged event clears any pending mutation, since the
// store has by definition moved past whatever the local operation
// expected.
func (c *Cache) Apply(s scans.Scan) bool {
	c.mu.Lock()

	entry, ok := c.entries[s.ID]
	if ok && !s.UpdatedAt.After(entry.LastKnownUpdatedAt) {
		c.mu.Unlock()
		return false
	}

	if !ok {
		entry = &Entry{}
		c.entries[s.ID] = entry
		c.byUUID[s.UUID] = s.ID
	}

	entry.Scan = s
	entry.LastKnownUpdatedAt = s.UpdatedAt
	entry.Pending = MutationNone

	c.mu.Unlock()

	if c.onChange != nil {
		c.onChange(s)
	}
	return true
}

// MarkPending flags the scan as having an in-flight local operation.
// Returns false if the scan is not cached.
func (c *Cache) MarkPending(id uuid.UUID, m Mutation) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := c.lookup(id)
	if entry == nil {
		return false
	}

	entry.Pending = m
	return true
}

// ClearPending removes the in-flight flag without touching the scan
// state, used when a local operation fails before reaching the store.
func (c *Cache) ClearPending(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry := c.lookup(id); entry != nil {
		entry.Pending = MutationNone
	}
}

// Complete applies the optimistic outcome of a finished local operation:
// the new status, comment, and timestamp land immediately rather than
// waiting for the store's change event to round-trip.
func (c *Cache) Complete(id uuid.UUID, status scans.Status, comment *string, at time.Time) {
	c.mu.Lock()

	entry := c.lookup(id)
	if entry == nil {
		c.mu.Unlock()
		return
	}

	entry.Scan.Status = status
	entry.Scan.ExpertComment = comment
	entry.Scan.UpdatedAt = at
	entry.LastKnownUpdatedAt = at
	entry.Pending = MutationNone
	changed := entry.Scan

	c.mu.Unlock()

	if c.onChange != nil {
		c.onChange(changed)
	}
}

// ScanByID returns a copy of the cached scan, or false if absent.
func (c *Cache) ScanByID(id int64) (scans.Scan, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[id]
	if !ok {
		return scans.Scan{}, false
	}
	return entry.Scan, true
}

// ScanByUUID returns a copy of the cached scan, or false if absent.
func (c *Cache) ScanByUUID(id uuid.UUID) (scans.Scan, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry := c.lookup(id)
	if entry == nil {
		return scans.Scan{}, false
	}
	return entry.Scan, true
}

// Pending reports the in-flight mutation for a scan, if any.
func (c *Cache) Pending(id uuid.UUID) Mutation {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if entry := c.lookup(id); entry != nil {
		return entry.Pending
	}
	return MutationNone
}

// PendingQueue returns the scans awaiting expert validation, oldest
// first. Scans marked unknown and scans whose classification falls
// outside the bitter gourd domain are excluded.
func (c *Cache) PendingQueue() []scans.Scan {
	c.mu.RLock()
	defer c.mu.RUnlock()

	queue := make([]scans.Scan, 0)
	for _, entry := range c.entries {
		s := entry.Scan
		if s.Status != scans.StatusPending {
			continue
		}
		if offDomain.MatchString(s.Classification()) {
			continue
		}
		queue = append(queue, s)
	}

	sort.Slice(queue, func(i, j int) bool {
		return queue[i].CreatedAt.Before(queue[j].CreatedAt)
	})
	return queue
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// lookup resolves a UUID to its entry. Callers must hold the lock.
func (c *Cache) lookup(id uuid.UUID) *Entry {
	scanID, ok := c.byUUID[id]
	if !ok {
		return nil
	}
	return c.entries[scanID]
}

package scans

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/pagination"
)

// System defines the public contract for scan domain operations.
//
// ReadClassification and UpdateStatus are the authoritative store
// operations used by the validation coordinator: the read always hits
// the type-specific column directly rather than any cached copy, and
// the update flips the row status and expert comment in one statement.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Scan], error)

	Find(ctx context.Context, id int64) (*Scan, error)
	FindByUUID(ctx context.Context, id uuid.UUID) (*Scan, error)
	Create(ctx context.Context, cmd CreateCommand) (*Scan, error)

	// Snapshot returns every scan row, used to prime or wholesale-refresh
	// the reconciliation cache.
	Snapshot(ctx context.Context) ([]Scan, error)

	// ReadClassification returns the type-specific classification for the
	// scan identified by uuid. The empty string means the classifier
	// produced no value.
	ReadClassification(ctx context.Context, id uuid.UUID, t Type) (string, error)

	// UpdateStatus sets the row status, expert comment, and updated_at.
	// A nil comment clears the expert comment column.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, comment *string, at time.Time) error

	// AttachPhoto records the blob storage key for the scan's field photo.
	AttachPhoto(ctx context.Context, id int64, key string) error
}

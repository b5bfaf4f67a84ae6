package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/pagination"
)

// System defines the public contract for ledger operations.
type System interface {
	// Append writes a new validation record and returns it with its
	// assigned identifier.
	Append(ctx context.Context, cmd AppendCommand) (*Record, error)

	Find(ctx context.Context, id int64) (*Record, error)

	// Delete removes a validation record. This is the authoritative half
	// of a revert; callers are responsible for the compensating scan
	// update.
	Delete(ctx context.Context, id int64) error

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Record], error)

	// ListByScan returns every validation record for a scan, newest first.
	ListByScan(ctx context.Context, scanUUID uuid.UUID) ([]Record, error)

	// Unreconciled returns validation records whose scan row is still
	// pending validation, oldest first. These are the orphans left behind
	// when a scan status update failed after the ledger append succeeded.
	Unreconciled(ctx context.Context, limit int) ([]Record, error)
}

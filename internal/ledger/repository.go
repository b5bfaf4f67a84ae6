package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/pagination"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/query"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a ledger repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "ledger"),
		pagination: pagination,
	}
}

func (r *repo) Append(ctx context.Context, cmd AppendCommand) (*Record, error) {
	q := `
		INSERT INTO validations(scan_uuid, expert_id, expert_name, ai_prediction, expert_validation, comment, status, validated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, scan_uuid, expert_id, expert_name, ai_prediction, expert_validation, comment, status, validated_at`

	args := []any{
		cmd.ScanUUID,
		cmd.ExpertID,
		cmd.ExpertName,
		cmd.AIPrediction,
		cmd.ExpertValidation,
		cmd.Comment,
		cmd.Status,
		cmd.ValidatedAt,
	}

	rec, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		return repository.QueryOne(ctx, tx, q, args, scanRow)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("validation recorded",
		"id", rec.ID,
		"scan_uuid", rec.ScanUUID,
		"expert_id", rec.ExpertID,
		"status", rec.Status,
	)
	return &rec, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Record, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rec, err := repository.QueryOne(ctx, r.db, q, args, scanRow)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rec, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	err := repository.ExecExpectOne(ctx, r.db, "DELETE FROM validations WHERE id = $1", id)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("validation removed", "id", id)
	return nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Record], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "ExpertName", "AIPrediction", "ExpertValidation")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count validations: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRow)
	if err != nil {
		return nil, fmt.Errorf("query validations: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) ListByScan(ctx context.Context, scanUUID uuid.UUID) ([]Record, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("ScanUUID", scanUUID).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanRow)
	if err != nil {
		return nil, fmt.Errorf("query scan validations: %w", err)
	}
	return items, nil
}

// unreconciledQuery joins ledger rows against their scan. A record whose
// scan is still pending is an orphan from a failed status update; they
// surface oldest first so the longest-stuck scans settle first.
const unreconciledQuery = `
	SELECT v.id, v.scan_uuid, v.expert_id, v.expert_name, v.ai_prediction, v.expert_validation, v.comment, v.status, v.validated_at
	FROM public.validations v
	JOIN public.scans s ON s.uuid = v.scan_uuid
	WHERE s.status = 'pending_validation'
	ORDER BY v.validated_at ASC
	LIMIT $1`

func (r *repo) Unreconciled(ctx context.Context, limit int) ([]Record, error) {
	items, err := repository.QueryMany(ctx, r.db, unreconciledQuery, []any{limit}, scanRow)
	if err != nil {
		return nil, fmt.Errorf("query unreconciled validations: %w", err)
	}
	return items, nil
}

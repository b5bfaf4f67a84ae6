package scans

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/pagination"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/query"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/repository"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a scan repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "scans"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.storage, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Scan], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "FarmerRef", "DiseaseDetected", "RipenessStage")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count scans: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRow)
	if err != nil {
		return nil, fmt.Errorf("query scans: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Scan, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanRow)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &s, nil
}

func (r *repo) FindByUUID(ctx context.Context, id uuid.UUID) (*Scan, error) {
	q, args := query.NewBuilder(projection).BuildSingle("UUID", id)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanRow)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &s, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Scan, error) {
	if !cmd.Type.Valid() {
		return nil, ErrInvalidType
	}

	status := StatusPending
	if cmd.Unknown {
		status = StatusUnknown
	}

	classification := strings.TrimSpace(cmd.Classification)
	var disease, ripeness *string
	switch cmd.Type {
	case TypeLeafDisease:
		if classification != "" {
			disease = &classification
		}
	case TypeFruitMaturity:
		if classification != "" {
			ripeness = &classification
		}
	}

	q := `
		INSERT INTO scans(uuid, scan_type, disease_detected, ripeness_stage, recommendation, status, confidence, farmer_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, uuid, scan_type, disease_detected, ripeness_stage, recommendation,
				  expert_comment, status, confidence, farmer_ref, photo_key, created_at, updated_at`

	insertArgs := []any{
		uuid.New(),
		cmd.Type,
		disease,
		ripeness,
		cmd.Recommendation,
		status,
		cmd.Confidence,
		cmd.FarmerRef,
	}

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Scan, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanRow)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("scan registered",
		"id", s.ID,
		"uuid", s.UUID,
		"scan_type", s.Type,
		"status", s.Status,
	)
	return &s, nil
}

func (r *repo) Snapshot(ctx context.Context) ([]Scan, error) {
	q, args := query.NewBuilder(projection, defaultSort).Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanRow)
	if err != nil {
		return nil, fmt.Errorf("snapshot scans: %w", err)
	}
	return items, nil
}

func (r *repo) ReadClassification(ctx context.Context, id uuid.UUID, t Type) (string, error) {
	var column string
	switch t {
	case TypeLeafDisease:
		column = "disease_detected"
	case TypeFruitMaturity:
		column = "ripeness_stage"
	default:
		return "", ErrInvalidType
	}

	q := fmt.Sprintf("SELECT COALESCE(%s, '') FROM scans WHERE uuid = $1", column)

	var value string
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&value); err != nil {
		return "", repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return value, nil
}

func (r *repo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, comment *string, at time.Time) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE scans SET status = $1, expert_comment = $2, updated_at = $3 WHERE uuid = $4",
		status, comment, at, id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("scan status updated", "uuid", id, "status", status)
	return nil
}

func (r *repo) AttachPhoto(ctx context.Context, id int64, key string) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE scans SET photo_key = $1, updated_at = NOW() WHERE id = $2",
		key, id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("scan photo attached", "id", id, "key", key)
	return nil
}

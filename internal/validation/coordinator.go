// Package validation implements the validation transaction coordinator.
// It drives the multi-step sequence behind every expert decision: read
// the authoritative prediction, append the ledger record, flip the scan
// status, and settle the local cache. The ledger append always happens
// before the scan status change, so a crash between the two leaves an
// orphaned ledger row that the reconciliation sweep repairs, never a
// validated scan without a record.
package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/cache"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/experts"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/ledger"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/scans"
)

// Decision is the expert's verdict on the AI prediction.
type Decision string

const (
	// DecisionConfirm accepts the AI prediction as-is.
	DecisionConfirm Decision = "confirm"
	// DecisionCorrect replaces the AI prediction with the expert's value.
	DecisionCorrect Decision = "correct"
)

// Command carries an expert decision against a scan. Correction is
// required when Decision is correct and ignored otherwise.
type Command struct {
	Decision   Decision `json:"decision"`
	Correction string   `json:"correction"`
	Comment    *string  `json:"comment"`
}

// Receipt is the outcome of a completed validation. Reconciled is false
// when the ledger record was written but the scan status update failed;
// the decision stands and the sweep will settle the scan row.
type Receipt struct {
	RecordID    int64         `json:"record_id"`
	ScanUUID    uuid.UUID     `json:"scan_uuid"`
	Status      ledger.Status `json:"status"`
	ValidatedAt time.Time     `json:"validated_at"`
	Reconciled  bool          `json:"reconciled"`
}

// RevertResult is the outcome of a completed revert. The ledger delete
// is the authoritative half; CompensationErr carries a failed best-effort
// scan status restore, which the caller should surface as a warning.
type RevertResult struct {
	RecordID        int64     `json:"record_id"`
	ScanUUID        uuid.UUID `json:"scan_uuid"`
	CompensationErr string    `json:"compensation_error,omitempty"`
}

// Coordinator sequences validation and revert operations against the
// scan store and the ledger, keeping the reconciliation cache settled.
type Coordinator struct {
	scans        scans.System
	ledger       ledger.System
	cache        *cache.Cache
	inflight     *inflight
	logger       *slog.Logger
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewCoordinator creates a Coordinator over the given stores and cache.
func NewCoordinator(
	scanSys scans.System,
	ledgerSys ledger.System,
	c *cache.Cache,
	cfg *Config,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		scans:        scanSys,
		ledger:       ledgerSys,
		cache:        c,
		inflight:     newInflight(),
		logger:       logger.With("system", "validation"),
		readTimeout:  cfg.ReadTimeoutDuration(),
		writeTimeout: cfg.WriteTimeoutDuration(),
	}
}

// Validate runs the full decision sequence for one scan on behalf of the
// expert. Only one operation may be in flight per scan; concurrent
// submissions receive ErrBusy immediately rather than queueing.
func (c *Coordinator) Validate(
	ctx context.Context,
	scanUUID uuid.UUID,
	expert experts.Expert,
	cmd Command,
) (*Receipt, error) {
	if scanUUID == uuid.Nil {
		return nil, ErrInvalidIdentifier
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	if !c.inflight.acquire(scanUUID) {
		return nil, ErrBusy
	}
	defer c.inflight.release(scanUUID)

	c.cache.MarkPending(scanUUID, cache.MutationValidating)

	scan, prediction, err := c.readSource(ctx, scanUUID)
	if err != nil {
		c.cache.ClearPending(scanUUID)
		return nil, err
	}

	if scan.Status != scans.StatusPending {
		c.cache.ClearPending(scanUUID)
		return nil, ErrNotEligible
	}
	if strings.TrimSpace(prediction) == "" {
		c.cache.ClearPending(scanUUID)
		return nil, ErrMissingPrediction
	}

	status := ledger.StatusValidated
	decided := prediction
	if cmd.Decision == DecisionCorrect {
		status = ledger.StatusCorrected
		decided = strings.TrimSpace(cmd.Correction)
	}

	validatedAt := time.Now().UTC()

	// The request context no longer governs from here: once the ledger
	// append commits, the scan update and cache settle must run even if
	// the caller disconnects.
	detached := context.WithoutCancel(ctx)

	record, err := c.appendRecord(detached, ledger.AppendCommand{
		ScanUUID:         scanUUID,
		ExpertID:         expert.ID,
		ExpertName:       expert.DisplayName,
		AIPrediction:     prediction,
		ExpertValidation: decided,
		Comment:          cmd.Comment,
		Status:           status,
		ValidatedAt:      validatedAt,
	})
	if err != nil {
		c.cache.ClearPending(scanUUID)
		return nil, err
	}

	receipt := &Receipt{
		RecordID:    record.ID,
		ScanUUID:    scanUUID,
		Status:      status,
		ValidatedAt: validatedAt,
		Reconciled:  true,
	}

	if err := c.updateScan(detached, scanUUID, scans.StatusValidated, cmd.Comment, validatedAt); err != nil {
		// The ledger record is committed, so the decision stands. The
		// sweep settles the scan row later.
		c.logger.Warn("scan status update failed after ledger append",
			"scan_uuid", scanUUID,
			"record_id", record.ID,
			"error", err,
		)
		receipt.Reconciled = false
		c.cache.ClearPending(scanUUID)
		return receipt, nil
	}

	c.cache.Complete(scanUUID, scans.StatusValidated, cmd.Comment, validatedAt)

	c.logger.Info("validation completed",
		"scan_uuid", scanUUID,
		"record_id", record.ID,
		"expert_id", expert.ID,
		"status", status,
	)
	return receipt, nil
}

// Revert undoes a previous validation. Only the expert who made the
// decision may revert it. The ledger delete is authoritative; restoring
// the scan row to pending is best effort and a failure there is reported
// in the result rather than failing the revert.
func (c *Coordinator) Revert(
	ctx context.Context,
	recordID int64,
	expert experts.Expert,
) (*RevertResult, error) {
	findCtx, cancel := context.WithTimeout(ctx, c.readTimeout)
	record, err := c.ledger.Find(findCtx, recordID)
	cancel()
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, ErrUnknownRecord
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	if record.ExpertID != expert.ID {
		return nil, ErrNotOwner
	}

	if !c.inflight.acquire(record.ScanUUID) {
		return nil, ErrBusy
	}
	defer c.inflight.release(record.ScanUUID)

	c.cache.MarkPending(record.ScanUUID, cache.MutationReverting)

	detached := context.WithoutCancel(ctx)

	deleteCtx, cancel := context.WithTimeout(detached, c.writeTimeout)
	err = c.ledger.Delete(deleteCtx, recordID)
	cancel()
	if err != nil {
		c.cache.ClearPending(record.ScanUUID)
		return nil, fmt.Errorf("%w: %v", ErrLedgerDeleteFailed, err)
	}

	result := &RevertResult{
		RecordID: recordID,
		ScanUUID: record.ScanUUID,
	}

	// The compensating update only applies to scans still marked
	// validated. A scan already back to pending must keep its row
	// untouched, or the restore would clobber the comment and timestamp.
	statusCtx, cancel := context.WithTimeout(detached, c.readTimeout)
	current, statusErr := c.scans.FindByUUID(statusCtx, record.ScanUUID)
	cancel()
	if statusErr == nil && current.Status == scans.StatusPending {
		c.cache.ClearPending(record.ScanUUID)
		c.logger.Info("validation reverted",
			"scan_uuid", record.ScanUUID,
			"record_id", recordID,
			"expert_id", expert.ID,
		)
		return result, nil
	}

	revertedAt := time.Now().UTC()
	if err := c.updateScan(detached, record.ScanUUID, scans.StatusPending, nil, revertedAt); err != nil {
		c.logger.Warn("compensating scan update failed after revert",
			"scan_uuid", record.ScanUUID,
			"record_id", recordID,
			"error", err,
		)
		result.CompensationErr = err.Error()
		c.cache.ClearPending(record.ScanUUID)
		return result, nil
	}

	c.cache.Complete(record.ScanUUID, scans.StatusPending, nil, revertedAt)

	c.logger.Info("validation reverted",
		"scan_uuid", record.ScanUUID,
		"record_id", recordID,
		"expert_id", expert.ID,
	)
	return result, nil
}

func (c *Coordinator) readSource(ctx context.Context, id uuid.UUID) (*scans.Scan, string, error) {
	readCtx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()

	scan, err := c.scans.FindByUUID(readCtx, id)
	if err != nil {
		if errors.Is(err, scans.ErrNotFound) {
			return nil, "", ErrUnknownScan
		}
		return nil, "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	// The prediction is read straight from the typed column rather than
	// taken from the cached row, so the decision is always made against
	// current store state.
	prediction, err := c.scans.ReadClassification(readCtx, id, scan.Type)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	return scan, prediction, nil
}

func (c *Coordinator) appendRecord(ctx context.Context, cmd ledger.AppendCommand) (*ledger.Record, error) {
	writeCtx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	record, err := c.ledger.Append(writeCtx, cmd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerWriteFailed, err)
	}
	return record, nil
}

func (c *Coordinator) updateScan(
	ctx context.Context,
	id uuid.UUID,
	status scans.Status,
	comment *string,
	at time.Time,
) error {
	writeCtx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	if err := c.scans.UpdateStatus(writeCtx, id, status, comment, at); err != nil {
		return fmt.Errorf("%w: %v", ErrScanUpdateFailed, err)
	}
	return nil
}

func validateCommand(cmd Command) error {
	switch cmd.Decision {
	case DecisionConfirm:
		return nil
	case DecisionCorrect:
		if strings.TrimSpace(cmd.Correction) == "" {
			return ErrMissingDecision
		}
		return nil
	default:
		return ErrMissingDecision
	}
}

package validation_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/cache"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/experts"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/ledger"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/scans"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/validation"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/pagination"
)

type mockScans struct {
	findByUUIDFn         func(ctx context.Context, id uuid.UUID) (*scans.Scan, error)
	readClassificationFn func(ctx context.Context, id uuid.UUID, t scans.Type) (string, error)
	updateStatusFn       func(ctx context.Context, id uuid.UUID, status scans.Status, comment *string, at time.Time) error
}

func (m *mockScans) Handler(maxUploadSize int64) *scans.Handler { return nil }

func (m *mockScans) List(ctx context.Context, page pagination.PageRequest, filters scans.Filters) (*pagination.PageResult[scans.Scan], error) {
	return nil, nil
}

func (m *mockScans) Find(ctx context.Context, id int64) (*scans.Scan, error) { return nil, nil }

func (m *mockScans) FindByUUID(ctx context.Context, id uuid.UUID) (*scans.Scan, error) {
	return m.findByUUIDFn(ctx, id)
}

func (m *mockScans) Create(ctx context.Context, cmd scans.CreateCommand) (*scans.Scan, error) {
	return nil, nil
}

func (m *mockScans) Snapshot(ctx context.Context) ([]scans.Scan, error) { return nil, nil }

func (m *mockScans) ReadClassification(ctx context.Context, id uuid.UUID, t scans.Type) (string, error) {
	return m.readClassificationFn(ctx, id, t)
}

func (m *mockScans) UpdateStatus(ctx context.Context, id uuid.UUID, status scans.Status, comment *string, at time.Time) error {
	return m.updateStatusFn(ctx, id, status, comment, at)
}

func (m *mockScans) AttachPhoto(ctx context.Context, id int64, key string) error { return nil }

type mockLedger struct {
	appendFn       func(ctx context.Context, cmd ledger.AppendCommand) (*ledger.Record, error)
	findFn         func(ctx context.Context, id int64) (*ledger.Record, error)
	deleteFn       func(ctx context.Context, id int64) error
	unreconciledFn func(ctx context.Context, limit int) ([]ledger.Record, error)
}

func (m *mockLedger) Append(ctx context.Context, cmd ledger.AppendCommand) (*ledger.Record, error) {
	return m.appendFn(ctx, cmd)
}

func (m *mockLedger) Find(ctx context.Context, id int64) (*ledger.Record, error) {
	return m.findFn(ctx, id)
}

func (m *mockLedger) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockLedger) List(ctx context.Context, page pagination.PageRequest, filters ledger.Filters) (*pagination.PageResult[ledger.Record], error) {
	return nil, nil
}

func (m *mockLedger) ListByScan(ctx context.Context, scanUUID uuid.UUID) ([]ledger.Record, error) {
	return nil, nil
}

func (m *mockLedger) Unreconciled(ctx context.Context, limit int) ([]ledger.Record, error) {
	return m.unreconciledFn(ctx, limit)
}

var testExpert = experts.Expert{ID: "expert-1", DisplayName: "Dr. Reyes"}

func testConfig() *validation.Config {
	return &validation.Config{
		ReadTimeout:   "5s",
		WriteTimeout:  "5s",
		SweepInterval: "1m",
		SweepLimit:    10,
		SweepWorkers:  2,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr(s string) *string { return &s }

func pendingScan(id uuid.UUID) *scans.Scan {
	return &scans.Scan{
		ID:              1,
		UUID:            id,
		Type:            scans.TypeLeafDisease,
		DiseaseDetected: ptr("downy_mildew"),
		Status:          scans.StatusPending,
		CreatedAt:       time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func primedCache(s *scans.Scan) *cache.Cache {
	c := cache.New(testLogger())
	c.Replace([]scans.Scan{*s})
	return c
}

func TestValidateConfirm(t *testing.T) {
	scanUUID := uuid.New()
	scan := pendingScan(scanUUID)

	var calls []string
	var appended ledger.AppendCommand
	var updatedStatus scans.Status
	var updatedAt time.Time

	scanSys := &mockScans{
		findByUUIDFn: func(_ context.Context, id uuid.UUID) (*scans.Scan, error) {
			return scan, nil
		},
		readClassificationFn: func(_ context.Context, _ uuid.UUID, _ scans.Type) (string, error) {
			return "downy_mildew", nil
		},
		updateStatusFn: func(_ context.Context, _ uuid.UUID, status scans.Status, _ *string, at time.Time) error {
			calls = append(calls, "update")
			updatedStatus = status
			updatedAt = at
			return nil
		},
	}

	ledgerSys := &mockLedger{
		appendFn: func(_ context.Context, cmd ledger.AppendCommand) (*ledger.Record, error) {
			calls = append(calls, "append")
			appended = cmd
			return &ledger.Record{ID: 42, ScanUUID: cmd.ScanUUID, ExpertID: cmd.ExpertID, Status: cmd.Status, ValidatedAt: cmd.ValidatedAt}, nil
		},
	}

	c := primedCache(scan)
	coordinator := validation.NewCoordinator(scanSys, ledgerSys, c, testConfig(), testLogger())

	receipt, err := coordinator.Validate(context.Background(), scanUUID, testExpert, validation.Command{
		Decision: validation.DecisionConfirm,
		Comment:  ptr("looks right"),
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if receipt.RecordID != 42 {
		t.Errorf("record id = %d, want 42", receipt.RecordID)
	}
	if receipt.Status != ledger.StatusValidated {
		t.Errorf("status = %s, want %s", receipt.Status, ledger.StatusValidated)
	}
	if !receipt.Reconciled {
		t.Error("receipt not reconciled")
	}

	if len(calls) != 2 || calls[0] != "append" || calls[1] != "update" {
		t.Fatalf("call order = %v, want [append update]", calls)
	}

	if appended.AIPrediction != "downy_mildew" {
		t.Errorf("ai prediction = %q, want downy_mildew", appended.AIPrediction)
	}
	if appended.ExpertValidation != "downy_mildew" {
		t.Errorf("expert validation = %q, want downy_mildew", appended.ExpertValidation)
	}
	if appended.ExpertID != testExpert.ID {
		t.Errorf("expert id = %q, want %q", appended.ExpertID, testExpert.ID)
	}

	if updatedStatus != scans.StatusValidated {
		t.Errorf("scan status = %s, want %s", updatedStatus, scans.StatusValidated)
	}
	if !updatedAt.Equal(appended.ValidatedAt) {
		t.Error("scan update timestamp differs from ledger timestamp")
	}

	cached, _ := c.ScanByUUID(scanUUID)
	if cached.Status != scans.StatusValidated {
		t.Errorf("cached status = %s, want %s", cached.Status, scans.StatusValidated)
	}
	if c.Pending(scanUUID) != cache.MutationNone {
		t.Error("pending mutation not cleared")
	}
}

func TestValidateCorrect(t *testing.T) {
	scanUUID := uuid.New()
	scan := pendingScan(scanUUID)

	var appended ledger.AppendCommand
	scanSys := &mockScans{
		findByUUIDFn: func(_ context.Context, _ uuid.UUID) (*scans.Scan, error) { return scan, nil },
		readClassificationFn: func(_ context.Context, _ uuid.UUID, _ scans.Type) (string, error) {
			return "downy_mildew", nil
		},
		updateStatusFn: func(_ context.Context, _ uuid.UUID, _ scans.Status, _ *string, _ time.Time) error {
			return nil
		},
	}
	ledgerSys := &mockLedger{
		appendFn: func(_ context.Context, cmd ledger.AppendCommand) (*ledger.Record, error) {
			appended = cmd
			return &ledger.Record{ID: 7, ScanUUID: cmd.ScanUUID}, nil
		},
	}

	coordinator := validation.NewCoordinator(scanSys, ledgerSys, primedCache(scan), testConfig(), testLogger())

	receipt, err := coordinator.Validate(context.Background(), scanUUID, testExpert, validation.Command{
		Decision:   validation.DecisionCorrect,
		Correction: "powdery_mildew",
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if receipt.Status != ledger.StatusCorrected {
		t.Errorf("status = %s, want %s", receipt.Status, ledger.StatusCorrected)
	}
	if appended.Status != ledger.StatusCorrected {
		t.Errorf("record status = %s, want %s", appended.Status, ledger.StatusCorrected)
	}
	if appended.AIPrediction != "downy_mildew" {
		t.Errorf("ai prediction = %q, want downy_mildew", appended.AIPrediction)
	}
	if appended.ExpertValidation != "powdery_mildew" {
		t.Errorf("expert validation = %q, want powdery_mildew", appended.ExpertValidation)
	}
}

func TestValidateRejections(t *testing.T) {
	scanUUID := uuid.New()

	newCoordinator := func(scan *scans.Scan, prediction string) *validation.Coordinator {
		scanSys := &mockScans{
			findByUUIDFn: func(_ context.Context, _ uuid.UUID) (*scans.Scan, error) { return scan, nil },
			readClassificationFn: func(_ context.Context, _ uuid.UUID, _ scans.Type) (string, error) {
				return prediction, nil
			},
			updateStatusFn: func(_ context.Context, _ uuid.UUID, _ scans.Status, _ *string, _ time.Time) error {
				t.Fatal("scan update must not run for rejected validations")
				return nil
			},
		}
		ledgerSys := &mockLedger{
			appendFn: func(_ context.Context, _ ledger.AppendCommand) (*ledger.Record, error) {
				t.Fatal("ledger append must not run for rejected validations")
				return nil, nil
			},
		}
		return validation.NewCoordinator(scanSys, ledgerSys, primedCache(scan), testConfig(), testLogger())
	}

	confirm := validation.Command{Decision: validation.DecisionConfirm}

	t.Run("nil identifier", func(t *testing.T) {
		coordinator := newCoordinator(pendingScan(scanUUID), "downy_mildew")
		_, err := coordinator.Validate(context.Background(), uuid.Nil, testExpert, confirm)
		if !errors.Is(err, validation.ErrInvalidIdentifier) {
			t.Errorf("err = %v, want ErrInvalidIdentifier", err)
		}
	})

	t.Run("empty decision", func(t *testing.T) {
		coordinator := newCoordinator(pendingScan(scanUUID), "downy_mildew")
		_, err := coordinator.Validate(context.Background(), scanUUID, testExpert, validation.Command{})
		if !errors.Is(err, validation.ErrMissingDecision) {
			t.Errorf("err = %v, want ErrMissingDecision", err)
		}
	})

	t.Run("correction without value", func(t *testing.T) {
		coordinator := newCoordinator(pendingScan(scanUUID), "downy_mildew")
		_, err := coordinator.Validate(context.Background(), scanUUID, testExpert, validation.Command{
			Decision:   validation.DecisionCorrect,
			Correction: "   ",
		})
		if !errors.Is(err, validation.ErrMissingDecision) {
			t.Errorf("err = %v, want ErrMissingDecision", err)
		}
	})

	t.Run("already validated", func(t *testing.T) {
		scan := pendingScan(scanUUID)
		scan.Status = scans.StatusValidated
		coordinator := newCoordinator(scan, "downy_mildew")
		_, err := coordinator.Validate(context.Background(), scanUUID, testExpert, confirm)
		if !errors.Is(err, validation.ErrNotEligible) {
			t.Errorf("err = %v, want ErrNotEligible", err)
		}
	})

	t.Run("missing prediction", func(t *testing.T) {
		coordinator := newCoordinator(pendingScan(scanUUID), "")
		_, err := coordinator.Validate(context.Background(), scanUUID, testExpert, confirm)
		if !errors.Is(err, validation.ErrMissingPrediction) {
			t.Errorf("err = %v, want ErrMissingPrediction", err)
		}
	})
}

func TestValidateSourceFailures(t *testing.T) {
	scanUUID := uuid.New()

	t.Run("unknown scan", func(t *testing.T) {
		scanSys := &mockScans{
			findByUUIDFn: func(_ context.Context, _ uuid.UUID) (*scans.Scan, error) {
				return nil, scans.ErrNotFound
			},
		}
		coordinator := validation.NewCoordinator(scanSys, &mockLedger{}, cache.New(testLogger()), testConfig(), testLogger())

		_, err := coordinator.Validate(context.Background(), scanUUID, testExpert, validation.Command{Decision: validation.DecisionConfirm})
		if !errors.Is(err, validation.ErrUnknownScan) {
			t.Errorf("err = %v, want ErrUnknownScan", err)
		}
	})

	t.Run("store unavailable is retryable", func(t *testing.T) {
		scanSys := &mockScans{
			findByUUIDFn: func(_ context.Context, _ uuid.UUID) (*scans.Scan, error) {
				return nil, errors.New("connection refused")
			},
		}
		coordinator := validation.NewCoordinator(scanSys, &mockLedger{}, cache.New(testLogger()), testConfig(), testLogger())

		_, err := coordinator.Validate(context.Background(), scanUUID, testExpert, validation.Command{Decision: validation.DecisionConfirm})
		if !errors.Is(err, validation.ErrSourceUnavailable) {
			t.Fatalf("err = %v, want ErrSourceUnavailable", err)
		}
		if !validation.Retryable(err) {
			t.Error("source unavailability should be retryable")
		}
	})
}

func TestValidateLedgerFailure(t *testing.T) {
	scanUUID := uuid.New()
	scan := pendingScan(scanUUID)

	scanSys := &mockScans{
		findByUUIDFn: func(_ context.Context, _ uuid.UUID) (*scans.Scan, error) { return scan, nil },
		readClassificationFn: func(_ context.Context, _ uuid.UUID, _ scans.Type) (string, error) {
			return "downy_mildew", nil
		},
		updateStatusFn: func(_ context.Context, _ uuid.UUID, _ scans.Status, _ *string, _ time.Time) error {
			t.Fatal("scan update must not run when the ledger append fails")
			return nil
		},
	}
	ledgerSys := &mockLedger{
		appendFn: func(_ context.Context, _ ledger.AppendCommand) (*ledger.Record, error) {
			return nil, errors.New("insert failed")
		},
	}

	c := primedCache(scan)
	coordinator := validation.NewCoordinator(scanSys, ledgerSys, c, testConfig(), testLogger())

	_, err := coordinator.Validate(context.Background(), scanUUID, testExpert, validation.Command{Decision: validation.DecisionConfirm})
	if !errors.Is(err, validation.ErrLedgerWriteFailed) {
		t.Fatalf("err = %v, want ErrLedgerWriteFailed", err)
	}
	if !validation.Retryable(err) {
		t.Error("ledger write failure should be retryable")
	}
	if c.Pending(scanUUID) != cache.MutationNone {
		t.Error("pending mutation not cleared after failure")
	}

	cached, _ := c.ScanByUUID(scanUUID)
	if cached.Status != scans.StatusPending {
		t.Errorf("cached status = %s, want pending", cached.Status)
	}
}

func TestValidateScanUpdateFailure(t *testing.T) {
	scanUUID := uuid.New()
	scan := pendingScan(scanUUID)

	scanSys := &mockScans{
		findByUUIDFn: func(_ context.Context, _ uuid.UUID) (*scans.Scan, error) { return scan, nil },
		readClassificationFn: func(_ context.Context, _ uuid.UUID, _ scans.Type) (string, error) {
			return "downy_mildew", nil
		},
		updateStatusFn: func(_ context.Context, _ uuid.UUID, _ scans.Status, _ *string, _ time.Time) error {
			return errors.New("update failed")
		},
	}
	ledgerSys := &mockLedger{
		appendFn: func(_ context.Context, cmd ledger.AppendCommand) (*ledger.Record, error) {
			return &ledger.Record{ID: 42, ScanUUID: cmd.ScanUUID}, nil
		},
	}

	c := primedCache(scan)
	coordinator := validation.NewCoordinator(scanSys, ledgerSys, c, testConfig(), testLogger())

	receipt, err := coordinator.Validate(context.Background(), scanUUID, testExpert, validation.Command{Decision: validation.DecisionConfirm})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if receipt.Reconciled {
		t.Error("receipt marked reconciled despite failed scan update")
	}
	if receipt.RecordID != 42 {
		t.Errorf("record id = %d, want 42", receipt.RecordID)
	}
	if c.Pending(scanUUID) != cache.MutationNone {
		t.Error("pending mutation not cleared")
	}

	cached, _ := c.ScanByUUID(scanUUID)
	if cached.Status != scans.StatusPending {
		t.Errorf("cached status = %s, want pending until the sweep settles it", cached.Status)
	}
}

func TestValidateBusy(t *testing.T) {
	scanUUID := uuid.New()
	scan := pendingScan(scanUUID)

	block := make(chan struct{})
	entered := make(chan struct{})
	var enteredOnce sync.Once

	scanSys := &mockScans{
		findByUUIDFn: func(_ context.Context, _ uuid.UUID) (*scans.Scan, error) { return scan, nil },
		readClassificationFn: func(_ context.Context, _ uuid.UUID, _ scans.Type) (string, error) {
			// The post-completion retry reads the classification again, so
			// the signal must only fire for the first caller.
			enteredOnce.Do(func() { close(entered) })
			<-block
			return "downy_mildew", nil
		},
		updateStatusFn: func(_ context.Context, _ uuid.UUID, _ scans.Status, _ *string, _ time.Time) error {
			return nil
		},
	}
	ledgerSys := &mockLedger{
		appendFn: func(_ context.Context, cmd ledger.AppendCommand) (*ledger.Record, error) {
			return &ledger.Record{ID: 1, ScanUUID: cmd.ScanUUID}, nil
		},
	}

	coordinator := validation.NewCoordinator(scanSys, ledgerSys, primedCache(scan), testConfig(), testLogger())
	confirm := validation.Command{Decision: validation.DecisionConfirm}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := coordinator.Validate(context.Background(), scanUUID, testExpert, confirm); err != nil {
			t.Errorf("first validate: %v", err)
		}
	}()

	<-entered
	_, err := coordinator.Validate(context.Background(), scanUUID, testExpert, confirm)
	if !errors.Is(err, validation.ErrBusy) {
		t.Errorf("concurrent err = %v, want ErrBusy", err)
	}

	close(block)
	wg.Wait()

	// The scan settles after the first validation, so a retry now fails
	// eligibility rather than contention.
	scan.Status = scans.StatusValidated
	_, err = coordinator.Validate(context.Background(), scanUUID, testExpert, confirm)
	if !errors.Is(err, validation.ErrNotEligible) {
		t.Errorf("post-completion err = %v, want ErrNotEligible", err)
	}
}

func TestRevert(t *testing.T) {
	scanUUID := uuid.New()
	record := &ledger.Record{
		ID:       42,
		ScanUUID: scanUUID,
		ExpertID: testExpert.ID,
		Status:   ledger.StatusValidated,
	}

	t.Run("success restores scan to pending", func(t *testing.T) {
		var deleted bool
		var restored scans.Status

		scan := pendingScan(scanUUID)
		scan.Status = scans.StatusValidated

		scanSys := &mockScans{
			findByUUIDFn: func(_ context.Context, _ uuid.UUID) (*scans.Scan, error) { return scan, nil },
			updateStatusFn: func(_ context.Context, _ uuid.UUID, status scans.Status, _ *string, _ time.Time) error {
				restored = status
				return nil
			},
		}
		ledgerSys := &mockLedger{
			findFn: func(_ context.Context, _ int64) (*ledger.Record, error) { return record, nil },
			deleteFn: func(_ context.Context, id int64) error {
				deleted = true
				return nil
			},
		}

		c := primedCache(scan)

		coordinator := validation.NewCoordinator(scanSys, ledgerSys, c, testConfig(), testLogger())
		result, err := coordinator.Revert(context.Background(), 42, testExpert)
		if err != nil {
			t.Fatalf("revert: %v", err)
		}

		if !deleted {
			t.Error("ledger record not deleted")
		}
		if restored != scans.StatusPending {
			t.Errorf("restored status = %s, want pending", restored)
		}
		if result.CompensationErr != "" {
			t.Errorf("compensation error = %q, want empty", result.CompensationErr)
		}

		cached, _ := c.ScanByUUID(scanUUID)
		if cached.Status != scans.StatusPending {
			t.Errorf("cached status = %s, want pending", cached.Status)
		}
	})

	t.Run("different expert is refused", func(t *testing.T) {
		ledgerSys := &mockLedger{
			findFn: func(_ context.Context, _ int64) (*ledger.Record, error) { return record, nil },
			deleteFn: func(_ context.Context, _ int64) error {
				t.Fatal("delete must not run for non-owners")
				return nil
			},
		}
		coordinator := validation.NewCoordinator(&mockScans{}, ledgerSys, cache.New(testLogger()), testConfig(), testLogger())

		_, err := coordinator.Revert(context.Background(), 42, experts.Expert{ID: "expert-2", DisplayName: "Dr. Cruz"})
		if !errors.Is(err, validation.ErrNotOwner) {
			t.Errorf("err = %v, want ErrNotOwner", err)
		}
	})

	t.Run("unknown record", func(t *testing.T) {
		ledgerSys := &mockLedger{
			findFn: func(_ context.Context, _ int64) (*ledger.Record, error) { return nil, ledger.ErrNotFound },
		}
		coordinator := validation.NewCoordinator(&mockScans{}, ledgerSys, cache.New(testLogger()), testConfig(), testLogger())

		_, err := coordinator.Revert(context.Background(), 99, testExpert)
		if !errors.Is(err, validation.ErrUnknownRecord) {
			t.Errorf("err = %v, want ErrUnknownRecord", err)
		}
	})

	t.Run("already pending scan is left untouched", func(t *testing.T) {
		scan := pendingScan(scanUUID)

		scanSys := &mockScans{
			findByUUIDFn: func(_ context.Context, _ uuid.UUID) (*scans.Scan, error) { return scan, nil },
			updateStatusFn: func(_ context.Context, _ uuid.UUID, _ scans.Status, _ *string, _ time.Time) error {
				t.Error("compensating update must not run for a pending scan")
				return nil
			},
		}
		ledgerSys := &mockLedger{
			findFn:   func(_ context.Context, _ int64) (*ledger.Record, error) { return record, nil },
			deleteFn: func(_ context.Context, _ int64) error { return nil },
		}

		c := primedCache(scan)
		coordinator := validation.NewCoordinator(scanSys, ledgerSys, c, testConfig(), testLogger())

		result, err := coordinator.Revert(context.Background(), 42, testExpert)
		if err != nil {
			t.Fatalf("revert: %v", err)
		}
		if result.CompensationErr != "" {
			t.Errorf("compensation error = %q, want empty", result.CompensationErr)
		}
		if c.Pending(scanUUID) != cache.MutationNone {
			t.Error("pending mutation not cleared")
		}
	})

	t.Run("compensation failure is non-fatal", func(t *testing.T) {
		validated := pendingScan(scanUUID)
		validated.Status = scans.StatusValidated

		scanSys := &mockScans{
			findByUUIDFn: func(_ context.Context, _ uuid.UUID) (*scans.Scan, error) { return validated, nil },
			updateStatusFn: func(_ context.Context, _ uuid.UUID, _ scans.Status, _ *string, _ time.Time) error {
				return errors.New("update failed")
			},
		}
		ledgerSys := &mockLedger{
			findFn:   func(_ context.Context, _ int64) (*ledger.Record, error) { return record, nil },
			deleteFn: func(_ context.Context, _ int64) error { return nil },
		}
		coordinator := validation.NewCoordinator(scanSys, ledgerSys, cache.New(testLogger()), testConfig(), testLogger())

		result, err := coordinator.Revert(context.Background(), 42, testExpert)
		if err != nil {
			t.Fatalf("revert: %v", err)
		}
		if result.CompensationErr == "" {
			t.Error("compensation error not surfaced")
		}
	})
}

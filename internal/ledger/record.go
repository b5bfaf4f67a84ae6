// Package ledger implements the validation ledger, the authoritative
// record of every expert decision made against a scan. Ledger rows are
// append-only under normal operation; delete exists only to serve
// reverts.
package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Status records how the expert's decision relates to the AI prediction.
type Status string

const (
	// StatusValidated means the expert confirmed the AI prediction as-is.
	StatusValidated Status = "validated"
	// StatusCorrected means the expert supplied a different classification.
	StatusCorrected Status = "corrected"
)

// Record is one expert decision. AIPrediction is captured at decision
// time so the record stays meaningful even if the scan row changes later.
type Record struct {
	ID               int64     `json:"id"`
	ScanUUID         uuid.UUID `json:"scan_uuid"`
	ExpertID         string    `json:"expert_id"`
	ExpertName       string    `json:"expert_name"`
	AIPrediction     string    `json:"ai_prediction"`
	ExpertValidation string    `json:"expert_validation"`
	Comment          *string   `json:"comment"`
	Status           Status    `json:"status"`
	ValidatedAt      time.Time `json:"validated_at"`
}

// AppendCommand carries the data for a new ledger record. ValidatedAt is
// assigned by the coordinator so the ledger row and the scan row carry
// the same timestamp.
type AppendCommand struct {
	ScanUUID         uuid.UUID
	ExpertID         string
	ExpertName       string
	AIPrediction     string
	ExpertValidation string
	Comment          *string
	Status           Status
	ValidatedAt      time.Time
}

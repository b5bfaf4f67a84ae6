// Package scans implements the scan domain for the BitterScan dashboard.
// It provides types, data access, and business logic for AI inspection
// records of bitter gourd leaves and fruit awaiting expert validation.
package scans

import (
	"time"

	"github.com/google/uuid"
)

// Type discriminates the two kinds of inspection record.
type Type string

const (
	TypeLeafDisease   Type = "leaf_disease"
	TypeFruitMaturity Type = "fruit_maturity"
)

// Valid reports whether t is a known scan type.
func (t Type) Valid() bool {
	return t == TypeLeafDisease || t == TypeFruitMaturity
}

// Status is the authoritative validation state of a scan.
type Status string

const (
	StatusPending   Status = "pending_validation"
	StatusValidated Status = "validated"
	StatusCorrected Status = "corrected"
	StatusUnknown   Status = "unknown"
)

// Scan represents one AI inspection record. The classification lives in
// DiseaseDetected for leaf scans and RipenessStage for fruit scans; the
// other field is null.
type Scan struct {
	ID              int64      `json:"id"`
	UUID            uuid.UUID  `json:"uuid"`
	Type            Type       `json:"scan_type"`
	DiseaseDetected *string    `json:"disease_detected"`
	RipenessStage   *string    `json:"ripeness_stage"`
	Recommendation  string     `json:"recommendation"`
	ExpertComment   *string    `json:"expert_comment"`
	Status          Status     `json:"status"`
	Confidence      *float64   `json:"confidence"`
	FarmerRef       string     `json:"farmer_ref"`
	PhotoKey        string     `json:"photo_key"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Classification returns the type-specific classification value, or the
// empty string when the field is null.
func (s *Scan) Classification() string {
	switch s.Type {
	case TypeLeafDisease:
		if s.DiseaseDetected != nil {
			return *s.DiseaseDetected
		}
	case TypeFruitMaturity:
		if s.RipenessStage != nil {
			return *s.RipenessStage
		}
	}
	return ""
}

// CreateCommand carries the data needed to register a new scan row.
// The inference pipeline is the expected caller; rows always start in
// pending_validation unless the classifier marked the subject unknown.
type CreateCommand struct {
	Type           Type     `json:"scan_type"`
	Classification string   `json:"classification"`
	Recommendation string   `json:"recommendation"`
	Confidence     *float64 `json:"confidence"`
	FarmerRef      string   `json:"farmer_ref"`
	Unknown        bool     `json:"unknown"`
}

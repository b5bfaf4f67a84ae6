package scans

import (
	"net/url"

	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/query"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "scans", "s").
	Project("id", "ID").
	Project("uuid", "UUID").
	Project("scan_type", "Type").
	Project("disease_detected", "DiseaseDetected").
	Project("ripeness_stage", "RipenessStage").
	Project("recommendation", "Recommendation").
	Project("expert_comment", "ExpertComment").
	Project("status", "Status").
	Project("confidence", "Confidence").
	Project("farmer_ref", "FarmerRef").
	Project("photo_key", "PhotoKey").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for scan queries.
// Nil fields are ignored. Status, Type, and FarmerRef use exact matching;
// classification fields use case-insensitive contains matching.
type Filters struct {
	Status          *string `json:"status,omitempty"`
	Type            *string `json:"scan_type,omitempty"`
	FarmerRef       *string `json:"farmer_ref,omitempty"`
	DiseaseDetected *string `json:"disease_detected,omitempty"`
	RipenessStage   *string `json:"ripeness_stage,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereEquals("Type", f.Type).
		WhereEquals("FarmerRef", f.FarmerRef).
		WhereContains("DiseaseDetected", f.DiseaseDetected).
		WhereContains("RipenessStage", f.RipenessStage)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if t := values.Get("scan_type"); t != "" {
		f.Type = &t
	}

	if fr := values.Get("farmer_ref"); fr != "" {
		f.FarmerRef = &fr
	}

	if d := values.Get("disease_detected"); d != "" {
		f.DiseaseDetected = &d
	}

	if r := values.Get("ripeness_stage"); r != "" {
		f.RipenessStage = &r
	}

	return f
}

func scanRow(s repository.Scanner) (Scan, error) {
	var sc Scan
	err := s.Scan(
		&sc.ID,
		&sc.UUID,
		&sc.Type,
		&sc.DiseaseDetected,
		&sc.RipenessStage,
		&sc.Recommendation,
		&sc.ExpertComment,
		&sc.Status,
		&sc.Confidence,
		&sc.FarmerRef,
		&sc.PhotoKey,
		&sc.CreatedAt,
		&sc.UpdatedAt,
	)
	return sc, err
}

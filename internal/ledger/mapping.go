package ledger

import (
	"net/url"

	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/query"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "validations", "v").
	Project("id", "ID").
	Project("scan_uuid", "ScanUUID").
	Project("expert_id", "ExpertID").
	Project("expert_name", "ExpertName").
	Project("ai_prediction", "AIPrediction").
	Project("expert_validation", "ExpertValidation").
	Project("comment", "Comment").
	Project("status", "Status").
	Project("validated_at", "ValidatedAt")

var defaultSort = query.SortField{
	Field:      "ValidatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for ledger queries.
// Nil fields are ignored.
type Filters struct {
	ExpertID *string `json:"expert_id,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("ExpertID", f.ExpertID).
		WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if e := values.Get("expert_id"); e != "" {
		f.ExpertID = &e
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	return f
}

func scanRow(s repository.Scanner) (Record, error) {
	var r Record
	err := s.Scan(
		&r.ID,
		&r.ScanUUID,
		&r.ExpertID,
		&r.ExpertName,
		&r.AIPrediction,
		&r.ExpertValidation,
		&r.Comment,
		&r.Status,
		&r.ValidatedAt,
	)
	return r, err
}

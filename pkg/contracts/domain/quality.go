package domain

// ErrorCounts breaks down row-level data problems by category.
type ErrorCounts struct {
	ManagementInvalid int `json:"management_invalid"`
	CycleInvalid      int `json:"cycle_invalid"`
	SKUInvalid        int `json:"sku_invalid"`
	NegativeValue     int `json:"negative_value"`
	MissingFields     int `json:"missing_fields"`
}

// Total returns the sum of all error categories.
func (c ErrorCounts) Total() int {
	return c.ManagementInvalid + c.CycleInvalid + c.SKUInvalid + c.NegativeValue + c.MissingFields
}

// QualityReport summarizes the outcome of one ingestion run. Row-level
// problems never abort a run; they are annotated on the record and counted
// here.
type QualityReport struct {
	RunID        string      `json:"run_id"`
	TotalRows    int         `json:"total_rows"`
	ValidRows    int         `json:"valid_rows"`
	ErrorRows    int         `json:"error_rows"`
	PercentValid float64     `json:"percent_valid"`
	ErrorCounts  ErrorCounts `json:"error_counts"`
	Warnings     []string    `json:"warnings,omitempty"`
}

// IsValid checks internal consistency of the report.
func (q QualityReport) IsValid() bool {
	return q.TotalRows >= 0 && q.ValidRows >= 0 && q.ErrorRows >= 0 &&
		q.ValidRows+q.ErrorRows == q.TotalRows &&
		q.PercentValid >= 0 && q.PercentValid <= 100
}

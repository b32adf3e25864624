package models

import "time"

// Import session status values.
const (
	ImportStatusProcessing = "processing"
	ImportStatusCompleted  = "completed"
	ImportStatusError      = "error"
)

// ImportProgress is the snapshot emitted after every persisted batch and
// replayed to late subscribers of a session stream.
type ImportProgress struct {
	SessionID    string    `json:"session_id"`
	Processed    int       `json:"processed"`
	Total        int       `json:"total"`
	SuccessCount int       `json:"success_count"`
	FailedCount  int       `json:"failed_count"`
	Percentage   float64   `json:"percentage"`
	Status       string    `json:"status"` // Status: "processing", "completed", "error"
	Message      string    `json:"message,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Terminal reports whether the snapshot ends its session stream.
func (p *ImportProgress) Terminal() bool {
	return p.Status == ImportStatusCompleted || p.Status == ImportStatusError
}

// RowFailure ties a failed row back to its 1-based source row number.
type RowFailure struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportSummary is the final accounting of one import run. Partial success is
// the normal outcome, not an exceptional one.
type ImportSummary struct {
	TotalRows    int          `json:"total_rows"`
	SuccessCount int          `json:"success_count"`
	FailedRows   []RowFailure `json:"failed_rows"`
	Warnings     []string     `json:"warnings,omitempty"`
}

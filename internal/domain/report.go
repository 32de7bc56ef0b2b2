package domain

// SelectedTest is one entry of the final selection
type SelectedTest struct {
	Path    string   `json:"path"`
	Sources []Source `json:"sources"`
}

// SelectionMeta contains metadata about a selection run
type SelectionMeta struct {
	RunID           string         `json:"run_id"`
	Timestamp       string         `json:"timestamp"`
	Provider        string         `json:"provider"`
	Model           string         `json:"model,omitempty"`
	AdvisoryStatus  AdvisoryStatus `json:"advisory_status"`
	AdvisoryError   string         `json:"advisory_error,omitempty"`
	HTTPStatus      int            `json:"http_status,omitempty"`
	ChangedFiles    int            `json:"changed_files"`
	BaselineTests   int            `json:"baseline_tests"`
	AdvisoryTests   int            `json:"advisory_tests"`
	SelectedTests   int            `json:"selected_tests"`
	Duration        string         `json:"duration"`
	DurationSeconds float64        `json:"duration_seconds"`
	OutputFile      string         `json:"output_file"`
}

// SelectionReport is the complete JSON report of a selection run
type SelectionReport struct {
	Meta     SelectionMeta  `json:"meta"`
	Changed  []string       `json:"changed"`
	Tests    []SelectedTest `json:"tests"`
	Rejected []string       `json:"rejected,omitempty"` // well-formed advisory candidates that failed validation
}

// Paths returns the selected test paths in report order
func (r *SelectionReport) Paths() []string {
	paths := make([]string, len(r.Tests))
	for i, t := range r.Tests {
		paths[i] = t.Path
	}
	return paths
}

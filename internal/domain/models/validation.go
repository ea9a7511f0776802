package models

// Severity grades a validation finding. Critical and error findings make
// the dataset invalid; warnings alone do not.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityError    Severity = "error"
	SeverityWarning  Severity = "warning"
)

// ValidationFinding is one rule violation discovered in normalized data.
type ValidationFinding struct {
	Type       string   `json:"type"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Field      string   `json:"field,omitempty"`
	Value      float64  `json:"value,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// ValidationResult aggregates findings for one company.
type ValidationResult struct {
	IsValid      bool                `json:"is_valid"`
	Errors       []ValidationFinding `json:"errors"`
	Warnings     []ValidationFinding `json:"warnings"`
	QualityScore float64             `json:"quality_score"`
}

// Add routes a finding into the errors or warnings bucket and updates
// validity. Critical findings are kept in the errors bucket.
func (r *ValidationResult) Add(f ValidationFinding) {
	switch f.Severity {
	case SeverityWarning:
		r.Warnings = append(r.Warnings, f)
	default:
		r.Errors = append(r.Errors, f)
		r.IsValid = false
	}
}

// Merge folds another result's findings into this one.
func (r *ValidationResult) Merge(other ValidationResult) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	if !other.IsValid {
		r.IsValid = false
	}
}

// CountBySeverity returns how many findings carry the given severity.
func (r *ValidationResult) CountBySeverity(s Severity) int {
	n := 0
	for _, f := range r.Errors {
		if f.Severity == s {
			n++
		}
	}
	for _, f := range r.Warnings {
		if f.Severity == s {
			n++
		}
	}
	return n
}

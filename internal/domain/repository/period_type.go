package repository

// PeriodType identifies the reporting cadence of a stored ratio snapshot.
type PeriodType string

const (
	PeriodQuarterly PeriodType = "quarterly"
	PeriodAnnual    PeriodType = "annual"
)

// IsValidPeriodType returns true if pt is a supported period type.
func IsValidPeriodType(pt PeriodType) bool {
	switch pt {
	case PeriodQuarterly, PeriodAnnual:
		return true
	default:
		return false
	}
}

// DefaultPeriodType returns the default period type.
func DefaultPeriodType() PeriodType { return PeriodQuarterly }

// NormalizePeriodType converts a raw string to a valid period type (or default).
func NormalizePeriodType(s string) PeriodType {
	if s == "" {
		return DefaultPeriodType()
	}
	pt := PeriodType(s)
	if IsValidPeriodType(pt) {
		return pt
	}
	return DefaultPeriodType()
}

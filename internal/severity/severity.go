// Package severity provides severity level constants for issues reported
// during format conversion.
//
// The converter package re-exports these levels. They are ordered from least
// to most severe: Info < Warning < Critical.
package severity

// Severity indicates the severity level of an issue raised while converting
// a document between formats.
type Severity int

const (
	// SeverityInfo indicates informational messages about conversion choices.
	// These are non-actionable notices that may be useful for debugging.
	SeverityInfo Severity = iota

	// SeverityWarning indicates lossy conversions or best-effort
	// transformations that should be reviewed.
	SeverityWarning

	// SeverityCritical indicates features that cannot be converted without
	// data loss.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

package converter

import (
	"sort"

	"github.com/apiconv/apiconv/converrors"
	"github.com/apiconv/apiconv/document"
	"github.com/apiconv/apiconv/formats"
	"github.com/apiconv/apiconv/internal/issues"
	"github.com/apiconv/apiconv/internal/severity"
)

// Severity indicates the severity level of a conversion issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about conversion choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates lossy conversions or best-effort transformations
	SeverityWarning = severity.SeverityWarning
	// SeverityCritical indicates features that cannot be converted (data loss)
	SeverityCritical = severity.SeverityCritical
)

// Issue represents a single conversion issue or limitation
type Issue = issues.Issue

// Result contains the results of converting a document between formats
type Result struct {
	// Document contains the converted document
	Document *document.Node
	// Source is the source format
	Source formats.Format
	// Target is the target format
	Target formats.Format
	// Issues contains all conversion issues
	Issues []Issue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if conversion completed without critical issues
	Success bool
}

// HasCriticalIssues returns true if there are any critical issues
func (r *Result) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *Result) HasWarnings() bool {
	return r.WarningCount > 0
}

// addIssue appends a conversion issue to the result
func (r *Result) addIssue(path, message string, sev Severity) {
	r.Issues = append(r.Issues, Issue{Path: path, Message: message, Severity: sev})
}

// addIssueWithContext appends a warning issue with extra context
func (r *Result) addIssueWithContext(path, message, context string) {
	r.Issues = append(r.Issues, Issue{
		Path:     path,
		Message:  message,
		Severity: SeverityWarning,
		Context:  context,
	})
}

// updateCounts recomputes the per-severity counts from the issue list
func (r *Result) updateCounts() {
	r.InfoCount = 0
	r.WarningCount = 0
	r.CriticalCount = 0

	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityInfo:
			r.InfoCount++
		case SeverityWarning:
			r.WarningCount++
		case SeverityCritical:
			r.CriticalCount++
		}
	}
}

// Converter converts a document from one format to another. Implementations
// must not mutate the input document; they build a fresh output tree and
// record issues on the result.
type Converter interface {
	// Source returns the format this converter reads
	Source() formats.Format
	// Target returns the format this converter produces
	Target() formats.Format
	// Convert transforms doc into the target format
	Convert(doc *document.Node, opts Options, result *Result) (*document.Node, error)
}

// pair keys the converter registry by direction.
type pair struct {
	source formats.Format
	target formats.Format
}

var registry = make(map[pair]Converter)

func register(c Converter) {
	registry[pair{c.Source(), c.Target()}] = c
}

func init() {
	register(&harToOpenAPI3{})
	register(&openAPI3ToSwagger2{})
	register(&openAPI3Passthrough{})
	register(&postmanToHAR{})
	register(&postmanToOpenAPI3{})
	register(&hoppscotchToOpenAPI3{})
}

// For returns the converter registered for the source/target pair, or a
// *converrors.UnsupportedConversionError when none exists.
func For(source, target formats.Format) (Converter, error) {
	c, ok := registry[pair{source, target}]
	if !ok {
		return nil, &converrors.UnsupportedConversionError{
			Source: source.String(),
			Target: target.String(),
		}
	}
	return c, nil
}

// Pairs returns every registered (source, target) direction, sorted by
// source then target name.
func Pairs() [][2]formats.Format {
	out := make([][2]formats.Format, 0, len(registry))
	for p := range registry {
		out = append(out, [2]formats.Format{p.source, p.target})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

// AvailableFormats returns the sorted set of formats that appear as a source
// or target of at least one registered converter.
func AvailableFormats() []formats.Format {
	seen := make(map[formats.Format]bool)
	for p := range registry {
		seen[p.source] = true
		seen[p.target] = true
	}
	out := make([]formats.Format, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

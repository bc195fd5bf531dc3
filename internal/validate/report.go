package validate

import "fmt"

// Report accumulates validation findings for one run. Issues are fatal to
// overall success; warnings are advisory. Every check appends independently
// so a single run surfaces everything wrong with the document.
type Report struct {
	Issues   []string
	Warnings []string
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{}
}

// Issuef records a fatal issue.
func (r *Report) Issuef(format string, args ...interface{}) {
	r.Issues = append(r.Issues, fmt.Sprintf(format, args...))
}

// Warnf records a non-fatal warning.
func (r *Report) Warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge appends another report's findings onto this one.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Issues = append(r.Issues, other.Issues...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// OK reports overall success: no issues. Warnings alone do not fail a run.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

package ot

import (
	"errors"
	"fmt"
)

// Error categories. Errors returned by package ot wrap one of these, so clients
// may test for them with errors.Is.
var (
	// ErrTableNotFound is returned if a font does not contain a requested table.
	// This is a recoverable condition, as many tables are optional.
	ErrTableNotFound = errors.New("table not found")
	// ErrMalformed flags binary data which violates the font format, e.g. an
	// unknown scaler type, an invalid 'loca' format, or lengths exceeding a table.
	ErrMalformed = errors.New("malformed font data")
	// ErrOutOfRange flags an index or offset beyond valid bounds.
	ErrOutOfRange = errors.New("out of range")
	// ErrUnsupported flags valid font data this package does not interpret, e.g.
	// composite glyphs positioned by point matching.
	ErrUnsupported = errors.New("not supported")
)

// ErrorSeverity represents the severity level of a font parsing error.
type ErrorSeverity int

const (
	// SeverityCritical indicates a severe error that makes the font unusable or unreliable.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates a significant error that may affect functionality but doesn't prevent usage.
	SeverityMajor
	// SeverityMinor indicates a minor issue that can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// FontError represents an error encountered during font parsing.
type FontError struct {
	Table    Tag           // The table where the error occurred (e.g., "glyf", "cmap")
	Section  string        // Specific section within the table (e.g., "Format4", "Flags")
	Issue    string        // Human-readable description of the issue
	Severity ErrorSeverity // Severity level of the error
	Offset   uint32        // Byte offset in the font file where the error occurred (0 if unknown)
	Err      error         // error category, one of the Err… variables of this package
}

// Error implements the error interface.
func (e FontError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("[%s] %s/%s at offset %d: %s", e.Severity, e.Table, e.Section, e.Offset, e.Issue)
	}
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, e.Table, e.Section, e.Issue)
}

// Unwrap returns the error category of e.
func (e FontError) Unwrap() error {
	return e.Err
}

// FontWarning represents a non-critical issue encountered during font parsing.
// Warnings indicate potential problems but do not prevent font usage.
type FontWarning struct {
	Table  Tag    // The table where the warning occurred
	Issue  string // Human-readable description of the warning
	Offset uint32 // Byte offset in the font file where the warning occurred (0 if unknown)
}

// String returns a human-readable representation of the warning.
func (w FontWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Table, w.Issue)
}

// errFontFormat produces errors for malformed font data, outside of any table.
func errFontFormat(message string) error {
	return FontError{Section: "Directory", Issue: message, Severity: SeverityCritical, Err: ErrMalformed}
}

// errTable produces a table-level error of category err.
func errTable(table Tag, section string, err error, format string, args ...any) error {
	sev := SeverityMajor
	if errors.Is(err, ErrUnsupported) || errors.Is(err, ErrTableNotFound) {
		sev = SeverityMinor
	}
	return FontError{
		Table:    table,
		Section:  section,
		Issue:    fmt.Sprintf(format, args...),
		Severity: sev,
		Err:      err,
	}
}

// errorCollector accumulates errors and warnings during font parsing.
type errorCollector struct {
	errors   []FontError
	warnings []FontWarning
}

// addError records a parsing error.
func (ec *errorCollector) addError(table Tag, section string, issue string, severity ErrorSeverity, offset uint32) {
	ec.errors = append(ec.errors, FontError{
		Table:    table,
		Section:  section,
		Issue:    issue,
		Severity: severity,
		Offset:   offset,
		Err:      ErrMalformed,
	})
}

// addWarning records a parsing warning.
func (ec *errorCollector) addWarning(table Tag, issue string, offset uint32) {
	ec.warnings = append(ec.warnings, FontWarning{
		Table:  table,
		Issue:  issue,
		Offset: offset,
	})
}

// hasErrors returns true if any errors have been recorded.
func (ec *errorCollector) hasErrors() bool {
	return len(ec.errors) > 0
}

package wire

import (
	"fmt"
	"strings"
)

// MalformedError reports a byte stream that cannot be parsed as the wire
// grammar at all. Reason is for operator diagnostics only.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("wire: malformed message: %s", e.Reason)
}

func malformed(format string, args ...any) error {
	return &MalformedError{Reason: fmt.Sprintf(format, args...)}
}

// FieldViolation names one field that failed post-decode validation.
// Path uses dotted/indexed notation, e.g. "documents[2].categories[0]".
type FieldViolation struct {
	Path   string
	Reason string
}

// SchemaViolationError reports that a blob parsed cleanly but cannot
// represent any valid lifecycle state. It lists every offending field, not
// just the first.
type SchemaViolationError struct {
	Violations []FieldViolation
}

func (e *SchemaViolationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Path, v.Reason)
	}
	return "wire: schema violation: " + strings.Join(parts, "; ")
}

// Paths returns the offending field paths in reported order.
func (e *SchemaViolationError) Paths() []string {
	paths := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		paths[i] = v.Path
	}
	return paths
}

package submission

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyLedger signals a package with zero revisions. This is a defect,
// not a user error: the lifecycle never produces such a package.
var ErrEmptyLedger = errors.New("submission: package has no revisions")

// WrongStatusError reports a transition attempted against a package whose
// current revision is not in the state the transition requires.
type WrongStatusError struct {
	Op     string
	Status Status
}

func (e *WrongStatusError) Error() string {
	return fmt.Sprintf("submission: cannot %s a package in status %s", e.Op, e.Status)
}

// IncompleteSubmissionError reports a submit blocked by the completeness
// policy. Missing lists every required field that was absent, in policy
// order.
type IncompleteSubmissionError struct {
	Missing []string
}

func (e *IncompleteSubmissionError) Error() string {
	return "submission: incomplete submission, missing " + strings.Join(e.Missing, ", ")
}

// ImmutableFieldViolationError reports an update that attempted to change
// package-identity fields. Fields lists exactly the ones that were touched.
type ImmutableFieldViolationError struct {
	Fields []string
}

func (e *ImmutableFieldViolationError) Error() string {
	return "submission: attempt to modify immutable fields " + strings.Join(e.Fields, ", ")
}

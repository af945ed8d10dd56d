package submission

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Enterprise-CMCS/managed-care-review-sub003/healthplan"
)

// Engine performs the lifecycle transitions. It is stateless apart from its
// configuration and safe for concurrent use; every method takes a package
// value and returns a new one without touching the input.
type Engine struct {
	policy CompletenessPolicy
	now    func() time.Time
	newID  func() string
}

// NewEngine builds an engine enforcing the given completeness policy.
func NewEngine(policy CompletenessPolicy) *Engine {
	return &Engine{
		policy: policy,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// WithClock overrides the engine's clock, for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// WithIDGenerator overrides revision/package ID generation, for tests.
func (e *Engine) WithIDGenerator(gen func() string) *Engine {
	e.newID = gen
	return e
}

// CreateParams seeds a brand-new package.
type CreateParams struct {
	StateCode             string
	StateNumber           int
	ProgramIDs            []string
	SubmissionType        healthplan.SubmissionType
	SubmissionDescription string
}

// Create produces a package with a single unlocked revision holding the
// minimal draft form data. Creation always succeeds; nothing is validated
// until submit.
func (e *Engine) Create(params CreateParams) Package {
	now := e.timestamp()
	id := e.newID()

	fd := healthplan.FormData{
		ID:                    id,
		Status:                healthplan.StatusDraft,
		CreatedAt:             now,
		UpdatedAt:             now,
		StateCode:             params.StateCode,
		StateNumber:           params.StateNumber,
		ProgramIDs:            append([]string{}, params.ProgramIDs...),
		SubmissionType:        params.SubmissionType,
		SubmissionDescription: params.SubmissionDescription,
	}

	return Package{
		ID:          id,
		StateCode:   params.StateCode,
		StateNumber: params.StateNumber,
		CreatedAt:   now,
		Revisions: []Revision{{
			ID:        e.newID(),
			CreatedAt: now,
			FormData:  fd,
		}},
	}
}

// Submit finalizes the current revision with the candidate form data. It
// requires the current revision to be unlocked, the candidate to leave the
// package-identity fields untouched, and the completeness policy for the
// candidate's submission type to be satisfied. On any failure the input
// package is returned unchanged.
//
// Resubmission after an unlock is this same operation: the current revision
// is the one the unlock appended, and submit finalizes it in place.
func (e *Engine) Submit(pkg Package, form healthplan.FormData, actor, reason string) (Package, error) {
	idx, err := pkg.currentIndex()
	if err != nil {
		return pkg, err
	}
	cur := pkg.Revisions[idx]
	if cur.Finalized() {
		status, _ := pkg.Status()
		return pkg, &WrongStatusError{Op: "submit", Status: status}
	}

	if fields := immutableViolations(pkg, form); len(fields) > 0 {
		return pkg, &ImmutableFieldViolationError{Fields: fields}
	}

	missing, err := e.missingFields(form)
	if err != nil {
		return pkg, err
	}
	if len(missing) > 0 {
		return pkg, &IncompleteSubmissionError{Missing: missing}
	}

	now := e.timestamp()
	form = form.Clone()
	form.Status = healthplan.StatusSubmitted
	form.UpdatedAt = now

	rev := cur
	rev.FormData = form
	rev.submitInfo = &UpdateInfo{UpdatedAt: now, UpdatedBy: actor, UpdatedReason: reason}
	return pkg.cloneWith(idx, rev), nil
}

// Unlock reopens a submitted package for editing. It appends a new revision
// that copies the current form data unchanged and carries only the unlock
// audit record; the finalized revision it copies from is left untouched.
func (e *Engine) Unlock(pkg Package, actor, reason string) (Package, error) {
	idx, err := pkg.currentIndex()
	if err != nil {
		return pkg, err
	}
	cur := pkg.Revisions[idx]
	if !cur.Finalized() {
		status, _ := pkg.Status()
		return pkg, &WrongStatusError{Op: "unlock", Status: status}
	}

	now := e.timestamp()
	fd := cur.FormData.Clone()
	fd.Status = healthplan.StatusDraft
	fd.UpdatedAt = now

	return pkg.prepend(Revision{
		ID:         e.newID(),
		CreatedAt:  now,
		FormData:   fd,
		unlockInfo: &UpdateInfo{UpdatedAt: now, UpdatedBy: actor, UpdatedReason: reason},
	}), nil
}

// UpdateDraft replaces the current revision's form data in place. The
// current revision must be unlocked, and the candidate must not touch any
// package-identity field; violations report every touched field at once.
func (e *Engine) UpdateDraft(pkg Package, form healthplan.FormData) (Package, error) {
	idx, err := pkg.currentIndex()
	if err != nil {
		return pkg, err
	}
	cur := pkg.Revisions[idx]
	if cur.Finalized() {
		status, _ := pkg.Status()
		return pkg, &WrongStatusError{Op: "update", Status: status}
	}

	if fields := immutableViolations(pkg, form); len(fields) > 0 {
		return pkg, &ImmutableFieldViolationError{Fields: fields}
	}

	form = form.Clone()
	form.Status = healthplan.StatusDraft
	form.UpdatedAt = e.timestamp()

	rev := cur
	rev.FormData = form
	return pkg.cloneWith(idx, rev), nil
}

// missingFields evaluates the completeness policy against the candidate
// form data. The submission type itself must be present before the policy
// can even be chosen.
func (e *Engine) missingFields(form healthplan.FormData) ([]string, error) {
	if form.SubmissionType == "" {
		return []string{"submissionType"}, nil
	}
	required, ok := e.policy[form.SubmissionType]
	if !ok {
		return nil, fmt.Errorf("submission: completeness policy has no entry for submission type %q", form.SubmissionType)
	}

	var missing []string
	for _, name := range required {
		check, ok := presenceChecks[name]
		if !ok {
			return nil, fmt.Errorf("submission: completeness policy references unknown field %q", name)
		}
		if !check(form) {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// immutableViolations lists the package-identity fields the candidate form
// data attempts to change.
func immutableViolations(pkg Package, form healthplan.FormData) []string {
	var fields []string
	if form.ID != pkg.ID {
		fields = append(fields, "id")
	}
	if form.StateCode != pkg.StateCode {
		fields = append(fields, "stateCode")
	}
	if form.StateNumber != pkg.StateNumber {
		fields = append(fields, "stateNumber")
	}
	if !form.CreatedAt.Equal(pkg.CreatedAt) {
		fields = append(fields, "createdAt")
	}
	return fields
}

// timestamp returns the engine's notion of now, normalized to UTC at
// millisecond precision to match what the wire format can represent.
func (e *Engine) timestamp() time.Time {
	return e.now().UTC().Truncate(time.Millisecond)
}

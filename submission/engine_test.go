package submission

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Enterprise-CMCS/managed-care-review-sub003/healthplan"
)

// testEngine returns an engine with a deterministic clock (one second per
// call) and sequential IDs.
func testEngine() *Engine {
	t0 := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	calls := 0
	ids := 0
	return NewEngine(DefaultPolicy()).
		WithClock(func() time.Time {
			calls++
			return t0.Add(time.Duration(calls) * time.Second)
		}).
		WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		})
}

func createTestPackage(e *Engine) Package {
	return e.Create(CreateParams{
		StateCode:      "MN",
		StateNumber:    4,
		ProgramIDs:     []string{"program-1"},
		SubmissionType: healthplan.SubmissionTypeContractAndRates,
	})
}

// completeForm fills in everything the default policy requires for a
// contract-and-rates package, starting from the current draft.
func completeForm(t *testing.T, pkg Package) healthplan.FormData {
	t.Helper()
	cur, err := pkg.Current()
	require.NoError(t, err)

	fd := cur.FormData.Clone()
	fd.SubmissionType = healthplan.SubmissionTypeContractAndRates
	fd.SubmissionDescription = "contract amendment with rate certification"
	fd.StateContacts = []healthplan.StateContact{{Name: "Jamie Doe", Email: "jamie@state.mn.us"}}
	fd.ContractType = healthplan.ContractTypeBase
	fd.ContractExecutionStatus = healthplan.ContractExecutionStatusExecuted
	fd.ContractDateStart = healthplan.Date(2024, time.July, 1)
	fd.ContractDateEnd = healthplan.Date(2025, time.June, 30)
	fd.ManagedCareEntities = []healthplan.ManagedCareEntity{healthplan.ManagedCareEntityMCO}
	fd.FederalAuthorities = []healthplan.FederalAuthority{healthplan.FederalAuthorityStatePlan}
	fd.Documents = []healthplan.Document{{
		Name:       "contract.pdf",
		S3URL:      "s3://uploads/contract.pdf",
		Categories: []healthplan.DocumentCategory{healthplan.DocumentCategoryContract},
	}}
	fd.RateType = healthplan.RateTypeNew
	fd.RateDateStart = healthplan.Date(2024, time.July, 1)
	fd.RateDateEnd = healthplan.Date(2025, time.June, 30)
	fd.RateDateCertified = healthplan.Date(2024, time.May, 15)
	fd.ActuaryContacts = []healthplan.ActuaryContact{{
		Name:          "Sam Actuary",
		Email:         "sam@mercer.com",
		ActuarialFirm: healthplan.ActuarialFirmMercer,
	}}
	fd.ActuaryCommunicationPreference = healthplan.ActuaryCommunicationOACTToState
	return fd
}

func mustStatus(t *testing.T, pkg Package) Status {
	t.Helper()
	status, err := pkg.Status()
	require.NoError(t, err)
	return status
}

func TestCreateProducesDraft(t *testing.T) {
	e := testEngine()
	pkg := createTestPackage(e)

	require.Len(t, pkg.Revisions, 1)
	require.Equal(t, StatusDraft, mustStatus(t, pkg))

	cur, err := pkg.Current()
	require.NoError(t, err)
	assert.False(t, cur.Finalized())
	_, hasUnlock := cur.UnlockInfo()
	assert.False(t, hasUnlock)
	assert.Equal(t, healthplan.StatusDraft, cur.FormData.Status)
	assert.Equal(t, pkg.ID, cur.FormData.ID)
}

// TestLifecycleScenario walks the full draft -> submit -> unlock ->
// resubmit cycle and checks status, revision counts, and audit records at
// each step.
func TestLifecycleScenario(t *testing.T) {
	e := testEngine()
	pkg := createTestPackage(e)
	actor := "state-user-1"

	submitted, err := e.Submit(pkg, completeForm(t, pkg), actor, "initial submission")
	require.NoError(t, err)
	require.Equal(t, StatusSubmitted, mustStatus(t, submitted))
	require.Len(t, submitted.Revisions, 1)

	firstRev, err := submitted.Current()
	require.NoError(t, err)
	firstSubmit, ok := firstRev.SubmitInfo()
	require.True(t, ok)
	assert.Equal(t, actor, firstSubmit.UpdatedBy)
	assert.Equal(t, healthplan.StatusSubmitted, firstRev.FormData.Status)

	unlocked, err := e.Unlock(submitted, "cms-user-1", "needs fix")
	require.NoError(t, err)
	require.Equal(t, StatusUnlocked, mustStatus(t, unlocked))
	require.Len(t, unlocked.Revisions, 2)

	unlockInfo, ok := unlocked.Revisions[0].UnlockInfo()
	require.True(t, ok)
	assert.Equal(t, "needs fix", unlockInfo.UpdatedReason)
	assert.False(t, unlocked.Revisions[0].Finalized())
	assert.Equal(t, firstRev.FormData.Documents, unlocked.Revisions[0].FormData.Documents,
		"unlock must copy the prior form data")

	resubmitted, err := e.Submit(unlocked, completeForm(t, unlocked), actor, "fixed")
	require.NoError(t, err)
	require.Equal(t, StatusResubmitted, mustStatus(t, resubmitted))
	require.Len(t, resubmitted.Revisions, 2)

	// Resubmission finalizes the very revision the unlock appended.
	assert.Equal(t, unlocked.Revisions[0].ID, resubmitted.Revisions[0].ID)
	_, ok = resubmitted.Revisions[0].SubmitInfo()
	assert.True(t, ok)

	// The original submitted revision is untouched.
	assert.Equal(t, firstRev.ID, resubmitted.Revisions[1].ID)
	priorSubmit, ok := resubmitted.Revisions[1].SubmitInfo()
	require.True(t, ok)
	assert.Equal(t, firstSubmit, priorSubmit)
}

func TestStatusUsesOnlyNewestRevision(t *testing.T) {
	t1 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)
	info := &UpdateInfo{UpdatedAt: t3, UpdatedBy: "someone"}
	fd := healthplan.FormData{ID: "p", StateCode: "MN", StateNumber: 1}

	pkg := Package{
		ID: "p", StateCode: "MN", StateNumber: 1, CreatedAt: t1,
		Revisions: []Revision{
			RehydrateRevision("r3", t3, fd, info, nil),
			RehydrateRevision("r2", t2, fd, nil, nil),
			RehydrateRevision("r1", t1, fd, info, nil),
		},
	}

	require.Equal(t, StatusResubmitted, mustStatus(t, pkg))

	cur, err := pkg.Current()
	require.NoError(t, err)
	assert.Equal(t, "r3", cur.ID)
}

func TestSubmitIncompleteMissingDocuments(t *testing.T) {
	e := testEngine()
	pkg := createTestPackage(e)

	fd := completeForm(t, pkg)
	fd.Documents = nil

	after, err := e.Submit(pkg, fd, "state-user-1", "try")
	var incomplete *IncompleteSubmissionError
	require.ErrorAs(t, err, &incomplete)
	assert.Contains(t, incomplete.Missing, "documents")

	// No mutation on failure.
	assert.Equal(t, pkg, after)
	assert.Equal(t, StatusDraft, mustStatus(t, pkg))
}

func TestSubmitMissingSubmissionType(t *testing.T) {
	e := testEngine()
	pkg := createTestPackage(e)

	fd := completeForm(t, pkg)
	fd.SubmissionType = ""

	_, err := e.Submit(pkg, fd, "state-user-1", "try")
	var incomplete *IncompleteSubmissionError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{"submissionType"}, incomplete.Missing)
}

func TestSubmitWrongStatus(t *testing.T) {
	e := testEngine()
	pkg := createTestPackage(e)

	submitted, err := e.Submit(pkg, completeForm(t, pkg), "state-user-1", "initial")
	require.NoError(t, err)

	_, err = e.Submit(submitted, completeForm(t, submitted), "state-user-1", "again")
	var wrongStatus *WrongStatusError
	require.ErrorAs(t, err, &wrongStatus)
	assert.Equal(t, StatusSubmitted, wrongStatus.Status)
}

func TestUnlockWrongStatus(t *testing.T) {
	e := testEngine()
	pkg := createTestPackage(e)

	_, err := e.Unlock(pkg, "cms-user-1", "too early")
	var wrongStatus *WrongStatusError
	require.ErrorAs(t, err, &wrongStatus)
	assert.Equal(t, StatusDraft, wrongStatus.Status)
}

func TestUpdateDraftImmutableFields(t *testing.T) {
	e := testEngine()
	pkg := createTestPackage(e)

	fd := completeForm(t, pkg)
	fd.ID = "different-package"
	fd.StateCode = "VA"

	after, err := e.UpdateDraft(pkg, fd)
	var violation *ImmutableFieldViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, []string{"id", "stateCode"}, violation.Fields)
	assert.Equal(t, pkg, after, "stored revision must be unchanged on rejection")
}

func TestResubmitImmutableFields(t *testing.T) {
	e := testEngine()
	pkg := createTestPackage(e)

	submitted, err := e.Submit(pkg, completeForm(t, pkg), "state-user-1", "initial")
	require.NoError(t, err)
	unlocked, err := e.Unlock(submitted, "cms-user-1", "needs fix")
	require.NoError(t, err)

	fd := completeForm(t, unlocked)
	fd.StateNumber = 999

	_, err = e.Submit(unlocked, fd, "state-user-1", "sneaky")
	var violation *ImmutableFieldViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, []string{"stateNumber"}, violation.Fields)
}

func TestUpdateDraftReplacesInPlace(t *testing.T) {
	e := testEngine()
	pkg := createTestPackage(e)

	cur, err := pkg.Current()
	require.NoError(t, err)

	fd := completeForm(t, pkg)
	fd.SubmissionDescription = "edited description"

	after, err := e.UpdateDraft(pkg, fd)
	require.NoError(t, err)
	require.Len(t, after.Revisions, 1, "update must not append")

	updated, err := after.Current()
	require.NoError(t, err)
	assert.Equal(t, cur.ID, updated.ID)
	assert.Equal(t, "edited description", updated.FormData.SubmissionDescription)
	assert.Equal(t, StatusDraft, mustStatus(t, after))
}

func TestUpdateDraftWrongStatus(t *testing.T) {
	e := testEngine()
	pkg := createTestPackage(e)

	submitted, err := e.Submit(pkg, completeForm(t, pkg), "state-user-1", "initial")
	require.NoError(t, err)

	_, err = e.UpdateDraft(submitted, completeForm(t, submitted))
	var wrongStatus *WrongStatusError
	require.ErrorAs(t, err, &wrongStatus)
}

// TestAppendOnly runs repeated unlock/resubmit cycles and checks that the
// number of finalized revisions never decreases and that no finalized
// revision's submit record ever changes.
func TestAppendOnly(t *testing.T) {
	e := testEngine()
	pkg := createTestPackage(e)

	pkg, err := e.Submit(pkg, completeForm(t, pkg), "state-user-1", "initial")
	require.NoError(t, err)

	seenSubmits := map[string]UpdateInfo{}
	recordSubmits := func(p Package) int {
		finalized := 0
		for _, rev := range p.Revisions {
			info, ok := rev.SubmitInfo()
			if !ok {
				continue
			}
			finalized++
			if prev, seen := seenSubmits[rev.ID]; seen {
				require.Equal(t, prev, info, "submit info of revision %s changed", rev.ID)
			}
			seenSubmits[rev.ID] = info
		}
		return finalized
	}

	lastFinalized := recordSubmits(pkg)
	for cycle := 0; cycle < 4; cycle++ {
		pkg, err = e.Unlock(pkg, "cms-user-1", fmt.Sprintf("round %d", cycle))
		require.NoError(t, err)
		require.GreaterOrEqual(t, recordSubmits(pkg), lastFinalized)

		pkg, err = e.Submit(pkg, completeForm(t, pkg), "state-user-1", "resubmit")
		require.NoError(t, err)
		finalized := recordSubmits(pkg)
		require.GreaterOrEqual(t, finalized, lastFinalized)
		lastFinalized = finalized
	}

	require.Len(t, pkg.Revisions, 5)
	require.Equal(t, 5, lastFinalized)
}

func TestEmptyLedgerIsDefect(t *testing.T) {
	var pkg Package

	_, err := pkg.Current()
	require.ErrorIs(t, err, ErrEmptyLedger)

	_, err = pkg.Status()
	require.ErrorIs(t, err, ErrEmptyLedger)

	e := testEngine()
	_, err = e.Submit(pkg, healthplan.FormData{}, "actor", "reason")
	require.ErrorIs(t, err, ErrEmptyLedger)
}

func TestValidateFlagsStaleUnlockedRevision(t *testing.T) {
	t1 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	fd := healthplan.FormData{ID: "p"}
	info := &UpdateInfo{UpdatedAt: t2, UpdatedBy: "someone"}

	good := Package{
		ID: "p",
		Revisions: []Revision{
			RehydrateRevision("r2", t2, fd, nil, info),
			RehydrateRevision("r1", t1, fd, info, nil),
		},
	}
	require.NoError(t, good.Validate())

	corrupt := Package{
		ID: "p",
		Revisions: []Revision{
			RehydrateRevision("r2", t2, fd, info, nil),
			RehydrateRevision("r1", t1, fd, nil, nil),
		},
	}
	err := corrupt.Validate()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyLedger)
}

func TestEngineDoesNotMutateInput(t *testing.T) {
	e := testEngine()
	pkg := createTestPackage(e)

	before := pkg
	beforeRevs := len(pkg.Revisions)

	_, err := e.Submit(pkg, completeForm(t, pkg), "state-user-1", "initial")
	require.NoError(t, err)

	assert.Equal(t, before, pkg)
	assert.Len(t, pkg.Revisions, beforeRevs)
	cur, err := pkg.Current()
	require.NoError(t, err)
	assert.False(t, cur.Finalized(), "submit must not finalize the caller's copy")
}

func TestPolicyErrors(t *testing.T) {
	t.Run("unknown field name", func(t *testing.T) {
		e := NewEngine(CompletenessPolicy{
			healthplan.SubmissionTypeContractOnly: {"documents", "noSuchField"},
		})
		pkg := e.Create(CreateParams{StateCode: "MN", StateNumber: 1, SubmissionType: healthplan.SubmissionTypeContractOnly})
		fd, err := pkg.Current()
		require.NoError(t, err)

		form := fd.FormData.Clone()
		form.Documents = []healthplan.Document{{Name: "doc.pdf"}}
		_, err = e.Submit(pkg, form, "actor", "reason")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "noSuchField")
	})

	t.Run("missing submission type entry", func(t *testing.T) {
		e := NewEngine(CompletenessPolicy{})
		pkg := e.Create(CreateParams{StateCode: "MN", StateNumber: 1, SubmissionType: healthplan.SubmissionTypeContractOnly})
		fd, err := pkg.Current()
		require.NoError(t, err)

		_, err = e.Submit(pkg, fd.FormData.Clone(), "actor", "reason")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmptyLedger)
	})
}

func TestErrorsAreInformative(t *testing.T) {
	incomplete := &IncompleteSubmissionError{Missing: []string{"documents", "rateType"}}
	assert.Contains(t, incomplete.Error(), "documents")
	assert.Contains(t, incomplete.Error(), "rateType")

	violation := &ImmutableFieldViolationError{Fields: []string{"stateCode"}}
	assert.Contains(t, violation.Error(), "stateCode")

	wrong := &WrongStatusError{Op: "unlock", Status: StatusDraft}
	assert.Contains(t, wrong.Error(), "unlock")
	assert.True(t, errors.As(error(wrong), new(*WrongStatusError)))
}

// Package submission holds the revision ledger and the lifecycle engine for
// health plan packages. A package is an append-only sequence of revisions;
// its externally visible status is derived purely from that sequence. All
// transitions are pure: they take a package value and return a new one, and
// persisting the result is the caller's job.
package submission

import (
	"time"

	"github.com/Enterprise-CMCS/managed-care-review-sub003/healthplan"
)

// UpdateInfo is the audit record attached to a revision when it is
// submitted or when a new revision is opened by an unlock.
type UpdateInfo struct {
	UpdatedAt     time.Time
	UpdatedBy     string
	UpdatedReason string
}

// Revision is one snapshot of a package's form data. A revision without
// submit info is unlocked and may still be edited in place; once submit
// info is attached the revision is finalized and never changes again.
//
// The submit and unlock records are deliberately unexported so callers
// cannot read submit info off an unlocked revision or forge finalization;
// they go through the accessor pair instead.
type Revision struct {
	ID        string
	CreatedAt time.Time
	FormData  healthplan.FormData

	submitInfo *UpdateInfo
	unlockInfo *UpdateInfo
}

// Finalized reports whether the revision carries submit info.
func (r Revision) Finalized() bool {
	return r.submitInfo != nil
}

// SubmitInfo returns the submit audit record, if the revision is finalized.
func (r Revision) SubmitInfo() (UpdateInfo, bool) {
	if r.submitInfo == nil {
		return UpdateInfo{}, false
	}
	return *r.submitInfo, true
}

// UnlockInfo returns the unlock audit record, if this revision was opened
// by an unlock rather than by package creation.
func (r Revision) UnlockInfo() (UpdateInfo, bool) {
	if r.unlockInfo == nil {
		return UpdateInfo{}, false
	}
	return *r.unlockInfo, true
}

// RehydrateRevision rebuilds a revision from stored columns. It exists for
// the persistence layer; engine code constructs revisions through the
// lifecycle transitions only.
func RehydrateRevision(id string, createdAt time.Time, fd healthplan.FormData, submit, unlock *UpdateInfo) Revision {
	rev := Revision{ID: id, CreatedAt: createdAt, FormData: fd}
	if submit != nil {
		s := *submit
		rev.submitInfo = &s
	}
	if unlock != nil {
		u := *unlock
		rev.unlockInfo = &u
	}
	return rev
}

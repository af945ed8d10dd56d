package submission

import (
	"fmt"
	"time"
)

// Status is the externally visible state of a package, derived entirely
// from its revision sequence.
type Status string

const (
	StatusDraft       Status = "DRAFT"
	StatusSubmitted   Status = "SUBMITTED"
	StatusUnlocked    Status = "UNLOCKED"
	StatusResubmitted Status = "RESUBMITTED"
)

// Package is a health plan package: identity plus the ordered ledger of its
// revisions, newest first. A package never exists with zero revisions; any
// code path that would produce one is a defect, signalled by ErrEmptyLedger.
type Package struct {
	ID          string
	StateCode   string
	StateNumber int
	CreatedAt   time.Time
	Revisions   []Revision
}

// Current returns the revision with the greatest CreatedAt. When two
// revisions share a timestamp (never expected in practice) the one earlier
// in the sequence wins, keeping the choice deterministic.
func (p Package) Current() (Revision, error) {
	idx, err := p.currentIndex()
	if err != nil {
		return Revision{}, err
	}
	return p.Revisions[idx], nil
}

func (p Package) currentIndex() (int, error) {
	if len(p.Revisions) == 0 {
		return 0, ErrEmptyLedger
	}
	idx := 0
	for i := 1; i < len(p.Revisions); i++ {
		if p.Revisions[i].CreatedAt.After(p.Revisions[idx].CreatedAt) {
			idx = i
		}
	}
	return idx, nil
}

// Status derives the package state from the ledger:
//
//	one unlocked revision            -> DRAFT
//	one finalized revision           -> SUBMITTED
//	current finalized, several total -> RESUBMITTED
//	current unlocked, several total  -> UNLOCKED
func (p Package) Status() (Status, error) {
	cur, err := p.Current()
	if err != nil {
		return "", err
	}
	switch {
	case len(p.Revisions) == 1 && !cur.Finalized():
		return StatusDraft, nil
	case len(p.Revisions) == 1:
		return StatusSubmitted, nil
	case cur.Finalized():
		return StatusResubmitted, nil
	default:
		return StatusUnlocked, nil
	}
}

// Validate checks the ledger invariants: at least one revision, and every
// revision other than the current one finalized. A violation means the
// stored ledger was corrupted by code outside the lifecycle transitions.
func (p Package) Validate() error {
	idx, err := p.currentIndex()
	if err != nil {
		return err
	}
	for i, rev := range p.Revisions {
		if i != idx && !rev.Finalized() {
			return fmt.Errorf("submission: package %s: revision %s is unlocked but not current", p.ID, rev.ID)
		}
	}
	return nil
}

// cloneWith returns a copy of the package with the revision at idx
// replaced. The revisions slice is copied so the input package is never
// mutated.
func (p Package) cloneWith(idx int, rev Revision) Package {
	out := p
	out.Revisions = make([]Revision, len(p.Revisions))
	copy(out.Revisions, p.Revisions)
	out.Revisions[idx] = rev
	return out
}

// prepend returns a copy of the package with rev added as the newest
// element. Existing revisions are never removed or reordered.
func (p Package) prepend(rev Revision) Package {
	out := p
	out.Revisions = make([]Revision, 0, len(p.Revisions)+1)
	out.Revisions = append(out.Revisions, rev)
	out.Revisions = append(out.Revisions, p.Revisions...)
	return out
}

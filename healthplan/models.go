package healthplan

import "time"

// FormData is the canonical representation of a health plan package's form
// contents. It mirrors the fields captured across the submission flow and
// should not include serialization annotations so it can be reused by
// different transport layers; the wire package owns the encoded shape.
//
// Every field beyond the identifiers and the status tag is optional here.
// Whether a particular combination of optional fields constitutes a
// submittable draft is decided by the submission package's completeness
// policy, never by this model.
type FormData struct {
	ID          string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
	StateCode   string
	StateNumber int
	ProgramIDs  []string

	SubmissionType        SubmissionType
	SubmissionDescription string

	StateContacts []StateContact

	ContractType            ContractType
	ContractExecutionStatus ContractExecutionStatus
	ContractDateStart       *CalendarDate
	ContractDateEnd         *CalendarDate
	ManagedCareEntities     []ManagedCareEntity
	FederalAuthorities      []FederalAuthority
	ContractAmendmentInfo   *ContractAmendmentInfo

	Documents []Document

	RateType          RateType
	RateDateStart     *CalendarDate
	RateDateEnd       *CalendarDate
	RateDateCertified *CalendarDate
	RateAmendmentInfo *RateAmendmentInfo
	ActuaryContacts   []ActuaryContact

	ActuaryCommunicationPreference ActuaryCommunicationType
}

// StateContact is a person at the submitting state agency.
type StateContact struct {
	Name  string
	Title string
	Email string
}

// ActuaryContact is a certifying actuary attached to the rate portion of a
// package. ActuarialFirmOther is only meaningful when ActuarialFirm is
// ActuarialFirmOther.
type ActuaryContact struct {
	Name               string
	Title              string
	Email              string
	ActuarialFirm      ActuarialFirm
	ActuarialFirmOther string
}

// Document is an uploaded file attached to the package.
type Document struct {
	Name       string
	S3URL      string
	SHA256     string
	Categories []DocumentCategory
}

// ContractAmendmentInfo describes which provisions a contract amendment
// touches. Each flag is tri-state: nil means the question was not answered.
type ContractAmendmentInfo struct {
	ModifiedBenefitsProvided      *bool
	ModifiedGeoAreaServed         *bool
	ModifiedRiskSharingStrategy   *bool
	ModifiedIncentiveArrangements *bool
	RelatedToCovid19              *bool
}

// RateAmendmentInfo carries the effective window of a rate amendment.
type RateAmendmentInfo struct {
	EffectiveDateStart *CalendarDate
	EffectiveDateEnd   *CalendarDate
}

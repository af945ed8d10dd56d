package healthplan

// Status tags a FormData snapshot as either an in-progress draft or a
// finalized submission. The zero value means the tag is absent.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSubmitted Status = "SUBMITTED"
)

// SubmissionType distinguishes contract-only packages from packages that
// also carry rate certifications.
type SubmissionType string

const (
	SubmissionTypeContractOnly     SubmissionType = "CONTRACT_ONLY"
	SubmissionTypeContractAndRates SubmissionType = "CONTRACT_AND_RATES"
)

type ContractType string

const (
	ContractTypeBase      ContractType = "BASE"
	ContractTypeAmendment ContractType = "AMENDMENT"
)

type ContractExecutionStatus string

const (
	ContractExecutionStatusExecuted   ContractExecutionStatus = "EXECUTED"
	ContractExecutionStatusUnexecuted ContractExecutionStatus = "UNEXECUTED"
)

// ManagedCareEntity is the kind of plan the contract covers.
type ManagedCareEntity string

const (
	ManagedCareEntityMCO  ManagedCareEntity = "MCO"
	ManagedCareEntityPIHP ManagedCareEntity = "PIHP"
	ManagedCareEntityPAHP ManagedCareEntity = "PAHP"
	ManagedCareEntityPCCM ManagedCareEntity = "PCCM"
)

// FederalAuthority is the federal program authority a contract operates
// under.
type FederalAuthority string

const (
	FederalAuthorityStatePlan   FederalAuthority = "STATE_PLAN"
	FederalAuthorityWaiver1915B FederalAuthority = "WAIVER_1915B"
	FederalAuthorityWaiver1115  FederalAuthority = "WAIVER_1115"
	FederalAuthorityVoluntary   FederalAuthority = "VOLUNTARY"
	FederalAuthorityBenchmark   FederalAuthority = "BENCHMARK"
	FederalAuthorityTitleXXI    FederalAuthority = "TITLE_XXI"
)

type RateType string

const (
	RateTypeNew       RateType = "NEW"
	RateTypeAmendment RateType = "AMENDMENT"
)

// DocumentCategory classifies an uploaded document. A document may carry
// several categories.
type DocumentCategory string

const (
	DocumentCategoryContract        DocumentCategory = "CONTRACT"
	DocumentCategoryRates           DocumentCategory = "RATES"
	DocumentCategoryContractRelated DocumentCategory = "CONTRACT_RELATED"
	DocumentCategoryRatesRelated    DocumentCategory = "RATES_RELATED"
)

// ActuarialFirm enumerates the certifying firms recognized by the review
// program. ActuarialFirmOther requires the free-text firm name on the
// contact.
type ActuarialFirm string

const (
	ActuarialFirmMercer       ActuarialFirm = "MERCER"
	ActuarialFirmMilliman     ActuarialFirm = "MILLIMAN"
	ActuarialFirmOptumas      ActuarialFirm = "OPTUMAS"
	ActuarialFirmGuidehouse   ActuarialFirm = "GUIDEHOUSE"
	ActuarialFirmDeloitte     ActuarialFirm = "DELOITTE"
	ActuarialFirmStateInHouse ActuarialFirm = "STATE_IN_HOUSE"
	ActuarialFirmOther        ActuarialFirm = "OTHER"
)

// ActuaryCommunicationType records who the federal Office of the Actuary
// should contact with questions.
type ActuaryCommunicationType string

const (
	ActuaryCommunicationOACTToActuary ActuaryCommunicationType = "OACT_TO_ACTUARY"
	ActuaryCommunicationOACTToState   ActuaryCommunicationType = "OACT_TO_STATE"
)

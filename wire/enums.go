package wire

import "github.com/Enterprise-CMCS/managed-care-review-sub003/healthplan"

// enumTable is a static bidirectional mapping between a domain enum and its
// wire ordinal. Ordinal 0 is reserved in every table to mean absent, so the
// first variant always maps to 1. Tables are built once at init and their
// completeness is asserted by tests.
type enumTable[E ~string] struct {
	name     string
	toWire   map[E]uint64
	fromWire map[uint64]E
	variants []E
}

func newEnumTable[E ~string](name string, variants []E) enumTable[E] {
	t := enumTable[E]{
		name:     name,
		toWire:   make(map[E]uint64, len(variants)),
		fromWire: make(map[uint64]E, len(variants)),
		variants: variants,
	}
	for i, v := range variants {
		ord := uint64(i + 1)
		t.toWire[v] = ord
		t.fromWire[ord] = v
	}
	return t
}

// ordinal returns the wire value for v, or 0 when v is the zero ("absent")
// value. A non-zero variant missing from the table is a programming error
// caught by the totality tests, encoded here as 0 so it simply drops.
func (t enumTable[E]) ordinal(v E) uint64 {
	if v == "" {
		return 0
	}
	return t.toWire[v]
}

// variant maps a wire ordinal back to the domain value. ok is false for
// ordinal 0 (absent) and for ordinals this schema does not know; the caller
// distinguishes the two by checking n == 0.
func (t enumTable[E]) variant(n uint64) (E, bool) {
	v, ok := t.fromWire[n]
	return v, ok
}

var (
	statusTable = newEnumTable("status", []healthplan.Status{
		healthplan.StatusDraft,
		healthplan.StatusSubmitted,
	})
	submissionTypeTable = newEnumTable("submissionType", []healthplan.SubmissionType{
		healthplan.SubmissionTypeContractOnly,
		healthplan.SubmissionTypeContractAndRates,
	})
	contractTypeTable = newEnumTable("contractType", []healthplan.ContractType{
		healthplan.ContractTypeBase,
		healthplan.ContractTypeAmendment,
	})
	executionStatusTable = newEnumTable("contractExecutionStatus", []healthplan.ContractExecutionStatus{
		healthplan.ContractExecutionStatusExecuted,
		healthplan.ContractExecutionStatusUnexecuted,
	})
	entityTable = newEnumTable("managedCareEntities", []healthplan.ManagedCareEntity{
		healthplan.ManagedCareEntityMCO,
		healthplan.ManagedCareEntityPIHP,
		healthplan.ManagedCareEntityPAHP,
		healthplan.ManagedCareEntityPCCM,
	})
	authorityTable = newEnumTable("federalAuthorities", []healthplan.FederalAuthority{
		healthplan.FederalAuthorityStatePlan,
		healthplan.FederalAuthorityWaiver1915B,
		healthplan.FederalAuthorityWaiver1115,
		healthplan.FederalAuthorityVoluntary,
		healthplan.FederalAuthorityBenchmark,
		healthplan.FederalAuthorityTitleXXI,
	})
	rateTypeTable = newEnumTable("rateType", []healthplan.RateType{
		healthplan.RateTypeNew,
		healthplan.RateTypeAmendment,
	})
	docCategoryTable = newEnumTable("documentCategory", []healthplan.DocumentCategory{
		healthplan.DocumentCategoryContract,
		healthplan.DocumentCategoryRates,
		healthplan.DocumentCategoryContractRelated,
		healthplan.DocumentCategoryRatesRelated,
	})
	firmTable = newEnumTable("actuarialFirm", []healthplan.ActuarialFirm{
		healthplan.ActuarialFirmMercer,
		healthplan.ActuarialFirmMilliman,
		healthplan.ActuarialFirmOptumas,
		healthplan.ActuarialFirmGuidehouse,
		healthplan.ActuarialFirmDeloitte,
		healthplan.ActuarialFirmStateInHouse,
		healthplan.ActuarialFirmOther,
	})
	commTable = newEnumTable("actuaryCommunicationPreference", []healthplan.ActuaryCommunicationType{
		healthplan.ActuaryCommunicationOACTToActuary,
		healthplan.ActuaryCommunicationOACTToState,
	})
)

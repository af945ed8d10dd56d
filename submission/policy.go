package submission

import "github.com/Enterprise-CMCS/managed-care-review-sub003/healthplan"

// CompletenessPolicy maps a submission type to the ordered list of field
// names that must be present before a submit may finalize a revision. The
// table is supplied by the caller: required-field sets are program policy
// and evolve independently of the engine.
type CompletenessPolicy map[healthplan.SubmissionType][]string

// presenceChecks is the registry of field names a policy may reference,
// each paired with its presence predicate.
var presenceChecks = map[string]func(healthplan.FormData) bool{
	"documents":             func(fd healthplan.FormData) bool { return len(fd.Documents) > 0 },
	"submissionDescription": func(fd healthplan.FormData) bool { return fd.SubmissionDescription != "" },
	"stateContacts":         func(fd healthplan.FormData) bool { return len(fd.StateContacts) > 0 },

	"contractType":            func(fd healthplan.FormData) bool { return fd.ContractType != "" },
	"contractExecutionStatus": func(fd healthplan.FormData) bool { return fd.ContractExecutionStatus != "" },
	"contractDateStart":       func(fd healthplan.FormData) bool { return fd.ContractDateStart != nil },
	"contractDateEnd":         func(fd healthplan.FormData) bool { return fd.ContractDateEnd != nil },
	"managedCareEntities":     func(fd healthplan.FormData) bool { return len(fd.ManagedCareEntities) > 0 },
	"federalAuthorities":      func(fd healthplan.FormData) bool { return len(fd.FederalAuthorities) > 0 },

	"rateType":          func(fd healthplan.FormData) bool { return fd.RateType != "" },
	"rateDateStart":     func(fd healthplan.FormData) bool { return fd.RateDateStart != nil },
	"rateDateEnd":       func(fd healthplan.FormData) bool { return fd.RateDateEnd != nil },
	"rateDateCertified": func(fd healthplan.FormData) bool { return fd.RateDateCertified != nil },
	"actuaryContacts":   func(fd healthplan.FormData) bool { return len(fd.ActuaryContacts) > 0 },

	"actuaryCommunicationPreference": func(fd healthplan.FormData) bool { return fd.ActuaryCommunicationPreference != "" },
}

var contractRequirements = []string{
	"documents",
	"submissionDescription",
	"stateContacts",
	"contractType",
	"contractExecutionStatus",
	"contractDateStart",
	"contractDateEnd",
	"managedCareEntities",
	"federalAuthorities",
}

// DefaultPolicy returns the current program rules: contract fields and
// documents for every package, rate fields only when the package carries
// rate certifications. Callers with different rules build their own table.
func DefaultPolicy() CompletenessPolicy {
	withRates := append([]string{}, contractRequirements...)
	withRates = append(withRates,
		"rateType",
		"rateDateStart",
		"rateDateEnd",
		"rateDateCertified",
		"actuaryContacts",
		"actuaryCommunicationPreference",
	)
	return CompletenessPolicy{
		healthplan.SubmissionTypeContractOnly:     append([]string{}, contractRequirements...),
		healthplan.SubmissionTypeContractAndRates: withRates,
	}
}

package healthplan

// Clone returns a deep copy of the form data. Revisions snapshot form data
// at unlock time; without a deep copy the old and new revisions would share
// slice backing arrays and an edit to one could leak into the other.
func (fd FormData) Clone() FormData {
	out := fd

	out.ProgramIDs = cloneSlice(fd.ProgramIDs)
	out.StateContacts = cloneSlice(fd.StateContacts)
	out.ManagedCareEntities = cloneSlice(fd.ManagedCareEntities)
	out.FederalAuthorities = cloneSlice(fd.FederalAuthorities)

	if fd.Documents != nil {
		out.Documents = make([]Document, len(fd.Documents))
		for i, doc := range fd.Documents {
			doc.Categories = cloneSlice(doc.Categories)
			out.Documents[i] = doc
		}
	}

	if fd.ActuaryContacts != nil {
		out.ActuaryContacts = cloneSlice(fd.ActuaryContacts)
	}

	out.ContractDateStart = cloneDate(fd.ContractDateStart)
	out.ContractDateEnd = cloneDate(fd.ContractDateEnd)
	out.RateDateStart = cloneDate(fd.RateDateStart)
	out.RateDateEnd = cloneDate(fd.RateDateEnd)
	out.RateDateCertified = cloneDate(fd.RateDateCertified)

	if fd.ContractAmendmentInfo != nil {
		info := ContractAmendmentInfo{
			ModifiedBenefitsProvided:      cloneBool(fd.ContractAmendmentInfo.ModifiedBenefitsProvided),
			ModifiedGeoAreaServed:         cloneBool(fd.ContractAmendmentInfo.ModifiedGeoAreaServed),
			ModifiedRiskSharingStrategy:   cloneBool(fd.ContractAmendmentInfo.ModifiedRiskSharingStrategy),
			ModifiedIncentiveArrangements: cloneBool(fd.ContractAmendmentInfo.ModifiedIncentiveArrangements),
			RelatedToCovid19:              cloneBool(fd.ContractAmendmentInfo.RelatedToCovid19),
		}
		out.ContractAmendmentInfo = &info
	}

	if fd.RateAmendmentInfo != nil {
		info := RateAmendmentInfo{
			EffectiveDateStart: cloneDate(fd.RateAmendmentInfo.EffectiveDateStart),
			EffectiveDateEnd:   cloneDate(fd.RateAmendmentInfo.EffectiveDateEnd),
		}
		out.RateAmendmentInfo = &info
	}

	return out
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func cloneDate(d *CalendarDate) *CalendarDate {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

package healthplan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneIsDeep(t *testing.T) {
	yes := true
	orig := FormData{
		ID:                  "pkg-1",
		Status:              StatusDraft,
		StateCode:           "MN",
		StateNumber:         4,
		ProgramIDs:          []string{"a", "b"},
		StateContacts:       []StateContact{{Name: "Jamie"}},
		ManagedCareEntities: []ManagedCareEntity{ManagedCareEntityMCO},
		FederalAuthorities:  []FederalAuthority{FederalAuthorityStatePlan},
		ContractDateStart:   Date(2024, time.July, 1),
		ContractAmendmentInfo: &ContractAmendmentInfo{
			ModifiedBenefitsProvided: &yes,
		},
		Documents: []Document{{
			Name:       "contract.pdf",
			Categories: []DocumentCategory{DocumentCategoryContract},
		}},
		RateAmendmentInfo: &RateAmendmentInfo{
			EffectiveDateStart: Date(2024, time.September, 1),
		},
		ActuaryContacts: []ActuaryContact{{Name: "Sam"}},
	}

	clone := orig.Clone()
	require.Equal(t, orig, clone)

	clone.ProgramIDs[0] = "mutated"
	clone.StateContacts[0].Name = "mutated"
	clone.Documents[0].Categories[0] = DocumentCategoryRates
	*clone.ContractDateStart = CalendarDate{Year: 1999, Month: time.January, Day: 1}
	*clone.ContractAmendmentInfo.ModifiedBenefitsProvided = false
	*clone.RateAmendmentInfo.EffectiveDateStart = CalendarDate{Year: 1999, Month: time.January, Day: 1}
	clone.ActuaryContacts[0].Name = "mutated"

	assert.Equal(t, "a", orig.ProgramIDs[0])
	assert.Equal(t, "Jamie", orig.StateContacts[0].Name)
	assert.Equal(t, DocumentCategoryContract, orig.Documents[0].Categories[0])
	assert.Equal(t, 2024, orig.ContractDateStart.Year)
	assert.True(t, *orig.ContractAmendmentInfo.ModifiedBenefitsProvided)
	assert.Equal(t, 2024, orig.RateAmendmentInfo.EffectiveDateStart.Year)
	assert.Equal(t, "Sam", orig.ActuaryContacts[0].Name)
}

func TestClonePreservesNilness(t *testing.T) {
	orig := FormData{ID: "pkg-1", Status: StatusDraft, StateCode: "MN", StateNumber: 4}
	clone := orig.Clone()

	assert.Nil(t, clone.ProgramIDs)
	assert.Nil(t, clone.Documents)
	assert.Nil(t, clone.ContractDateStart)
	assert.Nil(t, clone.ContractAmendmentInfo)
	assert.Nil(t, clone.RateAmendmentInfo)
}

func TestCalendarDateEqual(t *testing.T) {
	a := Date(2024, time.July, 1)
	b := Date(2024, time.July, 1)
	c := Date(2024, time.July, 2)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, "2024-07-01", a.String())
}

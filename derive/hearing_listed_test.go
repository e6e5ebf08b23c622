package derive

import (
	"testing"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveHearingListed(t *testing.T) {
	assert := assert.New(t)

	t.Run("referable listing type", func(t *testing.T) {
		// given
		p := HearingListed{
			Hearing: Hearing{
				Id:    "hearing-1",
				Cases: []ProsecutionCase{{Id: "case-1"}, {Id: "case-2"}},
			},
			ListingType: "TRIAL",
		}

		// when
		derivations := DeriveHearingListed(p, testResolve, testIdentity)

		// then
		require.Len(t, derivations, 2)
		for i, d := range derivations {
			assert.Equal(ProcessReferCourtHearing, d.ProcessDefinitionKey)
			assert.Equal(CompositeBusinessKey("hearing-1", p.Hearing.Cases[i].Id), d.BusinessKey)
			assert.True(d.Variables.Bool(orchestration.VarReferCourtHearing))
			assert.False(d.Idle)
		}
	})

	t.Run("unknown listing type defaults to false", func(t *testing.T) {
		// given
		p := HearingListed{
			Hearing:     Hearing{Id: "hearing-1", Cases: []ProsecutionCase{{Id: "case-1"}}},
			ListingType: "MENTION",
		}

		// when
		derivations := DeriveHearingListed(p, testResolve, testIdentity)

		// then
		require.Len(t, derivations, 1)
		assert.False(derivations[0].Variables.Bool(orchestration.VarReferCourtHearing))
		assert.True(derivations[0].Idle)
	})
}

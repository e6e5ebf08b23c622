package derive

import (
	"testing"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveApplicationCreated(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		creatorType string
		expected    bool
	}{
		{"PROSECUTOR", true},
		{"DEFENCE", true},
		{"OTHER", false},
		{"COURT", false},
		{"", false},
	}

	for _, test := range tests {
		t.Run("creator type "+test.creatorType, func(t *testing.T) {
			// given
			p := ApplicationCreated{Application: CourtApplication{
				Id:          "application-1",
				CreatorType: test.creatorType,
			}}

			// when
			derivations := DeriveApplicationCreated(p, testResolve, testIdentity)

			// then
			require.Len(t, derivations, 1)
			d := derivations[0]
			assert.Equal(test.expected, d.Variables.Bool(orchestration.VarIsApplicationProsecutorOrDefence))
			assert.Equal(!test.expected, d.Idle)
		})
	}

	t.Run("business key is the application ID", func(t *testing.T) {
		// given
		p := ApplicationCreated{Application: CourtApplication{Id: "application-1"}}

		// when
		derivations := DeriveApplicationCreated(p, testResolve, testIdentity)

		// then
		assert.Equal("application-1", derivations[0].BusinessKey)
		assert.Equal(ProcessCourtApplication, derivations[0].ProcessDefinitionKey)
	})

	t.Run("absent subject degrades to empty strings", func(t *testing.T) {
		// given
		p := ApplicationCreated{Application: CourtApplication{Id: "application-1"}}

		// when
		derivations := DeriveApplicationCreated(p, testResolve, testIdentity)

		// then
		v := derivations[0].Variables
		assert.Equal("", v.String(orchestration.VarDefendantId))
		assert.Equal("", v.String(orchestration.VarDefendantName))
		assert.True(v.HasIdentity())
	})

	t.Run("subject composes defendant name", func(t *testing.T) {
		// given
		p := ApplicationCreated{Application: CourtApplication{
			Id:      "application-1",
			Subject: &Defendant{Id: "defendant-1", FirstName: "Ada", LastName: "Price"},
		}}

		// when
		derivations := DeriveApplicationCreated(p, testResolve, testIdentity)

		// then
		v := derivations[0].Variables
		assert.Equal("defendant-1", v.String(orchestration.VarDefendantId))
		assert.Equal("Ada Price", v.String(orchestration.VarDefendantName))
	})

	t.Run("execute instantly without scheduled hearing", func(t *testing.T) {
		// given
		unscheduled := ApplicationCreated{Application: CourtApplication{Id: "application-1"}}
		scheduled := ApplicationCreated{Application: CourtApplication{Id: "application-2", HearingId: "hearing-1"}}

		// when
		a := DeriveApplicationCreated(unscheduled, testResolve, testIdentity)
		b := DeriveApplicationCreated(scheduled, testResolve, testIdentity)

		// then
		assert.True(a[0].Variables.Bool(orchestration.VarExecuteInstantly))
		assert.False(b[0].Variables.Bool(orchestration.VarExecuteInstantly))
	})
}

package orchestration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVariables(t *testing.T) {
	assert := assert.New(t)

	identity := Identity{Id: "d0ff1e9c-64ad-4e6c-b57e-46791b71ef83", Name: "Progression Orchestration"}

	t.Run("new variables carry audit pair", func(t *testing.T) {
		// when
		v := NewVariables(identity)

		// then
		assert.True(v.HasIdentity())
		assert.Equal(identity.Id, v.String(VarLastUpdatedByID))
		assert.Equal(identity.Name, v.String(VarLastUpdatedByName))
	})

	t.Run("set zero time as empty string", func(t *testing.T) {
		// given
		v := NewVariables(identity)

		// when
		v.SetTime(VarHearingDate, time.Time{})

		// then
		assert.Equal("", v.String(VarHearingDate))
	})

	t.Run("set time as ISO 8601 timestamp", func(t *testing.T) {
		// given
		v := NewVariables(identity)

		// when
		v.SetTime(VarHearingDate, time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC))

		// then
		assert.Equal("2024-05-17T10:30:00Z", v.String(VarHearingDate))
	})

	t.Run("set nil string list as empty list", func(t *testing.T) {
		// given
		v := NewVariables(identity)

		// when
		v.SetStrings("candidateGroups", nil)

		// then
		assert.Equal([]string{}, v["candidateGroups"])
	})
}

func TestTaskVariablesFlatten(t *testing.T) {
	assert := assert.New(t)

	// given
	tv := TaskVariables{}
	tv.Set("reviewTransfer", TaskVarDeepLink, "/cases/1/tasks/review")
	tv.Set("reviewTransfer", TaskVarTaskTypeId, "6f2b")
	tv.Set("listHearing", TaskVarDeepLink, "/hearings/2")

	v := Variables{}

	// when
	tv.Flatten(v, "reviewTransfer")

	// then
	assert.Equal("/cases/1/tasks/review", v.String("reviewTransfer_deepLink"))
	assert.Equal("6f2b", v.String("reviewTransfer_taskTypeId"))
	assert.Equal("/hearings/2", v.String("listHearing_deepLink"))

	// shared copy is emitted under the bare name
	assert.Equal("/cases/1/tasks/review", v.String(TaskVarDeepLink))
	assert.Equal("6f2b", v.String(TaskVarTaskTypeId))

	// sibling task attributes are not
	_, ok := v["listHearing"]
	assert.False(ok)
}

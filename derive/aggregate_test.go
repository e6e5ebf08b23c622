package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersonName(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("Ada Price", PersonName("Ada", "Price"))
	assert.Equal("Price", PersonName("", "Price"))
	assert.Equal("Ada", PersonName("Ada", ""))
	assert.Equal("", PersonName("", ""))
	assert.Equal("Ada Price", PersonName(" Ada ", " Price "))
}

func TestHasCustodialResults(t *testing.T) {
	assert := assert.New(t)

	t.Run("custodial code present", func(t *testing.T) {
		c := ProsecutionCase{Defendants: []Defendant{
			{Results: []Result{{Code: "1000"}, {Code: "4012"}}},
		}}

		assert.True(HasCustodialResults(c))
	})

	t.Run("no custodial code", func(t *testing.T) {
		c := ProsecutionCase{Defendants: []Defendant{
			{Results: []Result{{Code: "1000"}}},
		}}

		assert.False(HasCustodialResults(c))
	})

	t.Run("invalid for transfer excludes custodial result", func(t *testing.T) {
		c := ProsecutionCase{Defendants: []Defendant{
			{Results: []Result{{Code: "4012"}, {Code: "4027"}}},
		}}

		assert.False(HasCustodialResults(c))
	})

	t.Run("reduced over defendants", func(t *testing.T) {
		c := ProsecutionCase{Defendants: []Defendant{
			{Results: []Result{{Code: "4012"}, {Code: "4027"}}},
			{Results: []Result{{Code: "4046"}}},
		}}

		assert.True(HasCustodialResults(c))
	})

	t.Run("no defendants", func(t *testing.T) {
		assert.False(HasCustodialResults(ProsecutionCase{}))
	})
}

func TestInterpreterNote(t *testing.T) {
	assert := assert.New(t)

	t.Run("groups defendants per case in input order", func(t *testing.T) {
		cases := []ProsecutionCase{
			{URN: "20GD1234521", Defendants: []Defendant{
				{FirstName: "Ada", LastName: "Price", InterpreterLanguage: "Welsh"},
				{FirstName: "Ben", LastName: "Frost", InterpreterLanguage: "Polish"},
			}},
			{URN: "20GD7654321", Defendants: []Defendant{
				{FirstName: "Cleo", LastName: "Marsh", InterpreterLanguage: "French"},
			}},
		}

		note := InterpreterNote(cases)
		assert.Equal("[ 20GD1234521 = Ada Price : Welsh,Ben Frost : Polish ][ 20GD7654321 = Cleo Marsh : French ]", note)
	})

	t.Run("omits defendants and cases without language", func(t *testing.T) {
		cases := []ProsecutionCase{
			{URN: "20GD1234521", Defendants: []Defendant{
				{FirstName: "Ada", LastName: "Price"},
			}},
			{URN: "20GD7654321", Defendants: []Defendant{
				{FirstName: "Cleo", LastName: "Marsh", InterpreterLanguage: "French"},
			}},
		}

		note := InterpreterNote(cases)
		assert.Equal("[ 20GD7654321 = Cleo Marsh : French ]", note)
	})

	t.Run("empty when no defendant qualifies", func(t *testing.T) {
		cases := []ProsecutionCase{
			{URN: "20GD1234521", Defendants: []Defendant{{FirstName: "Ada"}}},
		}

		assert.Equal("", InterpreterNote(cases))
	})
}

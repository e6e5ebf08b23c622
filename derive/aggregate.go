package derive

import "strings"

// Custodial result codes that qualify a case for transfer.
var custodialResultCodes = map[string]struct{}{
	"4012": {},
	"4016": {},
	"4028": {},
	"4046": {},
	"4058": {},
}

// Result codes that mark a defendant's outcome invalid for transfer,
// excluding otherwise custodial results.
var invalidForTransferCodes = map[string]struct{}{
	"4027": {},
	"4059": {},
}

// PersonName composes a display name from the parts that are present.
// An absent subject yields an empty string, never an error.
func PersonName(firstName, lastName string) string {
	return strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
}

// HasCustodialResults determines if any defendant of the case has a result
// code from the custodial set, unless the defendant's results carry an
// invalid-for-transfer code. Per-defendant filter, OR-reduced to case level.
func HasCustodialResults(c ProsecutionCase) bool {
	for _, defendant := range c.Defendants {
		if defendantHasCustodialResult(defendant) {
			return true
		}
	}
	return false
}

func defendantHasCustodialResult(d Defendant) bool {
	var custodial bool
	for _, result := range d.Results {
		if _, ok := invalidForTransferCodes[result.Code]; ok {
			return false
		}
		if _, ok := custodialResultCodes[result.Code]; ok {
			custodial = true
		}
	}
	return custodial
}

// HasInterpreter determines if any defendant across the given cases declares
// an interpreter language.
func HasInterpreter(cases []ProsecutionCase) bool {
	for _, c := range cases {
		for _, defendant := range c.Defendants {
			if defendant.InterpreterLanguage != "" {
				return true
			}
		}
	}
	return false
}

// InterpreterNote aggregates the interpreter needs of all cases into a single
// formatted string:
//
//	[ URN1 = name1 : lang1,name2 : lang2 ][ URN2 = name3 : lang3 ]
//
// Defendants without an interpreter language are omitted, cases without any
// qualifying defendant are omitted entirely. Grouping follows the input order
// of cases - the output is not independently sorted. An empty string is valid
// output when no defendant qualifies.
func InterpreterNote(cases []ProsecutionCase) string {
	var sb strings.Builder

	for _, c := range cases {
		var needs []string
		for _, defendant := range c.Defendants {
			if defendant.InterpreterLanguage == "" {
				continue
			}
			needs = append(needs, PersonName(defendant.FirstName, defendant.LastName)+" : "+defendant.InterpreterLanguage)
		}

		if len(needs) == 0 {
			continue
		}

		sb.WriteString("[ ")
		sb.WriteString(c.URN)
		sb.WriteString(" = ")
		sb.WriteString(strings.Join(needs, ","))
		sb.WriteString(" ]")
	}

	return sb.String()
}

package orchestration

import "fmt"

// Jurisdiction describes the jurisdiction a hearing or case belongs to.
type Jurisdiction int

const (
	JurisdictionCrown Jurisdiction = iota + 1
	JurisdictionMagistrates
)

func MapJurisdiction(s string) Jurisdiction {
	switch s {
	case "CROWN":
		return JurisdictionCrown
	case "MAGISTRATES":
		return JurisdictionMagistrates
	default:
		return 0
	}
}

func (v Jurisdiction) MarshalJSON() ([]byte, error) {
	s := v.String()
	if s == "" {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", s)), nil
}

func (v Jurisdiction) String() string {
	switch v {
	case JurisdictionCrown:
		return "CROWN"
	case JurisdictionMagistrates:
		return "MAGISTRATES"
	default:
		return ""
	}
}

func (v *Jurisdiction) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) > 2 {
		s = s[1 : len(s)-1]
		*v = MapJurisdiction(s)
	}
	if *v == 0 {
		return fmt.Errorf("invalid jurisdiction data %s", s)
	}
	return nil
}

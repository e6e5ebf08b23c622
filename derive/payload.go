package derive

// Event payload structs, one document type per domain event name. Fields not
// marked required are optional in the versioned schemas; their absence
// degrades to empty-string or false variables.

// HearingResulted is the payload of `public.progression.hearing-resulted`.
type HearingResulted struct {
	Hearing Hearing `json:"hearing" validate:"required"`
}

// HearingListed is the payload of `public.progression.hearing-listed`.
type HearingListed struct {
	Hearing     Hearing `json:"hearing" validate:"required"`
	ListingType string  `json:"listingType,omitempty"`
}

type Hearing struct {
	Id           string            `json:"id" validate:"required"`
	Jurisdiction string            `json:"jurisdictionType,omitempty"`
	HearingDate  string            `json:"hearingDate,omitempty"`
	CourtCentre  CourtCentre       `json:"courtCentre,omitempty"`
	Cases        []ProsecutionCase `json:"prosecutionCases,omitempty"`
}

type CourtCentre struct {
	Id     string `json:"id,omitempty"`
	RoomId string `json:"roomId,omitempty"`
}

type ProsecutionCase struct {
	Id         string      `json:"id" validate:"required"`
	URN        string      `json:"prosecutionCaseReference,omitempty"`
	Status     string      `json:"caseStatus,omitempty"`
	Defendants []Defendant `json:"defendants,omitempty"`
}

type Defendant struct {
	Id                  string   `json:"id,omitempty"`
	FirstName           string   `json:"firstName,omitempty"`
	LastName            string   `json:"lastName,omitempty"`
	InterpreterLanguage string   `json:"interpreterLanguageNeeds,omitempty"`
	Results             []Result `json:"offenceResults,omitempty"`
}

type Result struct {
	Code string `json:"resultCode,omitempty"`
}

// ApplicationCreated is the payload of `public.progression.application-created`.
type ApplicationCreated struct {
	Application CourtApplication `json:"courtApplication" validate:"required"`
}

type CourtApplication struct {
	Id          string     `json:"id" validate:"required"`
	Type        string     `json:"applicationType,omitempty"`
	CreatorType string     `json:"creatorType,omitempty"`
	CaseId      string     `json:"caseId,omitempty"`
	HearingId   string     `json:"hearingId,omitempty"`
	Subject     *Defendant `json:"subject,omitempty"`
}

// DocumentAdded is the payload of `public.progression.document-added`.
type DocumentAdded struct {
	Document Document `json:"document" validate:"required"`
}

type Document struct {
	Id           string `json:"id" validate:"required"`
	Type         string `json:"documentType,omitempty"`
	CaseId       string `json:"caseId,omitempty"`
	Jurisdiction string `json:"jurisdictionType,omitempty"`
}

package orchestration

import "fmt"

type Error struct {
	Type   ErrorType
	Title  string
	Detail string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Type, e.Title, e.Detail)
}

type ErrorType int

const (
	ErrorNotFound ErrorType = iota + 1
	ErrorProtocol
	ErrorUnavailable
	ErrorValidation
)

func MapErrorType(s string) ErrorType {
	switch s {
	case "NOT_FOUND":
		return ErrorNotFound
	case "PROTOCOL":
		return ErrorProtocol
	case "UNAVAILABLE":
		return ErrorUnavailable
	case "VALIDATION":
		return ErrorValidation
	default:
		return 0
	}
}

func (v ErrorType) String() string {
	switch v {
	case ErrorNotFound:
		return "NOT_FOUND"
	case ErrorProtocol:
		return "PROTOCOL"
	case ErrorUnavailable:
		return "UNAVAILABLE"
	case ErrorValidation:
		return "VALIDATION"
	default:
		return "UNKNOWN"
	}
}

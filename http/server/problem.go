package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
	"go.uber.org/zap"
)

const (
	headerContentType      = "Content-Type"
	contentTypeJson        = "application/json"
	contentTypeProblemJson = "application/problem+json"
)

// ProblemType determines if a problem is HTTP or orchestration related.
type ProblemType int

const (
	ProblemHttpRequestUri ProblemType = iota + 1

	// orchestration error types
	ProblemNotFound
	ProblemUnavailable
	ProblemValidation
)

func MapProblemType(s string) ProblemType {
	switch s {
	case "HTTP_REQUEST_URI":
		return ProblemHttpRequestUri
	case "NOT_FOUND":
		return ProblemNotFound
	case "UNAVAILABLE":
		return ProblemUnavailable
	case "VALIDATION":
		return ProblemValidation
	default:
		return 0
	}
}

func (v ProblemType) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", v.String())), nil
}

func (v *ProblemType) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 2 {
		*v = MapProblemType(s[1 : len(s)-1])
	}
	return nil
}

func (v ProblemType) String() string {
	switch v {
	case ProblemHttpRequestUri:
		return "HTTP_REQUEST_URI"
	case ProblemNotFound:
		return "NOT_FOUND"
	case ProblemUnavailable:
		return "UNAVAILABLE"
	case ProblemValidation:
		return "VALIDATION"
	default:
		return "UNKNOWN"
	}
}

// Common format for HTTP 4xx error responses, based on https://datatracker.ietf.org/doc/html/rfc9457.
type Problem struct {
	Status int         `json:"status" validate:"required"` // HTTP status code.
	Type   ProblemType `json:"type" validate:"required"`   // Problem type.
	Title  string      `json:"title" validate:"required"`  // Human-readable problem summary.
	Detail string      `json:"detail" validate:"required"` // Human-readable, detailed information about the problem.
}

func (v Problem) Error() string {
	return fmt.Sprintf("HTTP %d: %s: %s: %s", v.Status, v.Type, v.Title, v.Detail)
}

func (s *Server) encodeJSONProblemResponseBody(w http.ResponseWriter, r *http.Request, err error) {
	problem, ok := err.(Problem)
	if !ok {
		orchestrationErr, ok := err.(orchestration.Error)
		if !ok || orchestrationErr.Type == 0 {
			s.logger.Error("unexpected error occurred",
				zap.String("method", r.Method),
				zap.String("uri", r.RequestURI),
				zap.Error(err),
			)

			problem = Problem{
				Status: http.StatusInternalServerError,
				Title:  "unexpected error occurred",
				Detail: "see server logs",
			}
		} else {
			var (
				status      int
				problemType ProblemType
			)

			switch orchestrationErr.Type {
			case orchestration.ErrorNotFound:
				status = http.StatusNotFound
				problemType = ProblemNotFound
			case orchestration.ErrorUnavailable:
				status = http.StatusServiceUnavailable
				problemType = ProblemUnavailable
			case orchestration.ErrorValidation:
				status = http.StatusBadRequest
				problemType = ProblemValidation
			default:
				status = http.StatusInternalServerError
			}

			problem = Problem{
				Status: status,
				Type:   problemType,
				Title:  orchestrationErr.Title,
				Detail: orchestrationErr.Detail,
			}
		}
	}

	w.Header().Set(headerContentType, contentTypeProblemJson)
	w.WriteHeader(problem.Status)

	if err := json.NewEncoder(w).Encode(problem); err != nil {
		s.logger.Error("failed to create JSON problem response body",
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.Error(err),
		)
		http.Error(w, "unexpected error occurred - see server logs", http.StatusInternalServerError)
	}
}

func (s *Server) encodeJSONResponseBody(w http.ResponseWriter, r *http.Request, v any, statusCode int) {
	w.Header().Set(headerContentType, contentTypeJson)
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to create JSON response body",
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.Error(err),
		)
		http.Error(w, "unexpected error occurred - see server logs", http.StatusInternalServerError)
	}
}

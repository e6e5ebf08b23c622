package orchestration

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultIdentityId   = "system-progression"        // Default ID of the system identity.
	DefaultIdentityName = "Progression Orchestration" // Default display name of the system identity.
)

// An Engine creates and advances workflow runs.
//
// The engine is an external collaborator: the orchestration layer hands it a
// process definition key, a business key and a variable map, and consumes the
// task lifecycle signals it raises. Process state is owned by the engine and
// never persisted here.
type Engine interface {
	// StartProcessInstance starts a workflow run, identified by a business key
	// within the namespace of its process definition.
	StartProcessInstance(context.Context, StartProcessInstanceCmd) (ProcessInstance, error)
}

// ProcessInstance is a started workflow run, as reported by the engine.
type ProcessInstance struct {
	Id string `json:"id" validate:"required"` // Engine-assigned run ID.

	BusinessKey          string    `json:"businessKey" validate:"required"`          // Key, used to correlate the run with a business entity.
	ProcessDefinitionKey string    `json:"processDefinitionKey" validate:"required"` // Key of the process definition.
	StartedAt            time.Time `json:"startedAt" validate:"required"`            // Start time.
	StartedBy            string    `json:"startedBy" validate:"required"`            // ID of the identity that started the run.
}

// Identity is the system or user identity attributed to engine interactions.
//
// Every variable map handed to the engine carries the identity as the audit
// pair lastUpdatedByID / lastUpdatedByName.
type Identity struct {
	Id   string // Identity ID.
	Name string // Human-readable identity name.
}

func (i Identity) Validate() error {
	if strings.TrimSpace(i.Id) == "" {
		return errors.New("identity ID must not be empty or blank")
	}
	if strings.TrimSpace(i.Name) == "" {
		return errors.New("identity name must not be empty or blank")
	}

	return nil
}

var commandValidator = validator.New()

// ValidateCommand validates a command struct against its validate tags.
// A violation is returned as an [Error] of type [ErrorValidation].
func ValidateCommand(cmd any) error {
	if err := commandValidator.Struct(cmd); err != nil {
		return Error{
			Type:   ErrorValidation,
			Title:  "command validation failed",
			Detail: err.Error(),
		}
	}
	return nil
}

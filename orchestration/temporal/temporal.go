// Package temporal provides a workflow engine backed by a Temporal cluster.
package temporal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
)

func New(target string, customizers ...func(*Options)) (*Engine, error) {
	if target == "" {
		return nil, errors.New("target is empty")
	}

	options := NewOptions()
	for _, customizer := range customizers {
		customizer(&options)
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}

	c, err := client.Dial(client.Options{
		HostPort:  target,
		Namespace: options.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %v", target, err)
	}

	return &Engine{c: c, options: options}, nil
}

// NewFromClient creates an engine from an existing client. The caller remains
// responsible for closing the client.
func NewFromClient(c client.Client, customizers ...func(*Options)) (*Engine, error) {
	if c == nil {
		return nil, errors.New("client is nil")
	}

	options := NewOptions()
	for _, customizer := range customizers {
		customizer(&options)
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}

	return &Engine{c: c, options: options}, nil
}

func NewOptions() Options {
	return Options{
		Namespace:    "default",
		TaskQueue:    "progression",
		StartTimeout: 10 * time.Second,
	}
}

type Options struct {
	Namespace    string        // Temporal namespace.
	TaskQueue    string        // Task queue the workflow workers poll.
	StartTimeout time.Duration // Timeout for issuing one workflow start.
}

func (o Options) Validate() error {
	if o.Namespace == "" {
		return errors.New("option Namespace is empty")
	}
	if o.TaskQueue == "" {
		return errors.New("option TaskQueue is empty")
	}
	return nil
}

// Engine starts workflow runs on a Temporal cluster. The workflow ID is
// derived from process definition key and business key, so a run is unique
// per business entity and process.
type Engine struct {
	c       client.Client
	options Options
}

// StartProcessInstance starts a workflow run. A run that already exists for
// the command's business key is returned as is - reissuing a start is
// idempotent, which lets the event transport redeliver at will.
func (e *Engine) StartProcessInstance(ctx context.Context, cmd orchestration.StartProcessInstanceCmd) (orchestration.ProcessInstance, error) {
	if err := orchestration.ValidateCommand(cmd); err != nil {
		return orchestration.ProcessInstance{}, err
	}

	startCtx := ctx
	if e.options.StartTimeout > 0 {
		var cancel context.CancelFunc
		startCtx, cancel = context.WithTimeout(ctx, e.options.StartTimeout)
		defer cancel()
	}

	run, err := e.c.ExecuteWorkflow(startCtx, client.StartWorkflowOptions{
		ID:                    WorkflowId(cmd.ProcessDefinitionKey, cmd.BusinessKey),
		TaskQueue:             e.options.TaskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}, cmd.ProcessDefinitionKey, cmd.Variables)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return orchestration.ProcessInstance{
				Id:                   alreadyStarted.RunId,
				BusinessKey:          cmd.BusinessKey,
				ProcessDefinitionKey: cmd.ProcessDefinitionKey,
				StartedBy:            cmd.StartedBy,
			}, nil
		}

		var unavailable *serviceerror.Unavailable
		if errors.As(err, &unavailable) {
			return orchestration.ProcessInstance{}, orchestration.Error{
				Type:   orchestration.ErrorUnavailable,
				Title:  "workflow engine unavailable",
				Detail: err.Error(),
			}
		}

		return orchestration.ProcessInstance{}, fmt.Errorf("failed to start workflow %s: %v", cmd.ProcessDefinitionKey, err)
	}

	return orchestration.ProcessInstance{
		Id:                   run.GetRunID(),
		BusinessKey:          cmd.BusinessKey,
		ProcessDefinitionKey: cmd.ProcessDefinitionKey,
		StartedAt:            time.Now(),
		StartedBy:            cmd.StartedBy,
	}, nil
}

func (e *Engine) Shutdown() {
	e.c.Close()
}

// WorkflowId builds the engine-side run ID of a business entity's workflow.
func WorkflowId(processDefinitionKey string, businessKey string) string {
	return processDefinitionKey + "/" + businessKey
}

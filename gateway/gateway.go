// Package gateway decides, per inbound domain event, which workflow runs to
// start. It evaluates guards (feature flag, payload-derived routing flags),
// derives one business key and variable map per affected entity and delegates
// the starts to the workflow engine.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/derive"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/refdata"
	"go.uber.org/zap"
)

func New(e orchestration.Engine, flags FeatureFlags, resolver *refdata.Resolver, logger *zap.Logger, customizers ...func(*Options)) (*Gateway, error) {
	if e == nil {
		return nil, errors.New("engine is nil")
	}
	if flags == nil {
		return nil, errors.New("feature flags are nil")
	}
	if resolver == nil {
		return nil, errors.New("resolver is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	options := NewOptions()
	for _, customizer := range customizers {
		customizer(&options)
	}

	if err := options.Identity.Validate(); err != nil {
		return nil, err
	}

	g := Gateway{
		e:        e,
		flags:    flags,
		resolver: resolver,
		logger:   logger,
		options:  options,
	}

	// closed dispatch table: one entry per known event name
	g.handlers = map[string]handlerFunc{
		orchestration.EventApplicationCreated: g.handleApplicationCreated,
		orchestration.EventDocumentAdded:      g.handleDocumentAdded,
		orchestration.EventHearingListed:      g.handleHearingListed,
		orchestration.EventHearingResulted:    g.handleHearingResulted,
	}

	return &g, nil
}

func NewOptions() Options {
	return Options{
		Identity: orchestration.Identity{
			Id:   orchestration.DefaultIdentityId,
			Name: orchestration.DefaultIdentityName,
		},
		Now: time.Now,
	}
}

type Options struct {
	Identity orchestration.Identity // Identity attributed to every derived variable map.
	Now      func() time.Time       // Time source, used as the as-of time when an event carries none.
}

type handlerFunc func(ctx context.Context, event orchestration.Event) ([]derive.Derivation, error)

var payloadValidator = validator.New()

type Gateway struct {
	e        orchestration.Engine
	flags    FeatureFlags
	resolver *refdata.Resolver
	logger   *zap.Logger
	options  Options

	handlers map[string]handlerFunc
}

// Handle processes one inbound domain event.
//
// An unrecognized event name and a disabled feature flag are both normal,
// non-error outcomes that produce neither derivation side effects nor engine
// calls. A malformed payload is returned as an error, leaving the retry to
// the event-delivery transport. Start failures are isolated per business key
// and reported in the results, never as an overall error - siblings proceed.
func (g *Gateway) Handle(ctx context.Context, event orchestration.Event) ([]StartResult, error) {
	handler, ok := g.handlers[event.Name]
	if !ok {
		g.logger.Debug("unrecognized event", zap.String("event", event.Name))
		return nil, nil
	}

	enabled, err := g.flags.IsEnabled(ctx, event.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate feature flag %s: %w", event.Name, err)
	}
	if !enabled {
		g.logger.Debug("event disabled by feature flag", zap.String("event", event.Name))
		eventsIgnored.WithLabelValues(event.Name).Inc()
		return nil, nil
	}

	derivations, err := handler(ctx, event)
	if err != nil {
		return nil, err
	}

	eventsHandled.WithLabelValues(event.Name).Inc()

	return g.start(ctx, event, derivations), nil
}

// start issues the process starts of one event concurrently, one per derived
// business key. There is no cross-entity transaction.
func (g *Gateway) start(ctx context.Context, event orchestration.Event, derivations []derive.Derivation) []StartResult {
	results := make([]StartResult, len(derivations))

	var wg sync.WaitGroup
	for i, d := range derivations {
		wg.Add(1)
		go func(i int, d derive.Derivation) {
			defer wg.Done()
			results[i] = g.startOne(ctx, event, d)
		}(i, d)
	}
	wg.Wait()

	return results
}

func (g *Gateway) startOne(ctx context.Context, event orchestration.Event, d derive.Derivation) StartResult {
	if d.Idle && StartPolicyFor(d.ProcessDefinitionKey) == SkipWhenIdle {
		g.logger.Debug("skipped process start",
			zap.String("event", event.Name),
			zap.String("processDefinitionKey", d.ProcessDefinitionKey),
			zap.String("businessKey", d.BusinessKey),
		)
		processSkips.WithLabelValues(d.ProcessDefinitionKey).Inc()
		return StartResult{BusinessKey: d.BusinessKey, Outcome: OutcomeSkipped}
	}

	cmd := orchestration.StartProcessInstanceCmd{
		ProcessDefinitionKey: d.ProcessDefinitionKey,
		BusinessKey:          d.BusinessKey,
		Variables:            d.Variables,
		StartedBy:            g.options.Identity.Id,
	}

	if err := orchestration.ValidateCommand(cmd); err != nil {
		return StartResult{BusinessKey: d.BusinessKey, Outcome: OutcomeSkipped, Err: err}
	}

	if _, err := g.e.StartProcessInstance(ctx, cmd); err != nil {
		g.logger.Error("failed to start process instance",
			zap.String("event", event.Name),
			zap.String("processDefinitionKey", d.ProcessDefinitionKey),
			zap.String("businessKey", d.BusinessKey),
			zap.Error(err),
		)
		processStartFailures.WithLabelValues(d.ProcessDefinitionKey).Inc()
		return StartResult{BusinessKey: d.BusinessKey, Outcome: OutcomeStarted, Err: err}
	}

	processStarts.WithLabelValues(d.ProcessDefinitionKey).Inc()
	return StartResult{BusinessKey: d.BusinessKey, Outcome: OutcomeStarted}
}

func (g *Gateway) handleApplicationCreated(ctx context.Context, event orchestration.Event) ([]derive.Derivation, error) {
	var p derive.ApplicationCreated
	if err := g.decode(event, &p); err != nil {
		return nil, err
	}
	return derive.DeriveApplicationCreated(p, g.resolveFunc(ctx, event), g.options.Identity), nil
}

func (g *Gateway) handleDocumentAdded(ctx context.Context, event orchestration.Event) ([]derive.Derivation, error) {
	var p derive.DocumentAdded
	if err := g.decode(event, &p); err != nil {
		return nil, err
	}
	return derive.DeriveDocumentAdded(p, g.resolveFunc(ctx, event), g.options.Identity), nil
}

func (g *Gateway) handleHearingListed(ctx context.Context, event orchestration.Event) ([]derive.Derivation, error) {
	var p derive.HearingListed
	if err := g.decode(event, &p); err != nil {
		return nil, err
	}
	return derive.DeriveHearingListed(p, g.resolveFunc(ctx, event), g.options.Identity), nil
}

func (g *Gateway) handleHearingResulted(ctx context.Context, event orchestration.Event) ([]derive.Derivation, error) {
	var p derive.HearingResulted
	if err := g.decode(event, &p); err != nil {
		return nil, err
	}
	return derive.DeriveHearingResulted(p, g.resolveFunc(ctx, event), g.options.Identity), nil
}

func (g *Gateway) decode(event orchestration.Event, payload any) error {
	if err := json.Unmarshal(event.Payload, payload); err != nil {
		return orchestration.Error{
			Type:   orchestration.ErrorValidation,
			Title:  fmt.Sprintf("failed to decode %s payload", event.Name),
			Detail: err.Error(),
		}
	}
	if err := payloadValidator.Struct(payload); err != nil {
		return orchestration.Error{
			Type:   orchestration.ErrorValidation,
			Title:  fmt.Sprintf("invalid %s payload", event.Name),
			Detail: err.Error(),
		}
	}
	return nil
}

func (g *Gateway) resolveFunc(ctx context.Context, event orchestration.Event) derive.ResolveFunc {
	asOf := event.ReceivedAt
	if asOf.IsZero() {
		asOf = g.options.Now()
	}

	return func(taskTypeNames []string, naturalId string) refdata.EntrySet {
		return g.resolver.ResolveAll(ctx, taskTypeNames, naturalId, asOf)
	}
}

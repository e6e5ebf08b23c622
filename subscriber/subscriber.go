// Package subscriber consumes case progression events from a NATS JetStream
// stream and hands them to an event handler.
package subscriber

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/gateway"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"
)

// A Handler processes one inbound event, returning the result of each process
// instance start it attempted.
type Handler interface {
	Handle(ctx context.Context, event orchestration.Event) ([]gateway.StartResult, error)
}

func New(js jetstream.JetStream, handler Handler, logger *zap.Logger, customizers ...func(*Options)) (*Subscriber, error) {
	if js == nil {
		return nil, errors.New("jetstream is nil")
	}
	if handler == nil {
		return nil, errors.New("handler is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	options := NewOptions()
	for _, customizer := range customizers {
		customizer(&options)
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}

	return &Subscriber{
		js:      js,
		handler: handler,
		logger:  logger,
		options: options,
	}, nil
}

func NewOptions() Options {
	return Options{
		StreamName:   "PROGRESSION",
		ConsumerName: "progression-orchestration",
		FilterSubjects: []string{
			orchestration.EventApplicationCreated,
			orchestration.EventDocumentAdded,
			orchestration.EventHearingListed,
			orchestration.EventHearingResulted,
		},
		AckWait:    60 * time.Second,
		MaxDeliver: 5,
		FetchSize:  10,
		FetchWait:  5 * time.Second,
	}
}

type Options struct {
	StreamName     string        // Name of the stream the events are published to.
	ConsumerName   string        // Name of the durable consumer.
	FilterSubjects []string      // Subjects to consume, each being an event name.
	AckWait        time.Duration // Time the handler has before a message is redelivered.
	MaxDeliver     int           // Maximum delivery attempts per message.
	FetchSize      int           // Maximum number of messages per fetch.
	FetchWait      time.Duration // Maximum time to wait for a fetch to fill.
}

func (o Options) Validate() error {
	if o.StreamName == "" {
		return errors.New("option StreamName is empty")
	}
	if o.ConsumerName == "" {
		return errors.New("option ConsumerName is empty")
	}
	if len(o.FilterSubjects) == 0 {
		return errors.New("option FilterSubjects is empty")
	}
	if o.FetchSize <= 0 {
		return fmt.Errorf("option FetchSize must be positive, but is %d", o.FetchSize)
	}
	return nil
}

// Subscriber runs a durable pull consumer. Messages are acknowledged after
// handling; a message that fails with a transient error is negatively
// acknowledged for redelivery, while a malformed message is terminated, since
// redelivery cannot repair it.
type Subscriber struct {
	js      jetstream.JetStream
	handler Handler
	logger  *zap.Logger
	options Options

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Start creates or updates the durable consumer and begins consuming in the
// background. It returns after the consumer exists.
func (s *Subscriber) Start(ctx context.Context) error {
	stream, err := s.js.Stream(ctx, s.options.StreamName)
	if err != nil {
		return fmt.Errorf("failed to get stream %s: %v", s.options.StreamName, err)
	}

	consumer, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:        s.options.ConsumerName,
		FilterSubjects: s.options.FilterSubjects,
		AckPolicy:      jetstream.AckExplicitPolicy,
		AckWait:        s.options.AckWait,
		MaxDeliver:     s.options.MaxDeliver,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer %s: %v", s.options.ConsumerName, err)
	}

	consumeCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go s.consume(consumeCtx, consumer)

	s.logger.Info("subscriber started",
		zap.String("stream", s.options.StreamName),
		zap.String("consumer", s.options.ConsumerName),
	)
	return nil
}

// Shutdown stops consuming and waits for the in-flight message to finish.
func (s *Subscriber) Shutdown() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Subscriber) consume(ctx context.Context, consumer jetstream.Consumer) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msgs, err := consumer.Fetch(s.options.FetchSize, jetstream.FetchMaxWait(s.options.FetchWait))
		if err != nil {
			if ctx.Err() != nil {
				return
			}

			s.logger.Warn("failed to fetch messages", zap.Error(err))
			continue
		}

		for msg := range msgs.Messages() {
			s.handleMessage(ctx, msg)
		}
	}
}

func (s *Subscriber) handleMessage(ctx context.Context, msg jetstream.Msg) {
	event := orchestration.Event{
		Name:    msg.Subject(),
		Payload: msg.Data(),
	}

	if metadata, err := msg.Metadata(); err == nil {
		event.ReceivedAt = metadata.Timestamp
	}
	if headers := msg.Headers(); headers != nil {
		event.CorrelationId = headers.Get("Nats-Msg-Id")
	}

	results, err := s.handler.Handle(ctx, event)
	if err != nil {
		var orchestrationErr orchestration.Error
		if errors.As(err, &orchestrationErr) && orchestrationErr.Type == orchestration.ErrorValidation {
			s.logger.Warn("terminated malformed event",
				zap.String("event", event.Name),
				zap.String("correlationId", event.CorrelationId),
				zap.Error(err),
			)
			s.terminate(msg)
			return
		}

		s.logger.Error("failed to handle event",
			zap.String("event", event.Name),
			zap.String("correlationId", event.CorrelationId),
			zap.Error(err),
		)
		s.nak(msg)
		return
	}

	// A failed start is retried via redelivery. The business keys are
	// deterministic, so starts that already succeeded are rejected as
	// duplicates by the engine on the next attempt.
	for _, result := range results {
		if result.Err != nil {
			s.nak(msg)
			return
		}
	}

	if err := msg.Ack(); err != nil {
		s.logger.Warn("failed to ack message", zap.String("event", event.Name), zap.Error(err))
	}
}

func (s *Subscriber) nak(msg jetstream.Msg) {
	if err := msg.Nak(); err != nil {
		s.logger.Warn("failed to nak message", zap.String("subject", msg.Subject()), zap.Error(err))
	}
}

func (s *Subscriber) terminate(msg jetstream.Msg) {
	if err := msg.Term(); err != nil {
		s.logger.Warn("failed to terminate message", zap.String("subject", msg.Subject()), zap.Error(err))
	}
}

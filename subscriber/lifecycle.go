package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/history"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"
)

func NewLifecycleSubscriber(js jetstream.JetStream, tracker *history.Tracker, logger *zap.Logger, customizers ...func(*LifecycleOptions)) (*LifecycleSubscriber, error) {
	if js == nil {
		return nil, errors.New("jetstream is nil")
	}
	if tracker == nil {
		return nil, errors.New("tracker is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	options := NewLifecycleOptions()
	for _, customizer := range customizers {
		customizer(&options)
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}

	return &LifecycleSubscriber{
		js:        js,
		publisher: js,
		tracker:   tracker,
		logger:    logger,
		options:   options,
	}, nil
}

// commandPublisher is the publishing subset of [jetstream.JetStream].
type commandPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

func NewLifecycleOptions() LifecycleOptions {
	return LifecycleOptions{
		StreamName:   "PROGRESSION",
		ConsumerName: "progression-task-history",
		Identity: orchestration.Identity{
			Id:   orchestration.DefaultIdentityId,
			Name: orchestration.DefaultIdentityName,
		},
		AckWait:    30 * time.Second,
		MaxDeliver: 5,
		FetchSize:  10,
		FetchWait:  5 * time.Second,
	}
}

type LifecycleOptions struct {
	StreamName   string                 // Name of the stream the lifecycle signals are published to.
	ConsumerName string                 // Name of the durable consumer.
	Identity     orchestration.Identity // Identity attributed to the produced record-task commands.
	AckWait      time.Duration
	MaxDeliver   int
	FetchSize    int
	FetchWait    time.Duration
}

func (o LifecycleOptions) Validate() error {
	if o.StreamName == "" {
		return errors.New("option StreamName is empty")
	}
	if o.ConsumerName == "" {
		return errors.New("option ConsumerName is empty")
	}
	if err := o.Identity.Validate(); err != nil {
		return err
	}
	if o.FetchSize <= 0 {
		return fmt.Errorf("option FetchSize must be positive, but is %d", o.FetchSize)
	}
	return nil
}

// LifecycleSubscriber consumes the task lifecycle signals raised by the
// workflow engine's listeners, records them in the task history and produces
// one record-task command on the administrative command channel per recorded
// transition.
//
// Signals for one task ID are delivered sequentially by the engine, which is
// the per-task serialization the history log relies on.
type LifecycleSubscriber struct {
	js        jetstream.JetStream
	publisher commandPublisher
	tracker   *history.Tracker
	logger    *zap.Logger
	options   LifecycleOptions

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (s *LifecycleSubscriber) Start(ctx context.Context) error {
	stream, err := s.js.Stream(ctx, s.options.StreamName)
	if err != nil {
		return fmt.Errorf("failed to get stream %s: %v", s.options.StreamName, err)
	}

	consumer, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:        s.options.ConsumerName,
		FilterSubjects: []string{orchestration.EventTaskLifecycle},
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

	s.logger.Info("lifecycle subscriber started",
		zap.String("stream", s.options.StreamName),
		zap.String("consumer", s.options.ConsumerName),
	)
	return nil
}

func (s *LifecycleSubscriber) Shutdown() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *LifecycleSubscriber) consume(ctx context.Context, consumer jetstream.Consumer) {
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

			s.logger.Warn("failed to fetch lifecycle signals", zap.Error(err))
			continue
		}

		for msg := range msgs.Messages() {
			s.handleMessage(ctx, msg)
		}
	}
}

func (s *LifecycleSubscriber) handleMessage(ctx context.Context, msg jetstream.Msg) {
	var signal history.Signal
	if err := json.Unmarshal(msg.Data(), &signal); err != nil {
		s.logger.Warn("terminated malformed lifecycle signal", zap.Error(err))
		s.terminate(msg)
		return
	}

	recorded, err := s.tracker.Record(ctx, signal)
	if err != nil {
		s.logger.Error("failed to record lifecycle signal",
			zap.String("taskId", signal.TaskId),
			zap.Error(err),
		)
		s.nak(msg)
		return
	}

	if recorded {
		s.publishRecordTask(ctx, signal)
	}

	if err := msg.Ack(); err != nil {
		s.logger.Warn("failed to ack lifecycle signal", zap.String("taskId", signal.TaskId), zap.Error(err))
	}
}

// publishRecordTask produces the administrative record-task command. The
// command channel is advisory: a publish failure is logged, not redelivered,
// since the history entry is already appended and recording is not
// idempotent.
func (s *LifecycleSubscriber) publishRecordTask(ctx context.Context, signal history.Signal) {
	cmd := orchestration.RecordTaskCmd{
		TaskId:     signal.TaskId,
		EventType:  signal.Type.String(),
		At:         signal.At.UTC().Format(time.RFC3339),
		Details:    signal.Details,
		RecordedBy: s.options.Identity.Id,
	}

	data, err := json.Marshal(cmd)
	if err != nil {
		s.logger.Error("failed to marshal record-task command", zap.String("taskId", cmd.TaskId), zap.Error(err))
		return
	}

	if _, err := s.publisher.Publish(ctx, orchestration.SubjectRecordTask, data); err != nil {
		s.logger.Warn("failed to publish record-task command",
			zap.String("taskId", cmd.TaskId),
			zap.String("eventType", cmd.EventType),
			zap.Error(err),
		)
	}
}

func (s *LifecycleSubscriber) terminate(msg jetstream.Msg) {
	if err := msg.Term(); err != nil {
		s.logger.Warn("failed to terminate lifecycle signal", zap.Error(err))
	}
}

func (s *LifecycleSubscriber) nak(msg jetstream.Msg) {
	if err := msg.Nak(); err != nil {
		s.logger.Warn("failed to nak lifecycle signal", zap.Error(err))
	}
}

package subscriber

import (
	"context"
	"testing"
	"time"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/gateway"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMsg struct {
	subject string
	data    []byte
	headers nats.Header

	acked      bool
	naked      bool
	terminated bool
}

func (m *fakeMsg) Metadata() (*jetstream.MsgMetadata, error) {
	return &jetstream.MsgMetadata{Timestamp: time.Date(2024, 5, 16, 9, 0, 0, 0, time.UTC)}, nil
}

func (m *fakeMsg) Data() []byte         { return m.data }
func (m *fakeMsg) Headers() nats.Header { return m.headers }
func (m *fakeMsg) Subject() string      { return m.subject }
func (m *fakeMsg) Reply() string        { return "" }

func (m *fakeMsg) Ack() error {
	m.acked = true
	return nil
}

func (m *fakeMsg) DoubleAck(_ context.Context) error {
	m.acked = true
	return nil
}

func (m *fakeMsg) Nak() error {
	m.naked = true
	return nil
}

func (m *fakeMsg) NakWithDelay(_ time.Duration) error {
	m.naked = true
	return nil
}

func (m *fakeMsg) InProgress() error { return nil }

func (m *fakeMsg) Term() error {
	m.terminated = true
	return nil
}

func (m *fakeMsg) TermWithReason(_ string) error {
	m.terminated = true
	return nil
}

type fakeHandler struct {
	events  []orchestration.Event
	results []gateway.StartResult
	err     error
}

func (h *fakeHandler) Handle(_ context.Context, event orchestration.Event) ([]gateway.StartResult, error) {
	h.events = append(h.events, event)
	return h.results, h.err
}

func newTestSubscriber(t *testing.T, handler Handler) *Subscriber {
	t.Helper()

	return &Subscriber{
		handler: handler,
		logger:  zap.NewNop(),
		options: NewOptions(),
	}
}

func TestHandleMessage(t *testing.T) {
	assert := assert.New(t)

	t.Run("acks handled message", func(t *testing.T) {
		// given
		handler := fakeHandler{}
		subscriber := newTestSubscriber(t, &handler)

		msg := fakeMsg{
			subject: orchestration.EventHearingListed,
			data:    []byte(`{}`),
			headers: nats.Header{"Nats-Msg-Id": []string{"msg-1"}},
		}

		// when
		subscriber.handleMessage(context.Background(), &msg)

		// then
		assert.True(msg.acked)
		assert.False(msg.naked)

		require.Len(t, handler.events, 1)
		assert.Equal(orchestration.EventHearingListed, handler.events[0].Name)
		assert.Equal("msg-1", handler.events[0].CorrelationId)
		assert.False(handler.events[0].ReceivedAt.IsZero())
	})

	t.Run("terminates message when validation fails", func(t *testing.T) {
		// given
		handler := fakeHandler{err: orchestration.Error{Type: orchestration.ErrorValidation}}
		subscriber := newTestSubscriber(t, &handler)

		msg := fakeMsg{subject: orchestration.EventHearingListed, data: []byte(`invalid`)}

		// when
		subscriber.handleMessage(context.Background(), &msg)

		// then
		assert.True(msg.terminated)
		assert.False(msg.acked)
		assert.False(msg.naked)
	})

	t.Run("naks message when handler fails", func(t *testing.T) {
		// given
		handler := fakeHandler{err: orchestration.Error{Type: orchestration.ErrorUnavailable}}
		subscriber := newTestSubscriber(t, &handler)

		msg := fakeMsg{subject: orchestration.EventHearingListed, data: []byte(`{}`)}

		// when
		subscriber.handleMessage(context.Background(), &msg)

		// then
		assert.True(msg.naked)
		assert.False(msg.acked)
	})

	t.Run("naks message when a process start fails", func(t *testing.T) {
		// given
		handler := fakeHandler{results: []gateway.StartResult{
			{BusinessKey: "key-1", Outcome: gateway.OutcomeStarted},
			{BusinessKey: "key-2", Outcome: gateway.OutcomeStarted, Err: orchestration.Error{Type: orchestration.ErrorUnavailable}},
		}}
		subscriber := newTestSubscriber(t, &handler)

		msg := fakeMsg{subject: orchestration.EventHearingResulted, data: []byte(`{}`)}

		// when
		subscriber.handleMessage(context.Background(), &msg)

		// then
		assert.True(msg.naked)
		assert.False(msg.acked)
	})
}

func TestOptionsValidate(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(NewOptions().Validate())

	options := NewOptions()
	options.StreamName = ""
	assert.Error(options.Validate())

	options = NewOptions()
	options.ConsumerName = ""
	assert.Error(options.Validate())

	options = NewOptions()
	options.FilterSubjects = nil
	assert.Error(options.Validate())

	options = NewOptions()
	options.FetchSize = 0
	assert.Error(options.Validate())
}

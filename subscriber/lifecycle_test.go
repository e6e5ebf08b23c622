package subscriber

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/history"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/history/mem"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePublisher struct {
	subjects []string
	payloads [][]byte
}

func (p *fakePublisher) Publish(_ context.Context, subject string, payload []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, payload)
	return &jetstream.PubAck{}, nil
}

func newTestLifecycleSubscriber(t *testing.T) (*LifecycleSubscriber, *history.Tracker, *fakePublisher) {
	t.Helper()

	tracker, err := history.NewTracker(mem.New(), nil)
	require.NoError(t, err)

	publisher := fakePublisher{}

	return &LifecycleSubscriber{
		publisher: &publisher,
		tracker:   tracker,
		logger:    zap.NewNop(),
		options:   NewLifecycleOptions(),
	}, tracker, &publisher
}

func signalMsg(t *testing.T, signal history.Signal) *fakeMsg {
	t.Helper()

	data, err := json.Marshal(signal)
	require.NoError(t, err)

	return &fakeMsg{subject: orchestration.EventTaskLifecycle, data: data}
}

func TestLifecycleHandleMessage(t *testing.T) {
	assert := assert.New(t)

	t.Run("records signal and produces record-task command", func(t *testing.T) {
		// given
		subscriber, tracker, publisher := newTestLifecycleSubscriber(t)

		msg := signalMsg(t, history.Signal{
			TaskId: "task-1",
			Type:   history.EventCreated,
			At:     time.Date(2024, 5, 16, 9, 0, 0, 0, time.UTC),
		})

		// when
		subscriber.handleMessage(context.Background(), msg)

		// then
		assert.True(msg.acked)

		entries, err := tracker.History(context.Background(), "task-1")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(history.EventCreated, entries[0].Type)

		require.Len(t, publisher.subjects, 1)
		assert.Equal(orchestration.SubjectRecordTask, publisher.subjects[0])

		var cmd orchestration.RecordTaskCmd
		require.NoError(t, json.Unmarshal(publisher.payloads[0], &cmd))
		assert.Equal("task-1", cmd.TaskId)
		assert.Equal("CREATED", cmd.EventType)
		assert.Equal("2024-05-16T09:00:00Z", cmd.At)
		assert.Equal(orchestration.DefaultIdentityId, cmd.RecordedBy)
	})

	t.Run("terminates malformed signal", func(t *testing.T) {
		// given
		subscriber, _, publisher := newTestLifecycleSubscriber(t)

		msg := fakeMsg{subject: orchestration.EventTaskLifecycle, data: []byte(`not json`)}

		// when
		subscriber.handleMessage(context.Background(), &msg)

		// then
		assert.True(msg.terminated)
		assert.False(msg.acked)
		assert.Empty(publisher.subjects)
	})

	t.Run("dropped protocol violation is acked without a command", func(t *testing.T) {
		// given a signal for an unknown task, which the tracker drops
		subscriber, tracker, publisher := newTestLifecycleSubscriber(t)

		msg := signalMsg(t, history.Signal{
			TaskId: "task-1",
			Type:   history.EventCompleted,
			At:     time.Date(2024, 5, 16, 9, 0, 0, 0, time.UTC),
		})

		// when
		subscriber.handleMessage(context.Background(), msg)

		// then
		assert.True(msg.acked)
		assert.Empty(publisher.subjects)

		entries, err := tracker.History(context.Background(), "task-1")
		require.NoError(t, err)
		assert.Empty(entries)
	})
}

func TestLifecycleOptionsValidate(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(NewLifecycleOptions().Validate())

	options := NewLifecycleOptions()
	options.ConsumerName = ""
	assert.Error(options.Validate())

	options = NewLifecycleOptions()
	options.Identity = orchestration.Identity{}
	assert.Error(options.Validate())
}

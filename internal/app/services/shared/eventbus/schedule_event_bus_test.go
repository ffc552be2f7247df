package eventbus

import (
	"context"
	"kiskibreak-service/internal/app/contracts"
	"kiskibreak-service/internal/app/models"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/timetable"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return m.Called(ctx, key, value, exp).Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) Expire(ctx context.Context, key string, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) IncrementWithTTL(ctx context.Context, key string, exp time.Duration) (int, error) {
	args := m.Called(ctx, key, exp)
	return args.Int(0), args.Error(1)
}

func (m *MockRedisRepository) Publish(ctx context.Context, channel string, payload interface{}) error {
	return m.Called(ctx, channel, payload).Error(0)
}

func (m *MockRedisRepository) Subscribe(ctx context.Context, channel string) (contracts.Subscription, error) {
	args := m.Called(ctx, channel)
	sub, _ := args.Get(0).(contracts.Subscription)
	return sub, args.Error(1)
}

type fakeSubscription struct {
	messages chan string
	closed   chan struct{}
}

func newFakeSubscription() *fakeSubscription {
	return &fakeSubscription{messages: make(chan string, 4), closed: make(chan struct{})}
}

func (f *fakeSubscription) Messages() <-chan string { return f.messages }

func (f *fakeSubscription) Close() error {
	close(f.closed)
	return nil
}

func TestScheduleEventBus_PublishScheduleChanged(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRedisRepository)
	bus := NewScheduleEventBus(repo, zap.NewNop())
	fixed := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	bus.now = func() time.Time { return fixed }

	resolved := timetable.ResolvedSlot{Weekday: "Monday", Ordinal: 1}
	repo.On("Publish", ctx, constvars.RedisChannelScheduleEvents, models.ScheduleEvent{
		Type:       constvars.EventTypeScheduleChanged,
		UID:        "u1",
		Weekday:    "Monday",
		Ordinal:    1,
		OccurredAt: fixed,
	}).Return(nil)

	require.NoError(t, bus.PublishScheduleChanged(ctx, "u1", resolved))
	repo.AssertExpectations(t)
}

func TestScheduleEventBus_SubscribeAndStop(t *testing.T) {
	bus := NewScheduleEventBus(new(MockRedisRepository), zap.NewNop())

	events, stop := bus.Subscribe(context.Background())
	assert.Equal(t, 1, bus.ListenerCount())

	bus.Broadcast(models.ScheduleEvent{Type: constvars.EventTypeSlotTick})
	event := <-events
	assert.Equal(t, constvars.EventTypeSlotTick, event.Type)

	stop()
	stop()
	assert.Equal(t, 0, bus.ListenerCount())
	_, open := <-events
	assert.False(t, open)
}

func TestScheduleEventBus_SubscribeEndsWithContext(t *testing.T) {
	bus := NewScheduleEventBus(new(MockRedisRepository), zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	events, _ := bus.Subscribe(ctx)
	cancel()

	select {
	case _, open := <-events:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("listener channel not closed after cancel")
	}
}

func TestScheduleEventBus_RunForwardsRedisMessages(t *testing.T) {
	repo := new(MockRedisRepository)
	sub := newFakeSubscription()
	repo.On("Subscribe", mock.Anything, constvars.RedisChannelScheduleEvents).Return(sub, nil).Once()

	bus := NewScheduleEventBus(repo, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	events, _ := bus.Subscribe(ctx)

	done := make(chan struct{})
	go func() {
		bus.Run(ctx)
		close(done)
	}()

	sub.messages <- "not json"
	sub.messages <- `{"type":"schedule.changed","uid":"u7"}`

	select {
	case event := <-events:
		assert.Equal(t, "u7", event.UID)
	case <-time.After(time.Second):
		t.Fatal("event not forwarded")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
	<-sub.closed
}

package eventbus

import (
	"context"
	"kiskibreak-service/internal/app/contracts"
	"kiskibreak-service/internal/app/models"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/timetable"
	"kiskibreak-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	listenerBuffer      = 8
	resubscribeInterval = 5 * time.Second
)

// ScheduleEventBus publishes schedule events to redis and fans the single
// redis subscription out to in-process listeners.
type ScheduleEventBus struct {
	redis contracts.RedisRepository
	log   *zap.Logger
	now   func() time.Time

	mu        sync.Mutex
	nextID    int
	listeners map[int]chan models.ScheduleEvent
}

func NewScheduleEventBus(redisRepository contracts.RedisRepository, logger *zap.Logger) *ScheduleEventBus {
	return &ScheduleEventBus{
		redis:     redisRepository,
		log:       logger,
		now:       time.Now,
		listeners: make(map[int]chan models.ScheduleEvent),
	}
}

func (b *ScheduleEventBus) PublishScheduleChanged(ctx context.Context, uid string, resolved timetable.ResolvedSlot) error {
	return b.publish(ctx, models.ScheduleEvent{
		Type:       constvars.EventTypeScheduleChanged,
		UID:        uid,
		Weekday:    resolved.Weekday,
		Ordinal:    resolved.Ordinal,
		OccurredAt: b.now().UTC(),
	})
}

func (b *ScheduleEventBus) PublishSlotTick(ctx context.Context, resolved timetable.ResolvedSlot) error {
	return b.publish(ctx, models.ScheduleEvent{
		Type:       constvars.EventTypeSlotTick,
		Weekday:    resolved.Weekday,
		Ordinal:    resolved.Ordinal,
		OccurredAt: b.now().UTC(),
	})
}

func (b *ScheduleEventBus) publish(ctx context.Context, event models.ScheduleEvent) error {
	requestID := utils.RequestIDFromContext(ctx)
	err := b.redis.Publish(ctx, constvars.RedisChannelScheduleEvents, event)
	if err != nil {
		b.log.Error("ScheduleEventBus.publish failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, event.Type),
			zap.Error(err),
		)
		return err
	}
	b.log.Debug("ScheduleEventBus.publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
		zap.String(constvars.LoggingUIDKey, event.UID),
	)
	return nil
}

// Subscribe registers a listener. The channel is closed by the returned stop
// func or when ctx is done, whichever comes first.
func (b *ScheduleEventBus) Subscribe(ctx context.Context) (<-chan models.ScheduleEvent, func()) {
	ch := make(chan models.ScheduleEvent, listenerBuffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = ch
	b.mu.Unlock()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
			close(ch)
		})
	}

	go func() {
		<-ctx.Done()
		stop()
	}()

	return ch, stop
}

// Broadcast delivers event to every listener without blocking. A listener
// whose buffer is full misses the event and catches up on its next poll.
func (b *ScheduleEventBus) Broadcast(event models.ScheduleEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.listeners {
		select {
		case ch <- event:
		default:
		}
	}
}

func (b *ScheduleEventBus) ListenerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// Run holds the redis subscription open until ctx is done, resubscribing
// after connection failures.
func (b *ScheduleEventBus) Run(ctx context.Context) {
	for {
		if err := b.consume(ctx); err != nil {
			b.log.Warn("ScheduleEventBus.Run subscription lost",
				zap.String(constvars.LoggingRedisChannel, constvars.RedisChannelScheduleEvents),
				zap.Error(err),
			)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(resubscribeInterval):
		}
	}
}

func (b *ScheduleEventBus) consume(ctx context.Context) error {
	subscription, err := b.redis.Subscribe(ctx, constvars.RedisChannelScheduleEvents)
	if err != nil {
		return err
	}
	defer subscription.Close()

	b.log.Info("ScheduleEventBus subscribed",
		zap.String(constvars.LoggingRedisChannel, constvars.RedisChannelScheduleEvents),
	)

	messages := subscription.Messages()
	for {
		select {
		case <-ctx.Done():
			return nil
		case payload, ok := <-messages:
			if !ok {
				return nil
			}
			var event models.ScheduleEvent
			if err := json.Unmarshal([]byte(payload), &event); err != nil {
				b.log.Warn("ScheduleEventBus dropped malformed event", zap.Error(err))
				continue
			}
			b.Broadcast(event)
		}
	}
}

package contracts

import (
	"context"
	"kiskibreak-service/internal/app/models"
	"kiskibreak-service/internal/pkg/timetable"
)

type ScheduleEventBus interface {
	PublishScheduleChanged(ctx context.Context, uid string, resolved timetable.ResolvedSlot) error
	PublishSlotTick(ctx context.Context, resolved timetable.ResolvedSlot) error
	// Subscribe streams events until ctx is done or the returned stop func is
	// called.
	Subscribe(ctx context.Context) (<-chan models.ScheduleEvent, func())
}

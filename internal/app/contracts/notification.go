package contracts

import (
	"context"
	"kiskibreak-service/internal/app/models"
	"kiskibreak-service/internal/pkg/timetable"
)

type PushPublisher interface {
	Publish(ctx context.Context, message *models.PushMessage) error
}

type NotificationUsecase interface {
	// NotifyFriendFree pushes to uid's friends when uid went from BUSY to
	// FREE in the resolved slot. It returns how many messages were published.
	NotifyFriendFree(ctx context.Context, uid string, previous, current timetable.WeeklySchedule, resolved timetable.ResolvedSlot) (int, error)
}

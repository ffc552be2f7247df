package contracts

import (
	"context"
	"kiskibreak-service/internal/app/models"
	"kiskibreak-service/internal/pkg/dto/requests"
	"kiskibreak-service/internal/pkg/dto/responses"
)

type TimetableRepository interface {
	// FindByUID returns nil, nil when the user never saved a timetable.
	FindByUID(ctx context.Context, uid string) (*models.Timetable, error)
	Replace(ctx context.Context, timetable *models.Timetable) error
}

type TimetableUsecase interface {
	GetTimetable(ctx context.Context, uid string) (*responses.Timetable, error)
	SaveTimetable(ctx context.Context, uid string, request *requests.SaveTimetable) (*responses.Timetable, error)
	GetFriendToday(ctx context.Context, viewerUID, friendUID string) (*responses.FriendToday, error)
}

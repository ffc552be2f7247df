package contracts

import (
	"context"
	"kiskibreak-service/internal/app/models"
	"kiskibreak-service/internal/pkg/dto/responses"
	"time"
)

type AvailabilityUsecase interface {
	GetFreeFriends(ctx context.Context, viewerUID string) (*responses.FreeFriends, error)
	GetGroupAvailability(ctx context.Context, viewerUID, groupID string) (*responses.GroupAvailability, error)
	// WatchFreeFriends keeps re-scanning the viewer's friends until ctx is
	// done. Every scan result is sent on the returned channel, which is
	// closed once watching stops.
	WatchFreeFriends(ctx context.Context, viewerUID string) (<-chan *responses.FreeFriends, error)
}

type RosterScanner interface {
	ScanFree(ctx context.Context, now time.Time, roster []models.Person) []models.Person
	ScanRoster(ctx context.Context, now time.Time, roster []models.Person) []models.MemberAvailability
}

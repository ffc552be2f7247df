package contracts

import (
	"context"
	"kiskibreak-service/internal/pkg/dto/requests"
	"kiskibreak-service/internal/pkg/dto/responses"
)

type RoomUsecase interface {
	ListRooms(ctx context.Context) *responses.Rooms
	GetVacantNow(ctx context.Context) *responses.VacantRooms
	GetVacant(ctx context.Context, query *requests.VacantRoomsQuery) (*responses.VacantRooms, error)
	GetOccupancy(ctx context.Context, room string) (*responses.RoomOccupancy, error)
	Reload(ctx context.Context) (*responses.Rooms, error)
}

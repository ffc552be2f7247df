package rooms

import (
	"context"
	"kiskibreak-service/internal/app/config"
	"kiskibreak-service/internal/app/contracts"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/dto/requests"
	"kiskibreak-service/internal/pkg/dto/responses"
	"kiskibreak-service/internal/pkg/exceptions"
	"kiskibreak-service/internal/pkg/rooms"
	"kiskibreak-service/internal/pkg/timetable"
	"kiskibreak-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

type roomUsecase struct {
	Storage        contracts.ObjectStorage
	InternalConfig *config.InternalConfig
	Location       *time.Location
	Log            *zap.Logger
	now            func() time.Time

	mu        sync.RWMutex
	directory *rooms.Directory
}

// NewRoomUsecase loads the occupancy export once. A missing object leaves an
// empty directory; a broken one is an error.
func NewRoomUsecase(
	ctx context.Context,
	storage contracts.ObjectStorage,
	internalConfig *config.InternalConfig,
	location *time.Location,
	logger *zap.Logger,
) (contracts.RoomUsecase, error) {
	uc := &roomUsecase{
		Storage:        storage,
		InternalConfig: internalConfig,
		Location:       location,
		Log:            logger,
		now:            time.Now,
		directory:      rooms.Empty(),
	}
	if _, err := uc.Reload(ctx); err != nil {
		return nil, err
	}
	return uc, nil
}

func (uc *roomUsecase) current() *rooms.Directory {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.directory
}

func (uc *roomUsecase) Reload(ctx context.Context) (*responses.Rooms, error) {
	requestID := utils.RequestIDFromContext(ctx)
	objectName := uc.InternalConfig.Minio.RoomsObject
	uc.Log.Info("roomUsecase.Reload called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectKey, objectName),
	)

	var export rooms.Export
	found, err := uc.Storage.GetJSON(ctx, objectName, &export)
	if err != nil {
		uc.Log.Error("roomUsecase.Reload error reading occupancy export",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	directory := rooms.Empty()
	if found {
		directory, err = rooms.NewDirectory(export)
		if err != nil {
			uc.Log.Error("roomUsecase.Reload invalid occupancy export",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrRoomDirectoryInvalid(err)
		}
	} else {
		uc.Log.Warn("roomUsecase.Reload occupancy export not found, room finder is empty",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectKey, objectName),
		)
	}

	uc.mu.Lock()
	uc.directory = directory
	uc.mu.Unlock()

	uc.Log.Info("roomUsecase.Reload succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingRoomCountKey, directory.Len()),
	)
	return toRoomsResponse(directory), nil
}

func toRoomsResponse(directory *rooms.Directory) *responses.Rooms {
	list := directory.Rooms()
	return &responses.Rooms{Total: len(list), Rooms: list}
}

func (uc *roomUsecase) ListRooms(ctx context.Context) *responses.Rooms {
	return toRoomsResponse(uc.current())
}

func (uc *roomUsecase) GetVacantNow(ctx context.Context) *responses.VacantRooms {
	resolved := timetable.ResolveIn(uc.now(), uc.Location)
	vacant := uc.current().VacantAt(resolved)

	result := &responses.VacantRooms{
		Weekday: resolved.Weekday,
		Label:   resolved.Label(),
		Total:   len(vacant),
		Vacant:  vacant,
	}
	if slot, ok := resolved.Slot(); ok {
		dto := responses.NewSlot(slot)
		result.Slot = &dto
	}
	return result
}

func (uc *roomUsecase) GetVacant(ctx context.Context, query *requests.VacantRoomsQuery) (*responses.VacantRooms, error) {
	requestID := utils.RequestIDFromContext(ctx)
	uc.Log.Info("roomUsecase.GetVacant called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWeekdayKey, query.Day),
		zap.Int(constvars.LoggingSlotKey, query.Slot),
	)

	day, ok := timetable.ParseWeekday(query.Day)
	if !ok {
		return nil, exceptions.ErrURLParamValidation(rooms.ErrUnknownDay, constvars.URLQueryParamDay)
	}
	slot, ok := timetable.SlotByOrdinal(query.Slot)
	if !ok {
		return nil, exceptions.ErrURLParamValidation(rooms.ErrUnknownSlot, constvars.URLQueryParamSlot)
	}

	vacant, err := uc.current().Vacant(day, slot.Ordinal)
	if err != nil {
		return nil, exceptions.ErrURLParamValidation(err, constvars.URLQueryParamSlot)
	}

	dto := responses.NewSlot(slot)
	return &responses.VacantRooms{
		Weekday: day.String(),
		Slot:    &dto,
		Label:   slot.Label(),
		Total:   len(vacant),
		Vacant:  vacant,
	}, nil
}

func (uc *roomUsecase) GetOccupancy(ctx context.Context, room string) (*responses.RoomOccupancy, error) {
	schedule, ok := uc.current().Occupancy(room)
	if !ok {
		return nil, exceptions.ErrRoomNotExist(nil, room)
	}
	return &responses.RoomOccupancy{Room: room, Schedule: schedule}, nil
}

package timetables

import (
	"context"
	"fmt"
	"kiskibreak-service/internal/app/config"
	"kiskibreak-service/internal/app/contracts"
	"kiskibreak-service/internal/app/models"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/dto/requests"
	"kiskibreak-service/internal/pkg/dto/responses"
	"kiskibreak-service/internal/pkg/exceptions"
	"kiskibreak-service/internal/pkg/timetable"
	"kiskibreak-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

type timetableUsecase struct {
	TimetableRepository contracts.TimetableRepository
	FriendRepository    contracts.FriendRepository
	UserRepository      contracts.UserRepository
	ArchiveStorage      contracts.ObjectStorage
	EventBus            contracts.ScheduleEventBus
	NotificationUsecase contracts.NotificationUsecase
	InternalConfig      *config.InternalConfig
	Location            *time.Location
	Log                 *zap.Logger
	now                 func() time.Time

	// background tracks post-save side effects still running.
	background sync.WaitGroup
}

// TimetableUsecase exposes Wait so shutdown can drain post-save work.
type TimetableUsecase interface {
	contracts.TimetableUsecase
	Wait()
}

func NewTimetableUsecase(
	timetableRepository contracts.TimetableRepository,
	friendRepository contracts.FriendRepository,
	userRepository contracts.UserRepository,
	archiveStorage contracts.ObjectStorage,
	eventBus contracts.ScheduleEventBus,
	notificationUsecase contracts.NotificationUsecase,
	internalConfig *config.InternalConfig,
	location *time.Location,
	logger *zap.Logger,
) TimetableUsecase {
	return &timetableUsecase{
		TimetableRepository: timetableRepository,
		FriendRepository:    friendRepository,
		UserRepository:      userRepository,
		ArchiveStorage:      archiveStorage,
		EventBus:            eventBus,
		NotificationUsecase: notificationUsecase,
		InternalConfig:      internalConfig,
		Location:            location,
		Log:                 logger,
		now:                 time.Now,
	}
}

func (uc *timetableUsecase) GetTimetable(ctx context.Context, uid string) (*responses.Timetable, error) {
	requestID := utils.RequestIDFromContext(ctx)
	uc.Log.Info("timetableUsecase.GetTimetable called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUIDKey, uid),
	)

	document, err := uc.TimetableRepository.FindByUID(ctx, uid)
	if err != nil {
		uc.Log.Error("timetableUsecase.GetTimetable error fetching timetable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return toTimetableResponse(uid, document), nil
}

func toTimetableResponse(uid string, document *models.Timetable) *responses.Timetable {
	grid := timetable.GridFrom(models.ScheduleOf(document))
	response := &responses.Timetable{
		UID:       uid,
		Schedule:  grid.Schedule(),
		FreeCount: grid.FreeCount(),
		Saved:     document != nil,
	}
	if document != nil && !document.UpdatedAt.IsZero() {
		updatedAt := document.UpdatedAt
		response.UpdatedAt = &updatedAt
	}
	return response
}

func (uc *timetableUsecase) SaveTimetable(ctx context.Context, uid string, request *requests.SaveTimetable) (*responses.Timetable, error) {
	requestID := utils.RequestIDFromContext(ctx)
	uc.Log.Info("timetableUsecase.SaveTimetable called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUIDKey, uid),
	)

	schedule := request.WeeklySchedule()
	if err := schedule.Validate(); err != nil {
		return nil, exceptions.ErrScheduleValidation(err)
	}

	previous, err := uc.TimetableRepository.FindByUID(ctx, uid)
	if err != nil {
		uc.Log.Error("timetableUsecase.SaveTimetable error fetching previous timetable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	now := uc.now()
	document := &models.Timetable{
		UID:       uid,
		Schedule:  timetable.GridFrom(schedule).Schedule(),
		UpdatedAt: now.UTC().Truncate(time.Millisecond),
	}
	if err := uc.TimetableRepository.Replace(ctx, document); err != nil {
		uc.Log.Error("timetableUsecase.SaveTimetable error replacing timetable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	resolved := timetable.ResolveIn(now, uc.Location)
	uc.background.Add(1)
	go func() {
		defer uc.background.Done()
		uc.afterSave(context.WithoutCancel(ctx), previous, document, resolved)
	}()

	uc.Log.Info("timetableUsecase.SaveTimetable succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUIDKey, uid),
	)
	return toTimetableResponse(uid, document), nil
}

// afterSave runs the best-effort side effects of a save. Failures are logged
// and never reach the caller.
func (uc *timetableUsecase) afterSave(ctx context.Context, previous, saved *models.Timetable, resolved timetable.ResolvedSlot) {
	requestID := utils.RequestIDFromContext(ctx)

	if uc.InternalConfig.Minio.ArchiveEnabled && previous != nil {
		objectName := archiveObjectName(previous)
		if err := uc.ArchiveStorage.PutJSON(ctx, objectName, previous); err != nil {
			uc.Log.Warn("timetableUsecase.afterSave archive failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingObjectKey, objectName),
				zap.Error(err),
			)
		}
	}

	if err := uc.EventBus.PublishScheduleChanged(ctx, saved.UID, resolved); err != nil {
		uc.Log.Warn("timetableUsecase.afterSave publish failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	notified, err := uc.NotificationUsecase.NotifyFriendFree(ctx, saved.UID, models.ScheduleOf(previous), saved.Schedule, resolved)
	if err != nil {
		uc.Log.Warn("timetableUsecase.afterSave friend notification incomplete",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingNotifiedKey, notified),
			zap.Error(err),
		)
	}
}

func archiveObjectName(previous *models.Timetable) string {
	return fmt.Sprintf("%s/%s/%s.json",
		constvars.MinioTimetableFolder,
		previous.UID,
		previous.UpdatedAt.UTC().Format("20060102T150405.000Z"),
	)
}

func (uc *timetableUsecase) Wait() {
	uc.background.Wait()
}

func (uc *timetableUsecase) GetFriendToday(ctx context.Context, viewerUID, friendUID string) (*responses.FriendToday, error) {
	requestID := utils.RequestIDFromContext(ctx)
	uc.Log.Info("timetableUsecase.GetFriendToday called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingViewerUIDKey, viewerUID),
		zap.String(constvars.LoggingFriendUIDKey, friendUID),
	)

	if viewerUID != friendUID {
		isFriend, err := uc.FriendRepository.IsFriend(ctx, viewerUID, friendUID)
		if err != nil {
			return nil, err
		}
		if !isFriend {
			return nil, exceptions.ErrNotFriends(nil, viewerUID, friendUID)
		}
	}

	friend, err := uc.UserRepository.FindByID(ctx, friendUID)
	if err != nil {
		return nil, err
	}

	document, err := uc.TimetableRepository.FindByUID(ctx, friendUID)
	if err != nil {
		return nil, err
	}

	_, resolved := responses.CurrentSlotAt(uc.now(), uc.Location)
	response := &responses.FriendToday{
		UID:       friendUID,
		Name:      friend.DisplayName(constvars.UnknownMemberName),
		Weekday:   resolved.Weekday,
		IsWeekend: resolved.IsWeekend,
		Saved:     document != nil,
		Cells:     []responses.DayCell{},
	}
	if resolved.IsWeekend || document == nil {
		return response, nil
	}

	day := models.ScheduleOf(document).Day(resolved.Weekday)
	for _, slot := range timetable.Slots() {
		status, ok := day[slot.Ordinal]
		if !ok {
			continue
		}
		response.Cells = append(response.Cells, responses.DayCell{
			Slot:   responses.NewSlot(slot),
			Status: string(status),
		})
	}
	return response, nil
}

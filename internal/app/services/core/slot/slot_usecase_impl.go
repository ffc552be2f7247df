package slot

import (
	"context"
	"kiskibreak-service/internal/app/contracts"
	"kiskibreak-service/internal/app/models"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/dto/responses"
	"kiskibreak-service/internal/pkg/timetable"
	"kiskibreak-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type slotUsecase struct {
	TimetableRepository contracts.TimetableRepository
	Location            *time.Location
	Log                 *zap.Logger
	now                 func() time.Time
}

func NewSlotUsecase(
	timetableRepository contracts.TimetableRepository,
	location *time.Location,
	logger *zap.Logger,
) contracts.SlotUsecase {
	return &slotUsecase{
		TimetableRepository: timetableRepository,
		Location:            location,
		Log:                 logger,
		now:                 time.Now,
	}
}

func (uc *slotUsecase) GetSlots(ctx context.Context) []responses.Slot {
	slots := timetable.Slots()
	result := make([]responses.Slot, 0, len(slots))
	for _, slot := range slots {
		result = append(result, responses.NewSlot(slot))
	}
	return result
}

// GetCurrentSlot leaves MyStatus nil unless a slot is in progress.
func (uc *slotUsecase) GetCurrentSlot(ctx context.Context, uid string) (*responses.CurrentSlot, error) {
	requestID := utils.RequestIDFromContext(ctx)
	uc.Log.Info("slotUsecase.GetCurrentSlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUIDKey, uid),
	)

	current, resolved := responses.CurrentSlotAt(uc.now(), uc.Location)
	if !resolved.InSlot() {
		return current, nil
	}

	document, err := uc.TimetableRepository.FindByUID(ctx, uid)
	if err != nil {
		uc.Log.Error("slotUsecase.GetCurrentSlot error fetching timetable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	status := string(timetable.Evaluate(models.ScheduleOf(document), resolved))
	current.MyStatus = &status

	uc.Log.Info("slotUsecase.GetCurrentSlot succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPhaseKey, current.Phase),
		zap.Int(constvars.LoggingSlotKey, resolved.Ordinal),
	)
	return current, nil
}

package contracts

import (
	"context"
	"kiskibreak-service/internal/pkg/dto/responses"
)

type SlotUsecase interface {
	GetSlots(ctx context.Context) []responses.Slot
	GetCurrentSlot(ctx context.Context, uid string) (*responses.CurrentSlot, error)
}

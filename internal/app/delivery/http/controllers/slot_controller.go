package controllers

import (
	"context"
	"kiskibreak-service/internal/app/contracts"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type SlotController struct {
	Log         *zap.Logger
	SlotUsecase contracts.SlotUsecase
}

func NewSlotController(logger *zap.Logger, slotUsecase contracts.SlotUsecase) *SlotController {
	return &SlotController{
		Log:         logger,
		SlotUsecase: slotUsecase,
	}
}

func (ctrl *SlotController) GetSlots(w http.ResponseWriter, r *http.Request) {
	result := ctrl.SlotUsecase.GetSlots(r.Context())
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSlotsSuccessMessage, result)
}

func (ctrl *SlotController) GetCurrentSlot(w http.ResponseWriter, r *http.Request) {
	requestID := utils.RequestIDFromContext(r.Context())
	uid := utils.UIDFromContext(r.Context())
	ctrl.Log.Info("SlotController.GetCurrentSlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.SlotUsecase.GetCurrentSlot(ctx, uid)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCurrentSlotSuccessMessage, result)
}

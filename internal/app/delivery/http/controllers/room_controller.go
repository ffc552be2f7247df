package controllers

import (
	"context"
	"kiskibreak-service/internal/app/contracts"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/dto/requests"
	"kiskibreak-service/internal/pkg/exceptions"
	"kiskibreak-service/internal/pkg/utils"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RoomController struct {
	Log         *zap.Logger
	RoomUsecase contracts.RoomUsecase
}

func NewRoomController(logger *zap.Logger, roomUsecase contracts.RoomUsecase) *RoomController {
	return &RoomController{
		Log:         logger,
		RoomUsecase: roomUsecase,
	}
}

func (ctrl *RoomController) ListRooms(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetRoomsSuccessMessage, ctrl.RoomUsecase.ListRooms(r.Context()))
}

func (ctrl *RoomController) GetVacantNow(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetVacantRoomsSuccessMessage, ctrl.RoomUsecase.GetVacantNow(r.Context()))
}

func (ctrl *RoomController) GetVacant(w http.ResponseWriter, r *http.Request) {
	requestID := utils.RequestIDFromContext(r.Context())
	ctrl.Log.Info("RoomController.GetVacant called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	query := r.URL.Query()
	slot, err := strconv.Atoi(query.Get(constvars.URLQueryParamSlot))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLQueryParamSlot))
		return
	}
	request := &requests.VacantRoomsQuery{
		Day:  query.Get(constvars.URLQueryParamDay),
		Slot: slot,
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	result, err := ctrl.RoomUsecase.GetVacant(r.Context(), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetVacantRoomsSuccessMessage, result)
}

func (ctrl *RoomController) GetOccupancy(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, constvars.URLParamRoom)

	result, err := ctrl.RoomUsecase.GetOccupancy(r.Context(), room)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetRoomOccupancySuccessMessage, result)
}

func (ctrl *RoomController) Reload(w http.ResponseWriter, r *http.Request) {
	requestID := utils.RequestIDFromContext(r.Context())
	ctrl.Log.Info("RoomController.Reload called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := ctrl.RoomUsecase.Reload(ctx)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReloadRoomDirectorySuccessMessage, result)
}

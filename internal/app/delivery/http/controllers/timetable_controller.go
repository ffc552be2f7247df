package controllers

import (
	"context"
	"kiskibreak-service/internal/app/contracts"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/dto/requests"
	"kiskibreak-service/internal/pkg/exceptions"
	"kiskibreak-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type TimetableController struct {
	Log              *zap.Logger
	TimetableUsecase contracts.TimetableUsecase
}

func NewTimetableController(logger *zap.Logger, timetableUsecase contracts.TimetableUsecase) *TimetableController {
	return &TimetableController{
		Log:              logger,
		TimetableUsecase: timetableUsecase,
	}
}

func (ctrl *TimetableController) GetMyTimetable(w http.ResponseWriter, r *http.Request) {
	requestID := utils.RequestIDFromContext(r.Context())
	ctrl.Log.Info("TimetableController.GetMyTimetable called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.TimetableUsecase.GetTimetable(ctx, utils.UIDFromContext(r.Context()))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetTimetableSuccessMessage, result)
}

func (ctrl *TimetableController) SaveMyTimetable(w http.ResponseWriter, r *http.Request) {
	requestID := utils.RequestIDFromContext(r.Context())
	ctrl.Log.Info("TimetableController.SaveMyTimetable called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.SaveTimetable)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("TimetableController.SaveMyTimetable error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("TimetableController.SaveMyTimetable validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.TimetableUsecase.SaveTimetable(ctx, utils.UIDFromContext(r.Context()), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SaveTimetableSuccessMessage, result)
}

func (ctrl *TimetableController) GetFriendToday(w http.ResponseWriter, r *http.Request) {
	requestID := utils.RequestIDFromContext(r.Context())
	friendUID := chi.URLParam(r, constvars.URLParamUID)
	ctrl.Log.Info("TimetableController.GetFriendToday called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFriendUIDKey, friendUID),
	)

	if friendUID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamUID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.TimetableUsecase.GetFriendToday(ctx, utils.UIDFromContext(r.Context()), friendUID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetFriendTodaySuccessMessage, result)
}

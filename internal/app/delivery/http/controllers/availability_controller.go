package controllers

import (
	"context"
	"fmt"
	"kiskibreak-service/internal/app/contracts"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/exceptions"
	"kiskibreak-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const streamHeartbeat = 15 * time.Second

type AvailabilityController struct {
	Log                 *zap.Logger
	AvailabilityUsecase contracts.AvailabilityUsecase
	heartbeat           time.Duration
	closing             chan struct{}
	closeOnce           sync.Once
}

func NewAvailabilityController(logger *zap.Logger, availabilityUsecase contracts.AvailabilityUsecase) *AvailabilityController {
	return &AvailabilityController{
		Log:                 logger,
		AvailabilityUsecase: availabilityUsecase,
		heartbeat:           streamHeartbeat,
		closing:             make(chan struct{}),
	}
}

// Close ends every open stream. The server calls it when shutting down since
// streams never finish on their own.
func (ctrl *AvailabilityController) Close() {
	ctrl.closeOnce.Do(func() { close(ctrl.closing) })
}

func (ctrl *AvailabilityController) GetFreeFriends(w http.ResponseWriter, r *http.Request) {
	requestID := utils.RequestIDFromContext(r.Context())
	ctrl.Log.Info("AvailabilityController.GetFreeFriends called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.AvailabilityUsecase.GetFreeFriends(ctx, utils.UIDFromContext(r.Context()))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetFreeFriendsSuccessMessage, result)
}

func (ctrl *AvailabilityController) GetGroupMembers(w http.ResponseWriter, r *http.Request) {
	requestID := utils.RequestIDFromContext(r.Context())
	groupID := chi.URLParam(r, constvars.URLParamGroupID)
	ctrl.Log.Info("AvailabilityController.GetGroupMembers called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingGroupIDKey, groupID),
	)

	if groupID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamGroupID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.AvailabilityUsecase.GetGroupAvailability(ctx, utils.UIDFromContext(r.Context()), groupID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetGroupMembersSuccessMessage, result)
}

// StreamFreeFriends writes every re-evaluation of the viewer's free friends as
// a server-sent event until the client goes away.
func (ctrl *AvailabilityController) StreamFreeFriends(w http.ResponseWriter, r *http.Request) {
	requestID := utils.RequestIDFromContext(r.Context())
	ctrl.Log.Info("AvailabilityController.StreamFreeFriends called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrStreamingUnsupported(nil))
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	updates, err := ctrl.AvailabilityUsecase.WatchFreeFriends(ctx, utils.UIDFromContext(r.Context()))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	header := w.Header()
	header.Set(constvars.HeaderContentType, constvars.MIMETextEventStream)
	header.Set(constvars.HeaderCacheControl, "no-cache")
	header.Set(constvars.HeaderConnection, "keep-alive")
	header.Set(constvars.HeaderXAccelBuffer, "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(ctrl.heartbeat)
	defer heartbeat.Stop()

	sent := 0
	for {
		select {
		case <-ctrl.closing:
			return
		case <-ctx.Done():
			ctrl.Log.Info("AvailabilityController.StreamFreeFriends client disconnected",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int(constvars.LoggingStreamTickKey, sent),
			)
			return
		case result, open := <-updates:
			if !open {
				return
			}
			payload, err := json.Marshal(result)
			if err != nil {
				ctrl.Log.Error("AvailabilityController.StreamFreeFriends error marshaling update",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(err),
				)
				continue
			}
			sent++
			if _, err := fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", sent, constvars.SSEEventFreeFriends, payload); err != nil {
				return
			}
			flusher.Flush()
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

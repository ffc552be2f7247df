package controllers

import (
	"context"
	"errors"
	"kiskibreak-service/internal/pkg/exceptions"
	"kiskibreak-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}

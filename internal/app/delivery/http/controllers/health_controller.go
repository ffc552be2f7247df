package controllers

import (
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/utils"
	"net/http"
)

type HealthController struct {
	Version string
	Tag     string
}

func NewHealthController(version, tag string) *HealthController {
	return &HealthController{Version: version, Tag: tag}
}

func (ctrl *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, map[string]string{
		"version": ctrl.Version,
		"tag":     ctrl.Tag,
	})
}

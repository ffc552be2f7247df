package routers

import (
	"kiskibreak-service/internal/app/delivery/http/controllers"
	"kiskibreak-service/internal/app/delivery/http/middlewares"
	"kiskibreak-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachRoomRoutes(router chi.Router, middlewares *middlewares.Middlewares, roomController *controllers.RoomController) {
	router.Use(middlewares.Authenticate)
	router.Get("/", roomController.ListRooms)
	router.Get("/vacant/now", roomController.GetVacantNow)
	router.Get("/vacant", roomController.GetVacant)
	router.Get("/{room}", roomController.GetOccupancy)
	router.With(
		middlewares.LimitAction(constvars.LimitActionRoomReload, middlewares.InternalConfig.Limiter.RoomReloads),
	).Post("/reload", roomController.Reload)
}

package routers

import (
	"kiskibreak-service/internal/app/delivery/http/controllers"
	"kiskibreak-service/internal/app/delivery/http/middlewares"
	"kiskibreak-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAvailabilityRoutes(router chi.Router, middlewares *middlewares.Middlewares, availabilityController *controllers.AvailabilityController) {
	router.Use(middlewares.Authenticate)
	router.Get("/friends/free", availabilityController.GetFreeFriends)
	router.With(
		middlewares.LimitAction(constvars.LimitActionStream, middlewares.InternalConfig.Limiter.StreamOpens),
	).Get("/friends/stream", availabilityController.StreamFreeFriends)
	router.Get("/groups/{groupID}/members", availabilityController.GetGroupMembers)
}

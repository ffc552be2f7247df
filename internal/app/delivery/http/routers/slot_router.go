package routers

import (
	"kiskibreak-service/internal/app/delivery/http/controllers"
	"kiskibreak-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachSlotRoutes(router chi.Router, middlewares *middlewares.Middlewares, slotController *controllers.SlotController) {
	router.Get("/", slotController.GetSlots)
	router.With(middlewares.Authenticate).Get("/current", slotController.GetCurrentSlot)
}

package routers

import (
	"kiskibreak-service/internal/app/delivery/http/controllers"
	"kiskibreak-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachTimetableRoutes(router chi.Router, middlewares *middlewares.Middlewares, timetableController *controllers.TimetableController) {
	router.Use(middlewares.Authenticate)
	router.Get("/me", timetableController.GetMyTimetable)
	router.Put("/me", timetableController.SaveMyTimetable)
	router.Get("/{uid}/today", timetableController.GetFriendToday)
}

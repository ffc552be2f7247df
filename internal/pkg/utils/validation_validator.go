package utils

import (
	"kiskibreak-service/internal/pkg/timetable"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("weekday", validateWeekday)
	validate.RegisterValidation("slot_key", validateSlotKey)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateWeekday(fl validator.FieldLevel) bool {
	return timetable.IsClassDay(fl.Field().String())
}

func validateSlotKey(fl validator.FieldLevel) bool {
	_, ok := timetable.ParseOrdinalKey(fl.Field().String())
	return ok
}

package requests

type VacantRoomsQuery struct {
	Day  string `validate:"required"`
	Slot int    `validate:"gte=1,lte=8"`
}

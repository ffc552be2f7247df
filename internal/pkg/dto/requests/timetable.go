package requests

import "kiskibreak-service/internal/pkg/timetable"

// SaveTimetable replaces the caller's whole weekly schedule. Cells left out
// are stored as BUSY.
type SaveTimetable struct {
	Schedule map[string]map[string]string `json:"schedule" validate:"required,max=5,dive,keys,weekday,endkeys,max=8,dive,keys,slot_key,endkeys,oneof=FREE BUSY"`
}

func (r *SaveTimetable) WeeklySchedule() timetable.WeeklySchedule {
	return timetable.WeeklySchedule(r.Schedule)
}

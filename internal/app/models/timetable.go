package models

import (
	"kiskibreak-service/internal/pkg/timetable"
	"time"
)

// Timetable is the one document per user in the timetables collection. Saves
// replace the whole document.
type Timetable struct {
	ID        string                   `bson:"_id" json:"-"`
	UID       string                   `bson:"uid" json:"uid"`
	Schedule  timetable.WeeklySchedule `bson:"schedule" json:"schedule"`
	UpdatedAt time.Time                `bson:"updatedAt" json:"updatedAt"`
}

// ScheduleOf returns nil for a missing document, which evaluates as never saved.
func ScheduleOf(t *Timetable) timetable.WeeklySchedule {
	if t == nil {
		return nil
	}
	if t.Schedule == nil {
		return timetable.WeeklySchedule{}
	}
	return t.Schedule
}

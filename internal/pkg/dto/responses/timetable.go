package responses

import (
	"kiskibreak-service/internal/pkg/timetable"
	"time"
)

type Timetable struct {
	UID       string                   `json:"uid"`
	Schedule  timetable.WeeklySchedule `json:"schedule"`
	FreeCount int                      `json:"freeCount"`
	Saved     bool                     `json:"saved"`
	UpdatedAt *time.Time               `json:"updatedAt,omitempty"`
}

type DayCell struct {
	Slot   Slot   `json:"slot"`
	Status string `json:"status"`
}

// FriendToday is a friend's timetable restricted to the current weekday.
type FriendToday struct {
	UID       string    `json:"uid"`
	Name      string    `json:"name"`
	Weekday   string    `json:"weekday"`
	IsWeekend bool      `json:"isWeekend"`
	Saved     bool      `json:"saved"`
	Cells     []DayCell `json:"cells"`
}

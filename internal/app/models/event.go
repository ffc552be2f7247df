package models

import "time"

// ScheduleEvent travels on the redis schedule-events channel. UID is empty for
// slot ticks.
type ScheduleEvent struct {
	Type       string    `json:"type"`
	UID        string    `json:"uid,omitempty"`
	Weekday    string    `json:"weekday,omitempty"`
	Ordinal    int       `json:"ordinal,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// PushMessage is handed to the push delivery consumer through rabbitmq.
type PushMessage struct {
	Token        string            `json:"token"`
	Notification PushNotification  `json:"notification"`
	Data         map[string]string `json:"data"`
}

type PushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

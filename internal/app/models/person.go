package models

import "kiskibreak-service/internal/pkg/timetable"

// Person is a roster entry: a friend or a group member.
type Person struct {
	UID   string
	Name  string
	Email string
}

type MemberAvailability struct {
	Person
	Status timetable.Status
}

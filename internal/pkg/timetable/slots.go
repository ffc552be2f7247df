package timetable

import (
	"fmt"
	"strconv"
	"time"
)

// SlotCount is the number of class periods in a day.
const SlotCount = 8

// TimeSlot is one class period. The interval is half-open: [Start, End).
type TimeSlot struct {
	Ordinal int
	Start   Clock
	End     Clock
}

// Label renders the slot as "HH:MM - HH:MM".
func (s TimeSlot) Label() string {
	return fmt.Sprintf("%s - %s", s.Start, s.End)
}

func (s TimeSlot) contains(minute int) bool {
	return minute >= s.Start.Minutes() && minute < s.End.Minutes()
}

// The gaps 11:10-11:20 and 13:00-13:05 are real breaks.
var slotTable = [SlotCount]TimeSlot{
	{Ordinal: 1, Start: Clock{9, 30}, End: Clock{10, 20}},
	{Ordinal: 2, Start: Clock{10, 20}, End: Clock{11, 10}},
	{Ordinal: 3, Start: Clock{11, 20}, End: Clock{12, 10}},
	{Ordinal: 4, Start: Clock{12, 10}, End: Clock{13, 0}},
	{Ordinal: 5, Start: Clock{13, 5}, End: Clock{13, 55}},
	{Ordinal: 6, Start: Clock{13, 55}, End: Clock{14, 45}},
	{Ordinal: 7, Start: Clock{14, 45}, End: Clock{15, 35}},
	{Ordinal: 8, Start: Clock{15, 35}, End: Clock{16, 25}},
}

var classDays = [...]time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}

// Slots returns a copy of the slot table in ascending order.
func Slots() []TimeSlot {
	out := make([]TimeSlot, SlotCount)
	copy(out, slotTable[:])
	return out
}

func SlotByOrdinal(ordinal int) (TimeSlot, bool) {
	if ordinal < 1 || ordinal > SlotCount {
		return TimeSlot{}, false
	}
	return slotTable[ordinal-1], true
}

func FirstSlot() TimeSlot { return slotTable[0] }

func LastSlot() TimeSlot { return slotTable[SlotCount-1] }

// Weekdays returns the class day names in order, as used for schedule keys.
func Weekdays() []string {
	out := make([]string, 0, len(classDays))
	for _, d := range classDays {
		out = append(out, d.String())
	}
	return out
}

// IsClassDay reports whether name is exactly one of the schedule weekday keys.
func IsClassDay(name string) bool {
	for _, d := range classDays {
		if d.String() == name {
			return true
		}
	}
	return false
}

// OrdinalKey is the schedule map key for an ordinal ("1".."8").
func OrdinalKey(ordinal int) string {
	return strconv.Itoa(ordinal)
}

// ParseOrdinalKey accepts only the canonical keys "1".."8".
func ParseOrdinalKey(key string) (int, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 || n > SlotCount || strconv.Itoa(n) != key {
		return 0, false
	}
	return n, true
}

package timetable

import "fmt"

type Status string

const (
	StatusFree    Status = "FREE"
	StatusBusy    Status = "BUSY"
	StatusUnknown Status = "UNKNOWN"
)

// ParseStatus maps anything other than the two stored literals to UNKNOWN.
func ParseStatus(value string) Status {
	switch Status(value) {
	case StatusFree:
		return StatusFree
	case StatusBusy:
		return StatusBusy
	}
	return StatusUnknown
}

// Storable reports whether s may be written into a schedule.
func (s Status) Storable() bool {
	return s == StatusFree || s == StatusBusy
}

// WeeklySchedule maps weekday name -> ordinal key ("1".."8") -> "FREE" | "BUSY".
// This shape is shared with other clients of the document store and must not
// change.
type WeeklySchedule map[string]map[string]string

// Day returns the statuses stored for weekday, keyed by ordinal. Unrecognized
// values come back as UNKNOWN and unrecognized keys are dropped.
func (s WeeklySchedule) Day(weekday string) map[int]Status {
	out := make(map[int]Status)
	for key, value := range s[weekday] {
		ordinal, ok := ParseOrdinalKey(key)
		if !ok {
			continue
		}
		out[ordinal] = ParseStatus(value)
	}
	return out
}

// ScheduleError points at the first cell that cannot be stored.
type ScheduleError struct {
	Weekday string
	Key     string
	Value   string
	Reason  string
}

func (e *ScheduleError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("schedule day %q: %s", e.Weekday, e.Reason)
	}
	return fmt.Sprintf("schedule cell %s/%s=%q: %s", e.Weekday, e.Key, e.Value, e.Reason)
}

// Validate rejects unknown weekdays, unknown ordinal keys and any value other
// than FREE or BUSY. Missing cells are allowed.
func (s WeeklySchedule) Validate() error {
	for weekday, cells := range s {
		if !IsClassDay(weekday) {
			return &ScheduleError{Weekday: weekday, Reason: "unknown weekday"}
		}
		for key, value := range cells {
			if _, ok := ParseOrdinalKey(key); !ok {
				return &ScheduleError{Weekday: weekday, Key: key, Value: value, Reason: "unknown slot"}
			}
			if !ParseStatus(value).Storable() {
				return &ScheduleError{Weekday: weekday, Key: key, Value: value, Reason: "status must be FREE or BUSY"}
			}
		}
	}
	return nil
}

package timetable

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock holds a local wall time (hour and minute).
type Clock struct {
	H int
	M int
}

func (c Clock) Minutes() int {
	return c.H*60 + c.M
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.H, c.M)
}

// ClockOf truncates t to its wall-clock minute in t's own location.
func ClockOf(t time.Time) Clock {
	return Clock{H: t.Hour(), M: t.Minute()}
}

// ParseClock accepts "HH:MM" and "HH.MM", with or without surrounding spaces.
func ParseClock(s string) (Clock, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", ":")
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Clock{}, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return Clock{}, false
	}
	return Clock{H: h, M: m}, true
}

// ParseWeekday maps a day token ("mon", "Mo", "monday", ...) to a class day.
// Weekend tokens are rejected.
func ParseWeekday(s string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mo", "mon", "monday":
		return time.Monday, true
	case "tu", "tue", "tues", "tuesday":
		return time.Tuesday, true
	case "we", "wed", "wednesday":
		return time.Wednesday, true
	case "th", "thu", "thur", "thurs", "thursday":
		return time.Thursday, true
	case "fr", "fri", "friday":
		return time.Friday, true
	}
	return time.Sunday, false
}

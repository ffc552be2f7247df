package timetable

import (
	"fmt"
	"time"
)

type Phase string

const (
	PhaseInProgress  Phase = "in-progress"
	PhaseBreak       Phase = "break"
	PhaseBeforeHours Phase = "before-hours"
	PhaseAfterHours  Phase = "after-hours"
	PhaseWeekend     Phase = "weekend"
)

// ResolvedSlot describes where an instant falls in the class day.
// Ordinal is zero unless a slot is in progress. When Ordinal is zero on a
// class day, IsBeforeFirst and IsAfterLast both false means a break between
// two slots.
type ResolvedSlot struct {
	Weekday       string
	Ordinal       int
	IsWeekend     bool
	IsBeforeFirst bool
	IsAfterLast   bool
}

// Resolve places now in the slot table using now's own location.
func Resolve(now time.Time) ResolvedSlot {
	weekday := now.Weekday()
	resolved := ResolvedSlot{Weekday: weekday.String()}

	if weekday == time.Saturday || weekday == time.Sunday {
		resolved.IsWeekend = true
		return resolved
	}

	minute := ClockOf(now).Minutes()
	for _, slot := range slotTable {
		if slot.contains(minute) {
			resolved.Ordinal = slot.Ordinal
			return resolved
		}
	}

	resolved.IsBeforeFirst = minute < FirstSlot().Start.Minutes()
	resolved.IsAfterLast = minute >= LastSlot().End.Minutes()
	return resolved
}

// ResolveIn converts now to loc before resolving. A nil loc means time.Local.
func ResolveIn(now time.Time, loc *time.Location) ResolvedSlot {
	if loc == nil {
		loc = time.Local
	}
	return Resolve(now.In(loc))
}

func (r ResolvedSlot) InSlot() bool {
	return r.Ordinal > 0
}

// Slot returns the running slot, if any.
func (r ResolvedSlot) Slot() (TimeSlot, bool) {
	return SlotByOrdinal(r.Ordinal)
}

func (r ResolvedSlot) Phase() Phase {
	switch {
	case r.IsWeekend:
		return PhaseWeekend
	case r.InSlot():
		return PhaseInProgress
	case r.IsBeforeFirst:
		return PhaseBeforeHours
	case r.IsAfterLast:
		return PhaseAfterHours
	default:
		return PhaseBreak
	}
}

// Label is the human readable state shown by the current-slot widget.
func (r ResolvedSlot) Label() string {
	switch r.Phase() {
	case PhaseWeekend:
		return "Weekend"
	case PhaseInProgress:
		slot, _ := r.Slot()
		return slot.Label()
	case PhaseBeforeHours:
		return fmt.Sprintf("Classes start at %s", FirstSlot().Start)
	case PhaseAfterHours:
		return fmt.Sprintf("Classes ended at %s", LastSlot().End)
	default:
		return "Break Time"
	}
}

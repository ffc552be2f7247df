package responses

import (
	"kiskibreak-service/internal/pkg/timetable"
	"time"
)

type Slot struct {
	Ordinal int    `json:"ordinal"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Label   string `json:"label"`
}

type CurrentSlot struct {
	Weekday       string  `json:"weekday"`
	Ordinal       *int    `json:"ordinal"`
	Slot          *Slot   `json:"slot"`
	IsWeekend     bool    `json:"isWeekend"`
	IsBeforeFirst bool    `json:"isBeforeFirst"`
	IsAfterLast   bool    `json:"isAfterLast"`
	Phase         string  `json:"phase"`
	Label         string  `json:"label"`
	CurrentTime   string  `json:"currentTime"`
	MyStatus      *string `json:"myStatus"`
}

func NewSlot(s timetable.TimeSlot) Slot {
	return Slot{
		Ordinal: s.Ordinal,
		Start:   s.Start.String(),
		End:     s.End.String(),
		Label:   s.Label(),
	}
}

func NewCurrentSlot(resolved timetable.ResolvedSlot, currentTime string) *CurrentSlot {
	out := &CurrentSlot{
		Weekday:       resolved.Weekday,
		IsWeekend:     resolved.IsWeekend,
		IsBeforeFirst: resolved.IsBeforeFirst,
		IsAfterLast:   resolved.IsAfterLast,
		Phase:         string(resolved.Phase()),
		Label:         resolved.Label(),
		CurrentTime:   currentTime,
	}
	if slot, ok := resolved.Slot(); ok {
		ordinal := slot.Ordinal
		dto := NewSlot(slot)
		out.Ordinal = &ordinal
		out.Slot = &dto
	}
	return out
}

// CurrentSlotAt resolves now in loc (nil means time.Local) and reports the
// wall clock there as CurrentTime.
func CurrentSlotAt(now time.Time, loc *time.Location) (*CurrentSlot, timetable.ResolvedSlot) {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	resolved := timetable.Resolve(local)
	return NewCurrentSlot(resolved, timetable.ClockOf(local).String()), resolved
}

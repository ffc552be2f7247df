package timetable

// Evaluate returns a person's status for the resolved slot. A nil schedule
// means the person never saved one. Every missing or malformed input yields
// UNKNOWN.
func Evaluate(schedule WeeklySchedule, resolved ResolvedSlot) Status {
	if !resolved.InSlot() || schedule == nil {
		return StatusUnknown
	}
	day, ok := schedule[resolved.Weekday]
	if !ok {
		return StatusUnknown
	}
	value, ok := day[OrdinalKey(resolved.Ordinal)]
	if !ok {
		return StatusUnknown
	}
	return ParseStatus(value)
}

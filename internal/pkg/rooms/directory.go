// Package rooms answers which lecture rooms are vacant in a given slot,
// based on the occupancy export produced by the offline timetable parser.
package rooms

import (
	"errors"
	"fmt"
	"kiskibreak-service/internal/pkg/timetable"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	StateOccupied = "OCCUPIED"
	StateVacant   = "VACANT"
)

var (
	ErrUnknownDay  = errors.New("rooms: day must be Monday to Friday")
	ErrUnknownSlot = errors.New("rooms: slot must be between 1 and 8")
)

// Export is the occupancy document written by the parser. Day keys are short
// tokens ("Mo".."Fr") or full names; slot keys are "1".."8".
type Export struct {
	AllRooms      []string                       `json:"all_rooms"`
	TimeSlots     map[string]ExportSlot          `json:"time_slots,omitempty"`
	OccupiedRooms map[string]map[string][]string `json:"occupied_rooms"`
}

type ExportSlot struct {
	SlotNumber int    `json:"slot_number"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

type slotSet [timetable.SlotCount]map[string]struct{}

// Directory is an immutable, validated view of an Export.
type Directory struct {
	rooms    []string
	occupied map[time.Weekday]*slotSet
}

func Empty() *Directory {
	return &Directory{occupied: map[time.Weekday]*slotSet{}}
}

// NewDirectory validates an export. Rooms that only appear as occupied are
// added to the room list.
func NewDirectory(export Export) (*Directory, error) {
	for key, slot := range export.TimeSlots {
		ordinal, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("time_slots[%s]: %w", key, ErrUnknownSlot)
		}
		want, ok := timetable.SlotByOrdinal(ordinal)
		if !ok {
			return nil, fmt.Errorf("time_slots[%s]: %w", key, ErrUnknownSlot)
		}
		start, ok1 := timetable.ParseClock(slot.StartTime)
		end, ok2 := timetable.ParseClock(slot.EndTime)
		if !ok1 || !ok2 || start != want.Start || end != want.End {
			return nil, fmt.Errorf("time_slots[%s]: %s - %s does not match %s", key, slot.StartTime, slot.EndTime, want.Label())
		}
	}

	known := make(map[string]struct{})
	add := func(room string) string {
		room = strings.TrimSpace(room)
		if room != "" {
			known[room] = struct{}{}
		}
		return room
	}
	for _, room := range export.AllRooms {
		add(room)
	}

	occupied := make(map[time.Weekday]*slotSet)
	for dayToken, slots := range export.OccupiedRooms {
		day, ok := timetable.ParseWeekday(dayToken)
		if !ok {
			return nil, fmt.Errorf("occupied_rooms[%s]: %w", dayToken, ErrUnknownDay)
		}
		set, ok := occupied[day]
		if !ok {
			set = &slotSet{}
			occupied[day] = set
		}
		for key, rooms := range slots {
			ordinal, err := strconv.Atoi(key)
			if err != nil || ordinal < 1 || ordinal > timetable.SlotCount {
				return nil, fmt.Errorf("occupied_rooms[%s][%s]: %w", dayToken, key, ErrUnknownSlot)
			}
			if set[ordinal-1] == nil {
				set[ordinal-1] = make(map[string]struct{})
			}
			for _, room := range rooms {
				if room = add(room); room != "" {
					set[ordinal-1][room] = struct{}{}
				}
			}
		}
	}

	list := make([]string, 0, len(known))
	for room := range known {
		list = append(list, room)
	}
	sort.Strings(list)

	return &Directory{rooms: list, occupied: occupied}, nil
}

func (d *Directory) Rooms() []string {
	out := make([]string, len(d.rooms))
	copy(out, d.rooms)
	return out
}

func (d *Directory) Len() int {
	return len(d.rooms)
}

func (d *Directory) isOccupied(day time.Weekday, ordinal int, room string) bool {
	set, ok := d.occupied[day]
	if !ok || set[ordinal-1] == nil {
		return false
	}
	_, busy := set[ordinal-1][room]
	return busy
}

// Vacant lists rooms with no class on day during slot ordinal, sorted.
func (d *Directory) Vacant(day time.Weekday, ordinal int) ([]string, error) {
	if day == time.Saturday || day == time.Sunday {
		return nil, ErrUnknownDay
	}
	if ordinal < 1 || ordinal > timetable.SlotCount {
		return nil, ErrUnknownSlot
	}
	out := make([]string, 0, len(d.rooms))
	for _, room := range d.rooms {
		if !d.isOccupied(day, ordinal, room) {
			out = append(out, room)
		}
	}
	return out, nil
}

// VacantAt lists the rooms vacant at a resolved instant. Outside class hours
// and on weekends every room is vacant.
func (d *Directory) VacantAt(resolved timetable.ResolvedSlot) []string {
	if !resolved.InSlot() {
		return d.Rooms()
	}
	day, ok := timetable.ParseWeekday(resolved.Weekday)
	if !ok {
		return d.Rooms()
	}
	out, _ := d.Vacant(day, resolved.Ordinal)
	return out
}

// Occupancy returns weekday -> slot key -> OCCUPIED | VACANT for one room.
func (d *Directory) Occupancy(room string) (map[string]map[string]string, bool) {
	idx := sort.SearchStrings(d.rooms, room)
	if idx >= len(d.rooms) || d.rooms[idx] != room {
		return nil, false
	}
	out := make(map[string]map[string]string)
	for _, dayName := range timetable.Weekdays() {
		day, _ := timetable.ParseWeekday(dayName)
		cells := make(map[string]string, timetable.SlotCount)
		for ordinal := 1; ordinal <= timetable.SlotCount; ordinal++ {
			state := StateVacant
			if d.isOccupied(day, ordinal, room) {
				state = StateOccupied
			}
			cells[timetable.OrdinalKey(ordinal)] = state
		}
		out[dayName] = cells
	}
	return out, true
}

// Export renders the directory back to the exchange format with full day
// names and the canonical slot table.
func (d *Directory) Export() Export {
	out := Export{
		AllRooms:      d.Rooms(),
		TimeSlots:     make(map[string]ExportSlot, timetable.SlotCount),
		OccupiedRooms: make(map[string]map[string][]string),
	}
	for _, slot := range timetable.Slots() {
		out.TimeSlots[timetable.OrdinalKey(slot.Ordinal)] = ExportSlot{
			SlotNumber: slot.Ordinal,
			StartTime:  slot.Start.String(),
			EndTime:    slot.End.String(),
		}
	}
	for day, set := range d.occupied {
		cells := make(map[string][]string)
		for i, rooms := range set {
			if len(rooms) == 0 {
				continue
			}
			list := make([]string, 0, len(rooms))
			for room := range rooms {
				list = append(list, room)
			}
			sort.Strings(list)
			cells[timetable.OrdinalKey(i+1)] = list
		}
		out.OccupiedRooms[day.String()] = cells
	}
	return out
}

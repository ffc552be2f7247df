package timetable

import "errors"

var (
	ErrUnknownCell     = errors.New("timetable: unknown weekday or slot")
	ErrUnstorableValue = errors.New("timetable: only FREE or BUSY can be stored")
)

// Grid is the editable 5x8 weekly table. Every cell is FREE or BUSY; UNKNOWN
// never appears in a grid.
type Grid struct {
	cells [len(classDays)][SlotCount]Status
}

// NewGrid returns a grid with every cell BUSY.
func NewGrid() *Grid {
	g := &Grid{}
	for d := range g.cells {
		for s := range g.cells[d] {
			g.cells[d][s] = StatusBusy
		}
	}
	return g
}

// GridFrom overlays the valid cells of a stored schedule on a BUSY grid.
// Missing or unrecognized cells stay BUSY.
func GridFrom(schedule WeeklySchedule) *Grid {
	g := NewGrid()
	for d, day := range classDays {
		cells := schedule[day.String()]
		for s := range g.cells[d] {
			if status := ParseStatus(cells[OrdinalKey(s+1)]); status.Storable() {
				g.cells[d][s] = status
			}
		}
	}
	return g
}

func dayIndex(weekday string) (int, bool) {
	for i, d := range classDays {
		if d.String() == weekday {
			return i, true
		}
	}
	return 0, false
}

func (g *Grid) cell(weekday string, ordinal int) (*Status, error) {
	d, ok := dayIndex(weekday)
	if !ok || ordinal < 1 || ordinal > SlotCount {
		return nil, ErrUnknownCell
	}
	return &g.cells[d][ordinal-1], nil
}

func (g *Grid) Get(weekday string, ordinal int) (Status, error) {
	c, err := g.cell(weekday, ordinal)
	if err != nil {
		return StatusUnknown, err
	}
	return *c, nil
}

// Toggle flips a cell between BUSY and FREE and returns the new value.
func (g *Grid) Toggle(weekday string, ordinal int) (Status, error) {
	c, err := g.cell(weekday, ordinal)
	if err != nil {
		return StatusUnknown, err
	}
	if *c == StatusFree {
		*c = StatusBusy
	} else {
		*c = StatusFree
	}
	return *c, nil
}

func (g *Grid) Set(weekday string, ordinal int, status Status) error {
	if !status.Storable() {
		return ErrUnstorableValue
	}
	c, err := g.cell(weekday, ordinal)
	if err != nil {
		return err
	}
	*c = status
	return nil
}

func (g *Grid) FreeCount() int {
	n := 0
	for d := range g.cells {
		for s := range g.cells[d] {
			if g.cells[d][s] == StatusFree {
				n++
			}
		}
	}
	return n
}

// Schedule emits all 40 cells in the stored document shape.
func (g *Grid) Schedule() WeeklySchedule {
	out := make(WeeklySchedule, len(classDays))
	for d, day := range classDays {
		cells := make(map[string]string, SlotCount)
		for s := range g.cells[d] {
			cells[OrdinalKey(s+1)] = string(g.cells[d][s])
		}
		out[day.String()] = cells
	}
	return out
}

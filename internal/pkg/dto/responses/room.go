package responses

type Rooms struct {
	Total int      `json:"total"`
	Rooms []string `json:"rooms"`
}

type VacantRooms struct {
	Weekday string   `json:"weekday"`
	Slot    *Slot    `json:"slot"`
	Label   string   `json:"label"`
	Total   int      `json:"total"`
	Vacant  []string `json:"vacant"`
}

type RoomOccupancy struct {
	Room     string                       `json:"room"`
	Schedule map[string]map[string]string `json:"schedule"`
}

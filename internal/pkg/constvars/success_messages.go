package constvars

const (
	ResponseUnknown = "unknown"

	GetSlotsSuccessMessage            = "get slots successfully"
	GetCurrentSlotSuccessMessage      = "get current slot successfully"
	GetTimetableSuccessMessage        = "get timetable successfully"
	SaveTimetableSuccessMessage       = "timetable saved successfully"
	GetFriendTodaySuccessMessage      = "get friend's timetable for today successfully"
	GetFreeFriendsSuccessMessage      = "get free friends successfully"
	GetGroupMembersSuccessMessage     = "get group members availability successfully"
	GetRoomsSuccessMessage            = "get rooms successfully"
	GetVacantRoomsSuccessMessage      = "get vacant rooms successfully"
	GetRoomOccupancySuccessMessage    = "get room occupancy successfully"
	ReloadRoomDirectorySuccessMessage = "room directory reloaded successfully"
	HealthCheckSuccessMessage         = "service is healthy"
)

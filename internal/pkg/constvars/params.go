package constvars

const (
	URLParamUID     = "uid"
	URLParamGroupID = "groupID"
	URLParamRoom    = "room"
)

const (
	URLQueryParamDay  = "day"
	URLQueryParamSlot = "slot"
)

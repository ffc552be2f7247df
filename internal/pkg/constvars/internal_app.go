package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_UID_KEY                  ContextKey = "uid"
)

const (
	MongoCollectionUsers      = "users"
	MongoCollectionFriends    = "friends"
	MongoCollectionGroups     = "groups"
	MongoCollectionTimetables = "timetables"
)

const (
	RedisChannelScheduleEvents = "kiskibreak:schedule-events"
	RedisKeySlotTickerLeader   = "kiskibreak:slot-ticker:leader"
)

const (
	EventTypeScheduleChanged = "schedule.changed"
	EventTypeSlotTick        = "slot.tick"
)

const (
	PushTypeFriendFree   = "friend_free"
	PushFriendFreeTitle  = "%s is Free Now!"
	PushFriendFreeBody   = "%s is free during slot %d. Catch up!"
	PushFallbackName     = "Your friend"
	UnknownMemberName    = "Unknown"
	MinioTimetableFolder = "timetables"
)

const (
	LimitActionStream     = "stream"
	LimitActionRoomReload = "room_reload"
)

const (
	SSEEventFreeFriends = "free-friends"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

package constvars

const (
	LoggingRequestIDKey  = "request_id"
	LoggingUIDKey        = "uid"
	LoggingViewerUIDKey  = "viewer_uid"
	LoggingFriendUIDKey  = "friend_uid"
	LoggingGroupIDKey    = "group_id"
	LoggingWeekdayKey    = "weekday"
	LoggingSlotKey       = "slot"
	LoggingPhaseKey      = "phase"
	LoggingRosterSizeKey = "roster_size"
	LoggingFreeCountKey  = "free_count"
	LoggingEventTypeKey  = "event_type"
	LoggingQueueKey      = "queue"
	LoggingBucketKey     = "bucket"
	LoggingObjectKey     = "object"
	LoggingRoomKey       = "room"
	LoggingRoomCountKey  = "room_count"
	LoggingCronSpecKey   = "cron_spec"
	LoggingRedisKey      = "redis_key"
	LoggingRedisChannel  = "redis_channel"
	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"
	LoggingLockValueKey  = "lock_value"
	LoggingLockTTLKey    = "lock_ttl"
	LoggingLockStoredKey = "lock_stored_value"
	LoggingLockExpectKey = "lock_expected_value"
	LoggingStreamTickKey = "stream_tick"
	LoggingNotifiedKey   = "notified"
)

package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
	"oneof":    "must be one of [%s]",
	"len":      "must have %s entries",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
	"weekday":  "must be a class day (Monday to Friday)",
	"slot_key": "must be a slot number between 1 and 8",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"oneof": true,
	"gte":   true,
	"lte":   true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidSchedule               = "your timetable contains an invalid day, slot or status"
	ErrClientNotFriends                    = "you can only view timetables of your friends"
	ErrClientNotGroupMember                = "you are not a member of this group"
	ErrClientGroupNotFound                 = "group not found"
	ErrClientRoomNotFound                  = "room not found"
	ErrClientStreamingUnsupported          = "live updates are not supported by this connection"
	ErrClientTooManyRequests               = "too many requests, please try again later"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevCannotParseJSON            = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON          = "cannot convert struct or other data types to JSON"
	ErrDevValidationFailed           = "validation failed"
	ErrDevURLParamValidationFailed   = "parameter %s validation failed"
	ErrDevServerDeadlineExceeded     = "deadline exceeded"
	ErrDevServerPanic                = "recovered from panic"
	ErrDevStreamingUnsupported       = "response writer does not implement http.Flusher"
	ErrDevActionRateLimited          = "action %s rate limited, retry after %s"
	ErrDevScheduleInvalid            = "schedule failed cell validation"
	ErrDevViewerNotFriend            = "viewer %s is not a friend of %s"
	ErrDevViewerNotGroupMember       = "viewer %s is not a member of group %s"
	ErrDevGroupNotExists             = "group %s does not exist"
	ErrDevRoomNotExists              = "room %s does not exist in the occupancy directory"
	ErrDevRoomDirectoryInvalid       = "room occupancy document is invalid"
	ErrDevAuthTokenInvalidOrExpired  = "invalid or expired token"
	ErrDevAuthTokenMissing           = "token missing"
	ErrDevAuthTokenMissingUIDClaim   = "token has no uid claim"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToReplaceDocument  = "failed when do replace document on database"
	ErrDevDBFailedToIterateDocuments = "failed when iterating documents from database"
	ErrDevDBFailedToCreateIndex      = "failed to create index on collection %s"
	ErrDevMinioFailedToCreateObject  = "failed to create object into minio storage with bucket name '%s'"
	ErrDevMinioFailedToGetObject     = "failed to get object from minio storage with bucket name '%s'"
	ErrDevRedisSetData               = "failed to SET data into redis"
	ErrDevRedisGetData               = "failed to GET data from redis"
	ErrDevRedisDeleteData            = "failed to DELETE data from redis"
	ErrDevRedisExpire                = "failed to EXPIRE key in redis"
	ErrDevRedisPublish               = "failed to PUBLISH message to redis channel %s"
	ErrDevRedisSubscribe             = "failed to SUBSCRIBE to redis channel %s"
	ErrDevRedisUnlock                = "failed to release lock, lock not owned by this client"
	ErrDevRabbitMQPublishMessage     = "failed to publish message to rabbitmq queue %s"
	ErrDevRabbitMQDeclareQueue       = "failed to declare rabbitmq queue %s"
)

package config

import "time"

type InternalConfig struct {
	App          App             `mapstructure:"app"`
	JWT          AppJWT          `mapstructure:"jwt"`
	Minio        AppMinio        `mapstructure:"minio"`
	RabbitMQ     AppRabbitMQ     `mapstructure:"rabbitmq"`
	MongoDB      AppMongoDB      `mapstructure:"mongodb"`
	Availability AppAvailability `mapstructure:"availability"`
	SlotTicker   AppSlotTicker   `mapstructure:"slot_ticker"`
	Limiter      AppLimiter      `mapstructure:"limiter"`
}

type App struct {
	Env                      string `mapstructure:"env"`
	Port                     string `mapstructure:"port"`
	Version                  string `mapstructure:"version"`
	Timezone                 string `mapstructure:"timezone"`
	EndpointPrefix           string `mapstructure:"endpoint_prefix"`
	MaxRequests              int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds int    `mapstructure:"shutdown_timeout_in_seconds"`
	// ScanConcurrency caps concurrent schedule fetches per roster scan
	ScanConcurrency int `mapstructure:"scan_concurrency"`
}

type AppJWT struct {
	Secret string `mapstructure:"secret"`
}

type AppMinio struct {
	BucketName     string `mapstructure:"bucket_name"`
	ArchiveEnabled bool   `mapstructure:"archive_enabled"`
	RoomsObject    string `mapstructure:"rooms_object"`
}

type AppRabbitMQ struct {
	PushQueue string `mapstructure:"push_queue"`
}

type AppMongoDB struct {
	DBName string `mapstructure:"db_name"`
}

// AppAvailability tunes live re-evaluation of free friends.
type AppAvailability struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	// EventInterval is the minimum spacing between event-driven rescans
	EventInterval time.Duration `mapstructure:"event_interval"`
	EventBurst    int           `mapstructure:"event_burst"`
}

type AppSlotTicker struct {
	Enabled bool          `mapstructure:"enabled"`
	LockTTL time.Duration `mapstructure:"lock_ttl"`
}

// AppLimiter holds per-user quotas for the expensive endpoints. Zero disables
// a quota.
type AppLimiter struct {
	Window      time.Duration `mapstructure:"window"`
	StreamOpens int           `mapstructure:"stream_opens"`
	RoomReloads int           `mapstructure:"room_reloads"`
}

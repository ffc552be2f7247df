package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func init() {
	godotenv.Load()
}

// Every key needs a default so AutomaticEnv can bind it during Unmarshal.
// Key "app.port" is read from APP_PORT.
var defaults = map[string]interface{}{
	"app.env":                         "development",
	"app.port":                        ":8080",
	"app.version":                     "v1",
	"app.timezone":                    "Asia/Kolkata",
	"app.endpoint_prefix":             "api",
	"app.max_requests":                20,
	"app.shutdown_timeout_in_seconds": 10,
	"app.scan_concurrency":            16,

	"jwt.secret": "anyjwt",

	"availability.poll_interval":  30 * time.Second,
	"availability.event_interval": 2 * time.Second,
	"availability.event_burst":    1,

	"slot_ticker.enabled":  true,
	"slot_ticker.lock_ttl": 30 * time.Second,

	"limiter.window":       time.Minute,
	"limiter.stream_opens": 10,
	"limiter.room_reloads": 2,

	"mongodb.host":     "localhost",
	"mongodb.port":     "27017",
	"mongodb.username": "defaultUsername",
	"mongodb.password": "defaultPassword",
	"mongodb.db_name":  "kiskibreak",

	"redis.host":     "localhost",
	"redis.port":     "6379",
	"redis.password": "",
	"redis.db":       0,

	"rabbitmq.host":       "localhost",
	"rabbitmq.port":       "5672",
	"rabbitmq.username":   "guest",
	"rabbitmq.password":   "guest",
	"rabbitmq.push_queue": "push-notifications",

	"minio.host":            "localhost",
	"minio.port":            "9000",
	"minio.username":        "minioadmin",
	"minio.password":        "minioadmin",
	"minio.use_ssl":         false,
	"minio.bucket_name":     "kiskibreak",
	"minio.archive_enabled": true,
	"minio.rooms_object":    "rooms/occupancy.json",

	"logger.level":                  "debug",
	"logger.output_file_name":       "logger.log",
	"logger.output_error_file_name": "logger_error.log",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

func NewDriverConfig() *DriverConfig {
	var cfg DriverConfig
	if err := newViper().Unmarshal(&cfg); err != nil {
		log.Fatalf("Error loading driver config: %v", err)
	}
	return &cfg
}

func NewInternalConfig() *InternalConfig {
	var cfg InternalConfig
	if err := newViper().Unmarshal(&cfg); err != nil {
		log.Fatalf("Error loading internal config: %v", err)
	}
	return &cfg
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewInternalConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := NewInternalConfig()
		assert.Equal(t, "Asia/Kolkata", cfg.App.Timezone)
		assert.Equal(t, 30*time.Second, cfg.Availability.PollInterval)
		assert.Equal(t, "rooms/occupancy.json", cfg.Minio.RoomsObject)
		assert.True(t, cfg.SlotTicker.Enabled)
		assert.Equal(t, time.Minute, cfg.Limiter.Window)
		assert.Equal(t, 2, cfg.Limiter.RoomReloads)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		t.Setenv("APP_TIMEZONE", "UTC")
		t.Setenv("AVAILABILITY_POLL_INTERVAL", "5s")
		t.Setenv("RABBITMQ_PUSH_QUEUE", "push-test")
		t.Setenv("APP_SCAN_CONCURRENCY", "4")

		cfg := NewInternalConfig()
		assert.Equal(t, "UTC", cfg.App.Timezone)
		assert.Equal(t, 5*time.Second, cfg.Availability.PollInterval)
		assert.Equal(t, "push-test", cfg.RabbitMQ.PushQueue)
		assert.Equal(t, 4, cfg.App.ScanConcurrency)
	})
}

func TestNewDriverConfig(t *testing.T) {
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := NewDriverConfig()
	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.Equal(t, "6379", cfg.Redis.Port)
	assert.True(t, cfg.Minio.UseSSL)
	assert.Equal(t, "27017", cfg.MongoDB.Port)
}

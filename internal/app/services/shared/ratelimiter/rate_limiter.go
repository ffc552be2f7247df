package ratelimiter

import (
	"context"
	"fmt"
	"kiskibreak-service/internal/app/contracts"
	"kiskibreak-service/internal/pkg/constvars"
	"strings"
	"time"

	"go.uber.org/zap"
)

// UserActionLimiter caps how often one user may perform an action across all
// instances. It keeps a fixed-window counter in redis.
type UserActionLimiter struct {
	redis contracts.RedisRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewUserActionLimiter(redis contracts.RedisRepository, log *zap.Logger) *UserActionLimiter {
	return &UserActionLimiter{redis: redis, log: log, now: time.Now}
}

type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Allow counts one attempt of action by uid. A quota of zero or less disables
// the limit.
func (l *UserActionLimiter) Allow(ctx context.Context, action, uid string, quota int, window time.Duration) (*Decision, error) {
	if quota <= 0 {
		return &Decision{Allowed: true}, nil
	}
	if window < time.Second {
		window = time.Minute
	}

	now := l.now().UTC()
	windowSec := int64(window / time.Second)
	windowID := now.Unix() / windowSec
	key := fmt.Sprintf("kiskibreak:limit:%s:%s:%d", strings.ToLower(action), uid, windowID)

	count, err := l.redis.IncrementWithTTL(ctx, key, window+time.Second)
	if err != nil {
		l.log.Error("UserActionLimiter.Allow increment failed",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return nil, err
	}

	if count > quota {
		nextWindow := time.Unix((windowID+1)*windowSec, 0)
		return &Decision{Allowed: false, RetryAfter: nextWindow.Sub(now) + time.Second}, nil
	}
	return &Decision{Allowed: true}, nil
}

package middlewares

import (
	"context"
	"kiskibreak-service/internal/app/config"
	"kiskibreak-service/internal/app/services/shared/ratelimiter"
	"time"

	"go.uber.org/zap"
)

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

type ActionLimiter interface {
	Allow(ctx context.Context, action, uid string, quota int, window time.Duration) (*ratelimiter.Decision, error)
}

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	TokenVerifier  TokenVerifier
	ActionLimiter  ActionLimiter
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig, tokenVerifier TokenVerifier, actionLimiter ActionLimiter) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
		TokenVerifier:  tokenVerifier,
		ActionLimiter:  actionLimiter,
	}
}

package jwtmanager

import (
	"context"
	"errors"
	"fmt"
	"kiskibreak-service/internal/app/config"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/utils"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

var (
	ErrTokenRequired   = errors.New("token is required")
	ErrMissingUIDClaim = errors.New("token has no uid claim")
)

// JWTManager verifies the HS256 identity tokens minted by the external auth
// service. CreateToken mints the same shape for local tooling and tests.
type JWTManager struct {
	log    *zap.Logger
	secret []byte
	ttl    time.Duration
}

func NewJWTManager(cfg *config.InternalConfig, log *zap.Logger) (*JWTManager, error) {
	secret := strings.TrimSpace(cfg.JWT.Secret)
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	return &JWTManager{
		log:    log,
		secret: []byte(secret),
		ttl:    24 * time.Hour,
	}, nil
}

// CreateToken signs a token carrying uid as both "uid" and "sub".
func (j *JWTManager) CreateToken(ctx context.Context, uid string) (string, error) {
	requestID := utils.RequestIDFromContext(ctx)
	j.log.Debug("JWTManager.CreateToken called", zap.String(constvars.LoggingRequestIDKey, requestID))

	if strings.TrimSpace(uid) == "" {
		return "", ErrMissingUIDClaim
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"uid": uid,
		"sub": uid,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": now.Add(j.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

// VerifyToken validates signature and expiry and returns the uid claim,
// falling back to "sub".
func (j *JWTManager) VerifyToken(ctx context.Context, token string) (string, error) {
	requestID := utils.RequestIDFromContext(ctx)
	j.log.Debug("JWTManager.VerifyToken called", zap.String(constvars.LoggingRequestIDKey, requestID))

	if strings.TrimSpace(token) == "" {
		return "", ErrTokenRequired
	}

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		// enforce expected alg
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	}

	parsed, err := jwt.Parse(token, keyFunc)
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", errors.New("invalid token")
	}

	if uid, ok := claims["uid"].(string); ok && uid != "" {
		return uid, nil
	}
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub, nil
	}
	return "", ErrMissingUIDClaim
}

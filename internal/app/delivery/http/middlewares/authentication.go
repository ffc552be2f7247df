package middlewares

import (
	"context"
	"errors"
	"kiskibreak-service/internal/app/services/shared/jwtmanager"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/exceptions"
	"kiskibreak-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate accepts a bearer token minted by the external auth service and
// stores its uid under CONTEXT_UID_KEY.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.RequestIDFromContext(r.Context())

		header := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(header, constvars.HeaderBearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, constvars.HeaderBearerPrefix))

		uid, err := m.TokenVerifier.VerifyToken(r.Context(), token)
		if err != nil {
			m.Log.Warn("Middlewares.Authenticate rejected token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			switch {
			case errors.Is(err, jwtmanager.ErrTokenRequired):
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(err))
			case errors.Is(err, jwtmanager.ErrMissingUIDClaim):
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissingUID(err))
			default:
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			}
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_UID_KEY, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

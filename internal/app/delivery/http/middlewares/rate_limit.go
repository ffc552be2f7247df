package middlewares

import (
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/exceptions"
	"kiskibreak-service/internal/pkg/utils"
	"math"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// LimitAction applies a per-user quota shared by every instance. It must run
// after Authenticate. When redis is unavailable the request is let through.
func (m *Middlewares) LimitAction(action string, quota int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid := utils.UIDFromContext(r.Context())
			if m.ActionLimiter == nil || uid == "" {
				next.ServeHTTP(w, r)
				return
			}

			decision, err := m.ActionLimiter.Allow(r.Context(), action, uid, quota, m.InternalConfig.Limiter.Window)
			if err != nil {
				m.Log.Warn("Middlewares.LimitAction limiter unavailable",
					zap.String(constvars.LoggingRequestIDKey, utils.RequestIDFromContext(r.Context())),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			if !decision.Allowed {
				seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
				w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(seconds))
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil, action, decision.RetryAfter))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

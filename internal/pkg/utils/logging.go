package utils

import (
	"context"
	"kiskibreak-service/internal/pkg/constvars"
)

func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID
}

func UIDFromContext(ctx context.Context) string {
	uid, _ := ctx.Value(constvars.CONTEXT_UID_KEY).(string)
	return uid
}

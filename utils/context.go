package utils

import (
	"context"

	"github.com/google/uuid"
)

type rqIDKey struct{}

func GetRequestIDFromCtx(ctx context.Context) string {
	rqID, ok := ctx.Value(rqIDKey{}).(string)
	if !ok {
		return ""
	}
	return rqID
}

// CreateCtxWithRqID keeps an existing request id, otherwise generates a new one.
func CreateCtxWithRqID(ctx context.Context) context.Context {
	if rqID := GetRequestIDFromCtx(ctx); rqID != "" {
		return ctx
	}
	return context.WithValue(ctx, rqIDKey{}, uuid.NewString())
}

package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKey struct{}

// RequestData carries the authenticated subject for the current request.
// The auth middleware attaches it before any tenant-scoped work runs;
// nothing below the HTTP layer reads ambient globals.
type RequestData struct {
	TokenString string
	UserID      uuid.UUID
	TenantID    uuid.UUID
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey{})
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}

package utils

import (
	"context"
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/constvars"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, constvars.CONTEXT_ACTOR_KEY, actor)
}

func ActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(constvars.CONTEXT_ACTOR_KEY).(models.Actor)
	return actor, ok
}

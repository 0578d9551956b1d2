package dashgrid

import "context"

// ActorContext identifies who performed a gesture.
type ActorContext struct {
	ActorID  string
	TenantID string
}

type actorContextKey struct{}

// ContextWithActor stores actor identifiers on the provided context.
func ContextWithActor(ctx context.Context, actor ActorContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext returns the actor stored by ContextWithActor.
func ActorFromContext(ctx context.Context) ActorContext {
	if ctx == nil {
		return ActorContext{}
	}
	if actor, ok := ctx.Value(actorContextKey{}).(ActorContext); ok {
		return actor
	}
	return ActorContext{}
}

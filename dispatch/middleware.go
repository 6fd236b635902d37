package dispatch

import (
	"context"

	"github.com/goliatone/go-admin-toolbox/core"
	"github.com/goliatone/go-admin-toolbox/message"
	"github.com/goliatone/go-admin-toolbox/registry"
)

// Middleware wraps a handler; it runs before the handler and may
// short-circuit it.
type Middleware func(next registry.Handler) registry.Handler

// Chain composes middleware so the first element is the outermost.
func Chain(handler registry.Handler, middleware ...Middleware) registry.Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		if middleware[i] == nil {
			continue
		}
		handler = middleware[i](handler)
	}
	return handler
}

// RequireCapability only lets callers holding capability reach next. Denied
// requests are dropped without a reply, or rejected with ErrUnauthorized when
// reject is set. The handler never runs in either case.
func RequireCapability(capability string, reject bool, logger core.Logger) Middleware {
	return func(next registry.Handler) registry.Handler {
		return func(ctx context.Context, msg message.Message) error {
			rc, _ := core.RequestFromContext(ctx)
			if rc.HasCapability(capability) {
				return next(ctx, msg)
			}
			fields := map[string]any{
				"message_type":  msg.Type(),
				"message_id":    msg.Envelope().ID,
				"connection_id": rc.ConnectionID,
			}
			if reject {
				core.Log(ctx, logger, "warn", "admin request rejected", fields)
				return unauthorizedError(msg.Type(), capability)
			}
			core.Log(ctx, logger, "debug", "admin request dropped", fields)
			return errDropped
		}
	}
}

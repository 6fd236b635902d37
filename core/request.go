package core

import (
	"context"
	"slices"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const CapabilityAdmin = "admin"

// RequestContext describes the caller of an inbound admin message.
type RequestContext struct {
	// ConnectionID is the connection the request arrived on.
	ConnectionID string
	Capabilities []string
	Responder    Responder
}

func (rc RequestContext) HasCapability(capability string) bool {
	capability = strings.TrimSpace(capability)
	if capability == "" {
		return false
	}
	return slices.Contains(rc.Capabilities, capability)
}

type requestContextKey struct{}

func ContextWithRequest(ctx context.Context, rc RequestContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestContextKey{}, rc)
}

func RequestFromContext(ctx context.Context) (RequestContext, bool) {
	if ctx == nil {
		return RequestContext{}, false
	}
	rc, ok := ctx.Value(requestContextKey{}).(RequestContext)
	return rc, ok
}

// ResponderFrom returns the responder of the request carried by ctx.
func ResponderFrom(ctx context.Context) (Responder, error) {
	rc, ok := RequestFromContext(ctx)
	if !ok || rc.Responder == nil {
		return nil, NewError("core: request responder is required", goerrors.CategoryInternal, ErrorInternal)
	}
	return rc.Responder, nil
}

package dispatch

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-admin-toolbox/core"
	"github.com/goliatone/go-admin-toolbox/message"
	"github.com/goliatone/go-admin-toolbox/registry"
	glog "github.com/goliatone/go-logger/glog"
)

// Result reports what happened to one inbound envelope.
type Result struct {
	Type      string
	MessageID string
	ThreadID  string
	Handled   bool
	Dropped   bool
	Outbound  bool
}

type Dispatcher struct {
	Catalogue          *registry.Catalogue
	Logger             core.Logger
	Capability         string
	RejectUnauthorized bool
	Middleware         []Middleware
}

type Option func(*Dispatcher)

func WithLogger(logger core.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.Logger = logger
		}
	}
}

func WithCapability(capability string) Option {
	return func(d *Dispatcher) {
		if trimmed := strings.TrimSpace(capability); trimmed != "" {
			d.Capability = trimmed
		}
	}
}

// WithRejectUnauthorized makes gate failures return ErrUnauthorized instead
// of silently dropping the request.
func WithRejectUnauthorized(reject bool) Option {
	return func(d *Dispatcher) {
		d.RejectUnauthorized = reject
	}
}

// WithMiddleware adds middleware around every handler, outside the admin gate.
func WithMiddleware(middleware ...Middleware) Option {
	return func(d *Dispatcher) {
		d.Middleware = append(d.Middleware, middleware...)
	}
}

func NewDispatcher(catalogue *registry.Catalogue, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		Catalogue:  catalogue,
		Logger:     glog.Nop(),
		Capability: core.CapabilityAdmin,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Dispatch resolves, decodes, authorizes and executes one raw envelope.
// Handlers run with rc available through core.RequestFromContext.
func (d *Dispatcher) Dispatch(ctx context.Context, rc core.RequestContext, raw []byte) (Result, error) {
	if d == nil || d.Catalogue == nil {
		return Result{}, dispatchInternal("dispatch: dispatcher is not configured", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	msgType, err := message.PeekType(raw)
	if err != nil {
		d.log(ctx, "warn", "admin envelope rejected", map[string]any{"error": err.Error()})
		return Result{}, err
	}
	result := Result{Type: msgType}

	entry, err := d.Catalogue.Resolve(msgType)
	if err != nil {
		d.log(ctx, "warn", "admin message type unknown", map[string]any{
			"message_type":  msgType,
			"connection_id": rc.ConnectionID,
		})
		return result, err
	}
	result.Outbound = entry.Outbound()

	msg, err := entry.Decode(raw)
	if err != nil {
		d.log(ctx, "warn", "admin message failed validation", map[string]any{
			"message_type": msgType,
			"error":        err.Error(),
		})
		return result, err
	}
	env := msg.Envelope()
	result.MessageID = env.ID
	result.ThreadID = env.ThreadID()

	handler := entry.Handler()
	if entry.AdminOnly() {
		handler = RequireCapability(d.Capability, d.RejectUnauthorized, d.Logger)(handler)
	}
	handler = Chain(handler, d.Middleware...)

	ctx = core.ContextWithRequest(ctx, rc)
	if err := handler(ctx, msg); err != nil {
		if errors.Is(err, errDropped) {
			result.Dropped = true
			return result, nil
		}
		if IsUnauthorized(err) {
			return result, err
		}
		d.log(ctx, "error", "admin handler failed", map[string]any{
			"message_type": msgType,
			"message_id":   env.ID,
			"error":        err.Error(),
		})
		return result, handlerError(err, msgType)
	}
	result.Handled = true
	d.log(ctx, "debug", "admin message handled", map[string]any{
		"message_type": msgType,
		"message_id":   env.ID,
		"outbound":     entry.Outbound(),
	})
	return result, nil
}

func (d *Dispatcher) log(ctx context.Context, level string, message string, fields map[string]any) {
	core.Log(ctx, d.Logger, level, message, fields)
}

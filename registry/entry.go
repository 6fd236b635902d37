package registry

import (
	"context"
	"fmt"
	"reflect"

	"github.com/goliatone/go-admin-toolbox/core"
	"github.com/goliatone/go-admin-toolbox/message"
	gocmd "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
)

// Handler executes a decoded message.
type Handler func(ctx context.Context, msg message.Message) error

// Decoder parses and validates a raw envelope into its typed message.
type Decoder func(raw []byte) (message.Message, error)

// Entry binds one message type to its schema and handler.
type Entry struct {
	msgType   string
	payload   reflect.Type
	decode    Decoder
	handler   Handler
	adminOnly bool
	outbound  bool
}

type EntryOption func(*Entry)

// Public marks a request entry as callable without the admin capability.
func Public() EntryOption {
	return func(e *Entry) {
		e.adminOnly = false
	}
}

// Handle binds the request type T to cmd. Request entries are admin-only
// unless Public is given.
func Handle[T message.Message](cmd gocmd.Commander[T], opts ...EntryOption) Entry {
	var zero T
	entry := Entry{
		msgType:   zero.Type(),
		payload:   reflect.TypeOf(zero),
		decode:    decoderFor[T](),
		adminOnly: true,
	}
	if cmd != nil {
		entry.handler = func(ctx context.Context, msg message.Message) error {
			typed, ok := msg.(T)
			if !ok {
				return core.NewError(
					fmt.Sprintf("registry: handler for %s received %T", entry.msgType, msg),
					goerrors.CategoryInternal,
					core.ErrorInternal,
				)
			}
			return cmd.Execute(ctx, typed)
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&entry)
		}
	}
	return entry
}

// Outbound binds a result-only type T. These types are constructed by other
// handlers and never acted on when received.
func Outbound[T message.Message]() Entry {
	var zero T
	return Entry{
		msgType:  zero.Type(),
		payload:  reflect.TypeOf(zero),
		decode:   decoderFor[T](),
		handler:  PassHandler,
		outbound: true,
	}
}

// PassHandler accepts a message and does nothing.
func PassHandler(context.Context, message.Message) error { return nil }

func decoderFor[T message.Message]() Decoder {
	return func(raw []byte) (message.Message, error) {
		return message.Decode[T](raw)
	}
}

func (e Entry) Type() string          { return e.msgType }
func (e Entry) AdminOnly() bool       { return e.adminOnly }
func (e Entry) Outbound() bool        { return e.outbound }
func (e Entry) Payload() reflect.Type { return e.payload }
func (e Entry) Handler() Handler      { return e.handler }

// Decode parses raw with the entry's schema.
func (e Entry) Decode(raw []byte) (message.Message, error) {
	if e.decode == nil {
		return nil, core.NewError("registry: entry has no decoder: "+e.msgType, goerrors.CategoryInternal, core.ErrorInternal)
	}
	return e.decode(raw)
}

// Descriptor is the discovery view of a registered entry.
type Descriptor struct {
	Type      string `json:"type"`
	Protocol  string `json:"protocol"`
	Name      string `json:"name"`
	Schema    string `json:"schema"`
	AdminOnly bool   `json:"admin_only"`
	Outbound  bool   `json:"outbound"`
}

func (e Entry) Describe() Descriptor {
	schema := ""
	if e.payload != nil {
		schema = e.payload.String()
	}
	return Descriptor{
		Type:      e.msgType,
		Protocol:  message.ProtocolOf(e.msgType),
		Name:      message.NameOf(e.msgType),
		Schema:    schema,
		AdminOnly: e.adminOnly,
		Outbound:  e.outbound,
	}
}

package dispatch

import (
	"context"
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-admin-toolbox/core"
	"github.com/goliatone/go-admin-toolbox/message"
	"github.com/goliatone/go-admin-toolbox/registry"
	gocmd "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
)

const testProtocol = "https://example.com/admin-test/1.0"

type createMessage struct {
	message.Header
	Label string `json:"label"`
}

func (createMessage) Type() string { return testProtocol + "/create" }

func (m createMessage) Validate() error {
	return message.Check(validation.ValidateStruct(&m,
		validation.Field(&m.Label, validation.Required),
	))
}

type resultMessage struct {
	message.Header
	Label string `json:"label"`
}

func (resultMessage) Type() string { return testProtocol + "/result" }

type publicMessage struct {
	message.Header
}

func (publicMessage) Type() string { return testProtocol + "/public" }

type fixture struct {
	calls      int
	handlerErr error
	seen       core.RequestContext
}

func newFixture(t *testing.T) (*fixture, *registry.Catalogue) {
	t.Helper()
	f := &fixture{}
	create := gocmd.CommandFunc[createMessage](func(ctx context.Context, _ createMessage) error {
		f.calls++
		f.seen, _ = core.RequestFromContext(ctx)
		return f.handlerErr
	})
	public := gocmd.CommandFunc[publicMessage](func(context.Context, publicMessage) error {
		f.calls++
		return nil
	})
	builder := registry.NewBuilder()
	if err := builder.Register(testProtocol,
		registry.Handle[createMessage](create),
		registry.Handle[publicMessage](public, registry.Public()),
		registry.Outbound[resultMessage](),
	); err != nil {
		t.Fatalf("register: %v", err)
	}
	return f, builder.Seal()
}

func adminRequest() core.RequestContext {
	return core.RequestContext{ConnectionID: "conn_admin", Capabilities: []string{core.CapabilityAdmin}}
}

var createRaw = []byte(`{"@type":"` + testProtocol + `/create","@id":"msg-1","label":"x"}`)

func TestDispatch_RunsAuthorizedHandler(t *testing.T) {
	f, catalogue := newFixture(t)
	d := NewDispatcher(catalogue)

	result, err := d.Dispatch(context.Background(), adminRequest(), createRaw)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !result.Handled || result.Dropped || result.Outbound {
		t.Fatalf("unexpected result: %#v", result)
	}
	if result.MessageID != "msg-1" || result.ThreadID != "msg-1" {
		t.Fatalf("unexpected correlation ids: %#v", result)
	}
	if f.calls != 1 {
		t.Fatalf("expected handler to run once, got %d", f.calls)
	}
	if f.seen.ConnectionID != "conn_admin" {
		t.Fatalf("expected request context in handler, got %#v", f.seen)
	}
}

func TestDispatch_DropsUnauthorizedByDefault(t *testing.T) {
	f, catalogue := newFixture(t)
	d := NewDispatcher(catalogue)

	result, err := d.Dispatch(context.Background(), core.RequestContext{ConnectionID: "conn_peer"}, createRaw)
	if err != nil {
		t.Fatalf("expected silent drop, got %v", err)
	}
	if !result.Dropped || result.Handled {
		t.Fatalf("expected dropped result, got %#v", result)
	}
	if f.calls != 0 {
		t.Fatalf("handler must not run for unauthorized caller")
	}
}

func TestDispatch_RejectsUnauthorizedWhenConfigured(t *testing.T) {
	f, catalogue := newFixture(t)
	d := NewDispatcher(catalogue, WithRejectUnauthorized(true))

	result, err := d.Dispatch(context.Background(), core.RequestContext{Capabilities: []string{"reader"}}, createRaw)
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.Category != goerrors.CategoryAuthz || rich.TextCode != core.ErrorUnauthorized {
		t.Fatalf("unexpected unauthorized envelope: %v", err)
	}
	if result.Dropped || result.Handled {
		t.Fatalf("unexpected result: %#v", result)
	}
	if f.calls != 0 {
		t.Fatalf("handler must not run for unauthorized caller")
	}
}

func TestDispatch_CustomCapability(t *testing.T) {
	f, catalogue := newFixture(t)
	d := NewDispatcher(catalogue, WithCapability("toolbox-admin"))

	if result, err := d.Dispatch(context.Background(), adminRequest(), createRaw); err != nil || !result.Dropped {
		t.Fatalf("expected drop without custom capability, got %#v %v", result, err)
	}
	rc := core.RequestContext{Capabilities: []string{"toolbox-admin"}}
	if result, err := d.Dispatch(context.Background(), rc, createRaw); err != nil || !result.Handled {
		t.Fatalf("expected handled with custom capability, got %#v %v", result, err)
	}
	if f.calls != 1 {
		t.Fatalf("expected one handler call, got %d", f.calls)
	}
}

func TestDispatch_PublicEntrySkipsGate(t *testing.T) {
	f, catalogue := newFixture(t)
	d := NewDispatcher(catalogue)

	result, err := d.Dispatch(context.Background(), core.RequestContext{}, []byte(`{"@type":"`+testProtocol+`/public"}`))
	if err != nil || !result.Handled {
		t.Fatalf("expected public entry to run, got %#v %v", result, err)
	}
	if f.calls != 1 {
		t.Fatalf("expected handler call, got %d", f.calls)
	}
}

func TestDispatch_OutboundTypeIsAcceptedWithoutAction(t *testing.T) {
	f, catalogue := newFixture(t)
	d := NewDispatcher(catalogue)

	result, err := d.Dispatch(context.Background(), core.RequestContext{}, []byte(`{"@type":"`+testProtocol+`/result","label":"echo"}`))
	if err != nil {
		t.Fatalf("dispatch outbound: %v", err)
	}
	if !result.Outbound || !result.Handled || result.Dropped {
		t.Fatalf("unexpected outbound result: %#v", result)
	}
	if f.calls != 0 {
		t.Fatalf("outbound type must not trigger handlers")
	}
}

func TestDispatch_UnknownType(t *testing.T) {
	_, catalogue := newFixture(t)
	d := NewDispatcher(catalogue)

	result, err := d.Dispatch(context.Background(), adminRequest(), []byte(`{"@type":"`+testProtocol+`/missing"}`))
	if !registry.IsUnknownMessageType(err) {
		t.Fatalf("expected unknown message type, got %v", err)
	}
	if result.Type != testProtocol+"/missing" || result.Handled {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestDispatch_ValidationFailsBeforeHandler(t *testing.T) {
	f, catalogue := newFixture(t)
	d := NewDispatcher(catalogue)

	_, err := d.Dispatch(context.Background(), adminRequest(), []byte(`{"@type":"`+testProtocol+`/create"}`))
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.Category != goerrors.CategoryValidation {
		t.Fatalf("expected validation envelope, got %v", err)
	}
	if f.calls != 0 {
		t.Fatalf("handler must not run for invalid message")
	}

	if _, err := d.Dispatch(context.Background(), adminRequest(), []byte(`{}`)); err == nil {
		t.Fatalf("expected missing type error")
	}
}

func TestDispatch_WrapsPlainHandlerErrors(t *testing.T) {
	f, catalogue := newFixture(t)
	f.handlerErr = errors.New("ledger unavailable")
	d := NewDispatcher(catalogue)

	_, err := d.Dispatch(context.Background(), adminRequest(), createRaw)
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryOperation || rich.TextCode != core.ErrorCollaboratorFailed {
		t.Fatalf("unexpected classification: %s %s", rich.Category, rich.TextCode)
	}
	if !errors.Is(err, f.handlerErr) {
		t.Fatalf("expected source error to be kept")
	}
	if rich.Metadata["message_type"] != testProtocol+"/create" {
		t.Fatalf("expected message type metadata, got %#v", rich.Metadata)
	}
}

func TestDispatch_KeepsRichHandlerErrors(t *testing.T) {
	f, catalogue := newFixture(t)
	f.handlerErr = core.NewError("store misconfigured", goerrors.CategoryInternal, core.ErrorInternal)
	d := NewDispatcher(catalogue)

	_, err := d.Dispatch(context.Background(), adminRequest(), createRaw)
	if err != f.handlerErr {
		t.Fatalf("expected handler envelope to pass through, got %v", err)
	}
}

func TestDispatch_MiddlewareOrderAndGatePlacement(t *testing.T) {
	f, catalogue := newFixture(t)
	order := []string{}
	trace := func(name string) Middleware {
		return func(next registry.Handler) registry.Handler {
			return func(ctx context.Context, msg message.Message) error {
				order = append(order, name)
				return next(ctx, msg)
			}
		}
	}
	d := NewDispatcher(catalogue, WithMiddleware(trace("outer"), nil, trace("inner")))

	if _, err := d.Dispatch(context.Background(), core.RequestContext{}, createRaw); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Fatalf("unexpected middleware order: %#v", order)
	}
	if f.calls != 0 {
		t.Fatalf("admin gate must still block the handler")
	}
}

func TestDispatch_NilDispatcher(t *testing.T) {
	var d *Dispatcher
	if _, err := d.Dispatch(context.Background(), adminRequest(), createRaw); err == nil {
		t.Fatalf("expected configuration error")
	}
}

package issuer

import (
	"context"

	"github.com/goliatone/go-admin-toolbox/core"
	"github.com/goliatone/go-admin-toolbox/message"
	gocmd "github.com/goliatone/go-command"
	glog "github.com/goliatone/go-logger/glog"
)

type SendCredCommand struct {
	connections core.ConnectionStore
	manager     CredentialExchangeManager
	logger      core.Logger
}

func NewSendCredCommand(
	connections core.ConnectionStore,
	manager CredentialExchangeManager,
	logger core.Logger,
) *SendCredCommand {
	return &SendCredCommand{connections: connections, manager: manager, logger: glog.Ensure(logger)}
}

// Execute offers a credential over a ready connection and replies with the
// new exchange record.
func (c *SendCredCommand) Execute(ctx context.Context, msg SendCred) error {
	if c == nil || c.connections == nil {
		return dependencyError("issuer: connection store is required")
	}
	responder, err := core.ResponderFrom(ctx)
	if err != nil {
		return err
	}
	if _, ok, err := readyConnection(ctx, c.connections, responder, c.logger, msg, msg.ConnectionID); !ok {
		return err
	}
	if c.manager == nil {
		return dependencyError("issuer: credential exchange manager is required")
	}

	proposal := NewCredentialProposal(msg.Comment, msg.CredentialProposal, msg.CredDefTags)
	record, offer, err := c.manager.PrepareSend(ctx, msg.ConnectionID, proposal, SendOptions{
		AutoRemove: msg.AutoRemove,
		Trace:      msg.Trace,
	})
	if err != nil {
		return core.CollaboratorError(err, "issuer: prepare credential offer failed")
	}
	if offer == nil {
		return dependencyError("issuer: credential exchange manager returned no offer")
	}

	target := record.ConnectionID
	if target == "" {
		target = msg.ConnectionID
	}
	if err := responder.Send(ctx, offer, target); err != nil {
		return core.CollaboratorError(err, "issuer: send credential offer failed")
	}

	reply := NewIssuerCredExchange(record)
	reply.AssignThreadFrom(msg)
	storeResult(ctx, reply)
	core.Log(ctx, c.logger, "debug", "credential offer sent", map[string]any{
		"connection_id":          target,
		"credential_exchange_id": record.CredentialExchangeID,
	})
	if err := responder.SendReply(ctx, reply); err != nil {
		return core.CollaboratorError(err, "issuer: send credential exchange reply failed")
	}
	return nil
}

type RequestPresCommand struct {
	connections core.ConnectionStore
	manager     PresentationExchangeManager
	nonce       NonceSource
	logger      core.Logger
}

func NewRequestPresCommand(
	connections core.ConnectionStore,
	manager PresentationExchangeManager,
	logger core.Logger,
) *RequestPresCommand {
	return &RequestPresCommand{
		connections: connections,
		manager:     manager,
		nonce:       NewNonce,
		logger:      glog.Ensure(logger),
	}
}

// Execute sends a proof request over a ready connection. A missing nonce is
// generated before the request is built.
func (c *RequestPresCommand) Execute(ctx context.Context, msg RequestPres) error {
	if c == nil || c.connections == nil {
		return dependencyError("issuer: connection store is required")
	}
	responder, err := core.ResponderFrom(ctx)
	if err != nil {
		return err
	}
	if _, ok, err := readyConnection(ctx, c.connections, responder, c.logger, msg, msg.ConnectionID); !ok {
		return err
	}
	if c.manager == nil {
		return dependencyError("issuer: presentation exchange manager is required")
	}

	proof := ensureNonce(msg.ProofRequest, c.nonce)
	request, err := NewPresentationRequest(msg.Comment, proof)
	if err != nil {
		return wrapInternal(err, "issuer: build presentation request failed")
	}

	record, err := c.manager.CreateExchangeForRequest(ctx, msg.ConnectionID, request)
	if err != nil {
		return core.CollaboratorError(err, "issuer: create presentation exchange failed")
	}
	if err := responder.Send(ctx, request, msg.ConnectionID); err != nil {
		return core.CollaboratorError(err, "issuer: send presentation request failed")
	}

	reply := NewIssuerPresExchange(record)
	reply.AssignThreadFrom(msg)
	storeResult(ctx, reply)
	core.Log(ctx, c.logger, "debug", "presentation request sent", map[string]any{
		"connection_id":            msg.ConnectionID,
		"presentation_exchange_id": record.PresentationExchangeID,
	})
	if err := responder.SendReply(ctx, reply); err != nil {
		return core.CollaboratorError(err, "issuer: send presentation exchange reply failed")
	}
	return nil
}

type CredGetListCommand struct {
	store core.CredentialExchangeStore
}

func NewCredGetListCommand(store core.CredentialExchangeStore) *CredGetListCommand {
	return &CredGetListCommand{store: store}
}

func (c *CredGetListCommand) Execute(ctx context.Context, msg CredGetList) error {
	if c == nil || c.store == nil {
		return dependencyError("issuer: credential exchange store is required")
	}
	responder, err := core.ResponderFrom(ctx)
	if err != nil {
		return err
	}
	records, err := c.store.Query(ctx, core.Filter{}, msg.Filter())
	if err != nil {
		return core.CollaboratorError(err, "issuer: query credential exchanges failed")
	}
	reply := NewCredList(records)
	reply.AssignThreadFrom(msg)
	storeResult(ctx, reply)
	if err := responder.SendReply(ctx, reply); err != nil {
		return core.CollaboratorError(err, "issuer: send credential list failed")
	}
	return nil
}

type PresGetListCommand struct {
	store core.PresentationExchangeStore
}

func NewPresGetListCommand(store core.PresentationExchangeStore) *PresGetListCommand {
	return &PresGetListCommand{store: store}
}

func (c *PresGetListCommand) Execute(ctx context.Context, msg PresGetList) error {
	if c == nil || c.store == nil {
		return dependencyError("issuer: presentation exchange store is required")
	}
	responder, err := core.ResponderFrom(ctx)
	if err != nil {
		return err
	}
	records, err := c.store.Query(ctx, core.Filter{}, msg.Filter())
	if err != nil {
		return core.CollaboratorError(err, "issuer: query presentation exchanges failed")
	}
	reply := NewPresList(records)
	reply.AssignThreadFrom(msg)
	storeResult(ctx, reply)
	if err := responder.SendReply(ctx, reply); err != nil {
		return core.CollaboratorError(err, "issuer: send presentation list failed")
	}
	return nil
}

// readyConnection resolves connectionID and reports to the caller when it is
// missing or not ready. ok is false whenever the handler must stop.
func readyConnection(
	ctx context.Context,
	connections core.ConnectionStore,
	responder core.Responder,
	logger core.Logger,
	request message.Message,
	connectionID string,
) (core.ConnectionRecord, bool, error) {
	record, err := connections.RetrieveByID(ctx, connectionID)
	if err != nil {
		if core.IsNotFound(err) {
			return record, false, reportProblem(ctx, responder, logger, request, connectionID, problemConnectionNotFound)
		}
		return record, false, core.CollaboratorError(err, "issuer: retrieve connection failed")
	}
	if !record.IsReady() {
		return record, false, reportProblem(ctx, responder, logger, request, connectionID, problemConnectionInvalid)
	}
	return record, true, nil
}

func reportProblem(
	ctx context.Context,
	responder core.Responder,
	logger core.Logger,
	request message.Message,
	connectionID string,
	explain string,
) error {
	report := message.NewProblemReport(request, explain, message.WhoRetriesNone)
	core.Log(ctx, logger, "warn", "admin request reported problem", map[string]any{
		"message_type":  request.Type(),
		"connection_id": connectionID,
		"problem":       explain,
	})
	if err := responder.SendReply(ctx, report); err != nil {
		return core.CollaboratorError(err, "issuer: send problem report failed")
	}
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}

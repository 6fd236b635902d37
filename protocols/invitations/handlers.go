package invitations

import (
	"context"

	"github.com/goliatone/go-admin-toolbox/core"
	gocmd "github.com/goliatone/go-command"
	glog "github.com/goliatone/go-logger/glog"
)

type CreateInvitationCommand struct {
	manager core.InvitationManager
	logger  core.Logger
}

func NewCreateInvitationCommand(manager core.InvitationManager, logger core.Logger) *CreateInvitationCommand {
	return &CreateInvitationCommand{manager: manager, logger: glog.Ensure(logger)}
}

// Execute creates the connection and invitation in one collaborator call and
// replies with the summary of what was persisted.
func (c *CreateInvitationCommand) Execute(ctx context.Context, msg CreateInvitation) error {
	if c == nil || c.manager == nil {
		return dependencyError("invitations: invitation manager is required")
	}
	responder, err := core.ResponderFrom(ctx)
	if err != nil {
		return err
	}

	connection, invitation, err := c.manager.CreateInvitation(ctx, core.CreateInvitationInput{
		Label:     msg.Label,
		Alias:     msg.Alias,
		TheirRole: msg.Role,
		Accept:    msg.AcceptMode(),
		MultiUse:  msg.MultiUseRequested(),
	})
	if err != nil {
		return core.CollaboratorError(err, "invitations: create invitation failed")
	}

	reply := NewInvitation(core.ProjectInvitation(connection, invitation))
	reply.AssignThreadFrom(msg)
	storeResult(ctx, reply)
	core.Log(ctx, c.logger, "debug", "invitation created", map[string]any{
		"connection_id": connection.ConnectionID,
		"multi_use":     reply.MultiUse,
		"auto_accept":   reply.AutoAccept,
	})
	if err := responder.SendReply(ctx, reply); err != nil {
		return core.CollaboratorError(err, "invitations: send invitation reply failed")
	}
	return nil
}

type InvitationGetListCommand struct {
	connections core.ConnectionStore
	invitations core.InvitationStore
	logger      core.Logger
}

func NewInvitationGetListCommand(
	connections core.ConnectionStore,
	invitations core.InvitationStore,
	logger core.Logger,
) *InvitationGetListCommand {
	return &InvitationGetListCommand{
		connections: connections,
		invitations: invitations,
		logger:      glog.Ensure(logger),
	}
}

// Execute lists connections still in the invitation state. Connections whose
// invitation cannot be found are left out of the result.
func (c *InvitationGetListCommand) Execute(ctx context.Context, msg InvitationGetList) error {
	if c == nil || c.connections == nil || c.invitations == nil {
		return dependencyError("invitations: connection and invitation stores are required")
	}
	responder, err := core.ResponderFrom(ctx)
	if err != nil {
		return err
	}

	postFilter := core.BuildFilter(core.Fixed("state", core.ConnectionStateInvitation))
	connections, err := c.connections.Query(ctx, core.Filter{}, postFilter)
	if err != nil {
		return core.CollaboratorError(err, "invitations: query connections failed")
	}

	results := make([]Invitation, 0, len(connections))
	for _, connection := range connections {
		invitation, err := c.invitations.RetrieveInvitation(ctx, connection)
		if err != nil {
			if core.IsNotFound(err) {
				core.Log(ctx, c.logger, "debug", "invitation missing for connection", map[string]any{
					"connection_id": connection.ConnectionID,
				})
				continue
			}
			return core.CollaboratorError(err, "invitations: retrieve invitation failed")
		}
		results = append(results, NewInvitation(core.ProjectInvitation(connection, invitation)))
	}

	reply := NewInvitationList(results)
	reply.AssignThreadFrom(msg)
	storeResult(ctx, reply)
	if err := responder.SendReply(ctx, reply); err != nil {
		return core.CollaboratorError(err, "invitations: send invitation list failed")
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

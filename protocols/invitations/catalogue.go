package invitations

import (
	"github.com/goliatone/go-admin-toolbox/core"
	"github.com/goliatone/go-admin-toolbox/registry"
)

// Dependencies are the collaborators the invitation handlers consult.
type Dependencies struct {
	Manager     core.InvitationManager
	Connections core.ConnectionStore
	Invitations core.InvitationStore
	Logger      core.Logger
}

// Entries returns the admin-invitations catalogue.
func Entries(deps Dependencies) []registry.Entry {
	return []registry.Entry{
		registry.Handle[CreateInvitation](NewCreateInvitationCommand(deps.Manager, deps.Logger)),
		registry.Handle[InvitationGetList](NewInvitationGetListCommand(deps.Connections, deps.Invitations, deps.Logger)),
		registry.Outbound[Invitation](),
		registry.Outbound[InvitationList](),
	}
}

func Register(builder *registry.Builder, deps Dependencies) error {
	return builder.Register(Protocol, Entries(deps)...)
}

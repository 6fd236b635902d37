package invitations

import (
	"github.com/goliatone/go-admin-toolbox/message"
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Commander[CreateInvitation]  = (*CreateInvitationCommand)(nil)
	_ gocmd.Commander[InvitationGetList] = (*InvitationGetListCommand)(nil)

	_ message.Message = CreateInvitation{}
	_ message.Message = InvitationGetList{}
	_ message.Message = Invitation{}
	_ message.Message = InvitationList{}
)

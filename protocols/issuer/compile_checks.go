package issuer

import (
	"github.com/goliatone/go-admin-toolbox/message"
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Commander[SendCred]    = (*SendCredCommand)(nil)
	_ gocmd.Commander[RequestPres] = (*RequestPresCommand)(nil)
	_ gocmd.Commander[CredGetList] = (*CredGetListCommand)(nil)
	_ gocmd.Commander[PresGetList] = (*PresGetListCommand)(nil)

	_ message.Message = SendCred{}
	_ message.Message = RequestPres{}
	_ message.Message = IssuerCredExchange{}
	_ message.Message = IssuerPresExchange{}
	_ message.Message = CredList{}
	_ message.Message = PresList{}
	_ message.Message = CredentialProposal{}
	_ message.Message = PresentationRequest{}
)

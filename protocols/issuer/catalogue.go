package issuer

import (
	"github.com/goliatone/go-admin-toolbox/core"
	"github.com/goliatone/go-admin-toolbox/registry"
)

// Dependencies are the collaborators the issuer handlers consult.
type Dependencies struct {
	Connections           core.ConnectionStore
	Credentials           CredentialExchangeManager
	Presentations         PresentationExchangeManager
	CredentialExchanges   core.CredentialExchangeStore
	PresentationExchanges core.PresentationExchangeStore
	Logger                core.Logger
}

// Entries returns the admin-issuer catalogue.
func Entries(deps Dependencies) []registry.Entry {
	return []registry.Entry{
		registry.Handle[SendCred](NewSendCredCommand(deps.Connections, deps.Credentials, deps.Logger)),
		registry.Handle[RequestPres](NewRequestPresCommand(deps.Connections, deps.Presentations, deps.Logger)),
		registry.Handle[CredGetList](NewCredGetListCommand(deps.CredentialExchanges)),
		registry.Handle[PresGetList](NewPresGetListCommand(deps.PresentationExchanges)),
		registry.Outbound[IssuerCredExchange](),
		registry.Outbound[IssuerPresExchange](),
		registry.Outbound[CredList](),
		registry.Outbound[PresList](),
	}
}

func Register(builder *registry.Builder, deps Dependencies) error {
	return builder.Register(Protocol, Entries(deps)...)
}

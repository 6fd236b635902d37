package sqlstore

import "github.com/goliatone/go-admin-toolbox/core"

var (
	_ core.ConnectionStore           = (*ConnectionStore)(nil)
	_ core.InvitationStore           = (*InvitationStore)(nil)
	_ core.InvitationStore           = (*CachedInvitationStore)(nil)
	_ core.CredentialExchangeStore   = (*CredentialExchangeStore)(nil)
	_ core.PresentationExchangeStore = (*PresentationExchangeStore)(nil)
	_ core.StoreProvider             = (*RepositoryFactory)(nil)
	_ core.RepositoryStoreFactory    = (*RepositoryFactory)(nil)
	_ invitationWriter               = (*InvitationStore)(nil)
)

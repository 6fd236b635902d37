package sqlstore

import (
	"github.com/goliatone/go-admin-toolbox/core"
)

func newConnectionRecord(in core.ConnectionRecord) *connectionRecord {
	return &connectionRecord{
		ID:             in.ConnectionID,
		State:          in.State,
		Initiator:      in.Initiator,
		TheirRole:      in.TheirRole,
		TheirLabel:     in.TheirLabel,
		Alias:          in.Alias,
		MyDID:          in.MyDID,
		TheirDID:       in.TheirDID,
		InvitationKey:  in.InvitationKey,
		Accept:         in.Accept,
		InvitationMode: in.InvitationMode,
		RoutingState:   in.RoutingState,
		ErrorMsg:       in.ErrorMsg,
		CreatedAt:      in.CreatedAt.UTC(),
		UpdatedAt:      in.UpdatedAt.UTC(),
	}
}

func (r *connectionRecord) toDomain() core.ConnectionRecord {
	if r == nil {
		return core.ConnectionRecord{}
	}
	return core.ConnectionRecord{
		ConnectionID:   r.ID,
		State:          r.State,
		Initiator:      r.Initiator,
		TheirRole:      r.TheirRole,
		TheirLabel:     r.TheirLabel,
		Alias:          r.Alias,
		MyDID:          r.MyDID,
		TheirDID:       r.TheirDID,
		InvitationKey:  r.InvitationKey,
		Accept:         r.Accept,
		InvitationMode: r.InvitationMode,
		RoutingState:   r.RoutingState,
		ErrorMsg:       r.ErrorMsg,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func newInvitationRecord(connectionID string, in core.Invitation) *invitationRecord {
	return &invitationRecord{
		ID:              in.ID,
		ConnectionID:    connectionID,
		Label:           in.Label,
		DID:             in.DID,
		RecipientKeys:   append([]string{}, in.RecipientKeys...),
		RoutingKeys:     append([]string{}, in.RoutingKeys...),
		ServiceEndpoint: in.ServiceEndpoint,
		ImageURL:        in.ImageURL,
	}
}

func (r *invitationRecord) toDomain() core.Invitation {
	if r == nil {
		return core.Invitation{}
	}
	return core.Invitation{
		ID:              r.ID,
		Label:           r.Label,
		DID:             r.DID,
		RecipientKeys:   append([]string(nil), r.RecipientKeys...),
		RoutingKeys:     append([]string(nil), r.RoutingKeys...),
		ServiceEndpoint: r.ServiceEndpoint,
		ImageURL:        r.ImageURL,
	}
}

func newCredentialExchangeRecord(in core.CredentialExchangeRecord) *credentialExchangeRecord {
	return &credentialExchangeRecord{
		ID:                     in.CredentialExchangeID,
		ConnectionID:           in.ConnectionID,
		ThreadID:               in.ThreadID,
		ParentThreadID:         in.ParentThreadID,
		Initiator:              in.Initiator,
		Role:                   in.Role,
		State:                  in.State,
		CredentialDefinitionID: in.CredentialDefinitionID,
		SchemaID:               in.SchemaID,
		CredentialProposal:     copyAnyMap(in.CredentialProposalDict),
		CredentialOffer:        copyAnyMap(in.CredentialOffer),
		CredentialRequest:      copyAnyMap(in.CredentialRequest),
		Credential:             copyAnyMap(in.Credential),
		CredentialID:           in.CredentialID,
		AutoOffer:              in.AutoOffer,
		AutoIssue:              in.AutoIssue,
		AutoRemove:             in.AutoRemove,
		Trace:                  in.Trace,
		ErrorMsg:               in.ErrorMsg,
		CreatedAt:              in.CreatedAt.UTC(),
		UpdatedAt:              in.UpdatedAt.UTC(),
	}
}

func (r *credentialExchangeRecord) toDomain() core.CredentialExchangeRecord {
	if r == nil {
		return core.CredentialExchangeRecord{}
	}
	return core.CredentialExchangeRecord{
		CredentialExchangeID:   r.ID,
		ConnectionID:           r.ConnectionID,
		ThreadID:               r.ThreadID,
		ParentThreadID:         r.ParentThreadID,
		Initiator:              r.Initiator,
		Role:                   r.Role,
		State:                  r.State,
		CredentialDefinitionID: r.CredentialDefinitionID,
		SchemaID:               r.SchemaID,
		CredentialProposalDict: copyAnyMap(r.CredentialProposal),
		CredentialOffer:        copyAnyMap(r.CredentialOffer),
		CredentialRequest:      copyAnyMap(r.CredentialRequest),
		Credential:             copyAnyMap(r.Credential),
		CredentialID:           r.CredentialID,
		AutoOffer:              r.AutoOffer,
		AutoIssue:              r.AutoIssue,
		AutoRemove:             r.AutoRemove,
		Trace:                  r.Trace,
		ErrorMsg:               r.ErrorMsg,
		CreatedAt:              core.NewTimestamp(r.CreatedAt),
		UpdatedAt:              core.NewTimestamp(r.UpdatedAt),
	}
}

func newPresentationExchangeRecord(in core.PresentationExchangeRecord) *presentationExchangeRecord {
	return &presentationExchangeRecord{
		ID:                   in.PresentationExchangeID,
		ConnectionID:         in.ConnectionID,
		ThreadID:             in.ThreadID,
		Initiator:            in.Initiator,
		Role:                 in.Role,
		State:                in.State,
		PresentationProposal: copyAnyMap(in.PresentationProposalDict),
		PresentationRequest:  copyAnyMap(in.PresentationRequest),
		Presentation:         copyAnyMap(in.Presentation),
		Verified:             in.Verified,
		AutoPresent:          in.AutoPresent,
		Trace:                in.Trace,
		ErrorMsg:             in.ErrorMsg,
		CreatedAt:            in.CreatedAt.UTC(),
		UpdatedAt:            in.UpdatedAt.UTC(),
	}
}

func (r *presentationExchangeRecord) toDomain() core.PresentationExchangeRecord {
	if r == nil {
		return core.PresentationExchangeRecord{}
	}
	return core.PresentationExchangeRecord{
		PresentationExchangeID:   r.ID,
		ConnectionID:             r.ConnectionID,
		ThreadID:                 r.ThreadID,
		Initiator:                r.Initiator,
		Role:                     r.Role,
		State:                    r.State,
		PresentationProposalDict: copyAnyMap(r.PresentationProposal),
		PresentationRequest:      copyAnyMap(r.PresentationRequest),
		Presentation:             copyAnyMap(r.Presentation),
		Verified:                 r.Verified,
		AutoPresent:              r.AutoPresent,
		Trace:                    r.Trace,
		ErrorMsg:                 r.ErrorMsg,
		CreatedAt:                core.NewTimestamp(r.CreatedAt),
		UpdatedAt:                core.NewTimestamp(r.UpdatedAt),
	}
}

func copyAnyMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

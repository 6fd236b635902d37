package issuer

import (
	"context"

	"github.com/goliatone/go-admin-toolbox/core"
)

// SendOptions are pass-through flags for a credential offer.
type SendOptions struct {
	AutoRemove *bool
	Trace      bool
}

// CredentialExchangeManager creates the issuer side of a credential exchange
// and the offer message to send to the holder.
type CredentialExchangeManager interface {
	PrepareSend(
		ctx context.Context,
		connectionID string,
		proposal CredentialProposal,
		opts SendOptions,
	) (core.CredentialExchangeRecord, core.Message, error)
}

// PresentationExchangeManager records a verifier exchange for a
// presentation request that is about to be sent.
type PresentationExchangeManager interface {
	CreateExchangeForRequest(
		ctx context.Context,
		connectionID string,
		request PresentationRequest,
	) (core.PresentationExchangeRecord, error)
}

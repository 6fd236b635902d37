package issuer

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-admin-toolbox/core"
	"github.com/goliatone/go-admin-toolbox/message"
)

const (
	Protocol = "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec/admin-issuer/0.1"

	TypeSendCredential        = Protocol + "/send-credential"
	TypeRequestPresentation   = Protocol + "/request-presentation"
	TypeCredentialExchange    = Protocol + "/credential-exchange"
	TypePresentationExchange  = Protocol + "/presentation-exchange"
	TypeCredentialsGetList    = Protocol + "/credentials-get-list"
	TypeCredentialsList       = Protocol + "/credentials-list"
	TypePresentationsGetList  = Protocol + "/presentations-get-list"
	TypePresentationsList     = Protocol + "/presentations-list"
	problemConnectionNotFound = "Connection not found."
	problemConnectionInvalid  = "Connection invalid."
)

// SendCred asks the agent to offer a credential over a connection.
type SendCred struct {
	message.Header
	ConnectionID       string            `json:"connection_id"`
	CredentialProposal CredentialPreview `json:"credential_proposal"`
	Comment            string            `json:"comment,omitempty"`
	CredDefTags
	AutoRemove *bool `json:"auto_remove,omitempty"`
	Trace      bool  `json:"trace,omitempty"`
}

func (SendCred) Type() string { return TypeSendCredential }

func (m *SendCred) ApplyDefaults() {
	m.CredentialProposal.ApplyDefaults()
}

func (m SendCred) Validate() error {
	return message.Check(validation.ValidateStruct(&m,
		validation.Field(&m.ConnectionID, validation.Required, message.IsUUID),
		validation.Field(&m.CredentialProposal),
	))
}

// RequestPres asks the agent to request a presentation over a connection.
type RequestPres struct {
	message.Header
	ConnectionID string       `json:"connection_id"`
	ProofRequest ProofRequest `json:"proof_request"`
	Comment      string       `json:"comment,omitempty"`
	Trace        bool         `json:"trace,omitempty"`
}

func (RequestPres) Type() string { return TypeRequestPresentation }

func (m *RequestPres) ApplyDefaults() {
	m.ProofRequest.ApplyDefaults()
}

func (m RequestPres) Validate() error {
	return message.Check(validation.ValidateStruct(&m,
		validation.Field(&m.ConnectionID, validation.Required, message.IsUUID),
		validation.Field(&m.ProofRequest),
	))
}

// CredGetList lists issuer credential exchanges. Every field is an optional
// filter; absent fields do not constrain the query.
type CredGetList struct {
	message.Header
	ConnectionID *string `json:"connection_id,omitempty"`
	CredDefID    *string `json:"cred_def_id,omitempty"`
	SchemaID     *string `json:"schema_id,omitempty"`
}

func (CredGetList) Type() string { return TypeCredentialsGetList }

func (m CredGetList) Filter() core.Filter {
	return core.BuildFilter(
		core.Optional("connection_id", m.ConnectionID),
		core.Optional("credential_definition_id", m.CredDefID),
		core.Optional("schema_id", m.SchemaID),
	).With("role", core.RoleIssuer)
}

type PresGetList struct {
	message.Header
	ConnectionID *string `json:"connection_id,omitempty"`
	Verified     *string `json:"verified,omitempty"`
}

func (PresGetList) Type() string { return TypePresentationsGetList }

func (m PresGetList) Filter() core.Filter {
	return core.BuildFilter(
		core.Optional("connection_id", m.ConnectionID),
		core.Optional("verified", m.Verified),
	).With("role", core.RoleVerifier)
}

// IssuerCredExchange carries a credential exchange record to the admin.
type IssuerCredExchange struct {
	message.Header
	core.CredentialExchangeRecord
}

func (IssuerCredExchange) Type() string { return TypeCredentialExchange }

func NewIssuerCredExchange(record core.CredentialExchangeRecord) IssuerCredExchange {
	return IssuerCredExchange{Header: message.NewHeader(TypeCredentialExchange), CredentialExchangeRecord: record}
}

func (m IssuerCredExchange) Validate() error {
	return message.Check(validation.ValidateStruct(&m,
		validation.Field(&m.CredentialExchangeID, validation.Required),
	))
}

type IssuerPresExchange struct {
	message.Header
	core.PresentationExchangeRecord
}

func (IssuerPresExchange) Type() string { return TypePresentationExchange }

func NewIssuerPresExchange(record core.PresentationExchangeRecord) IssuerPresExchange {
	return IssuerPresExchange{Header: message.NewHeader(TypePresentationExchange), PresentationExchangeRecord: record}
}

func (m IssuerPresExchange) Validate() error {
	return message.Check(validation.ValidateStruct(&m,
		validation.Field(&m.PresentationExchangeID, validation.Required),
	))
}

type CredList struct {
	message.Header
	Results []core.CredentialExchangeRecord `json:"results"`
}

func (CredList) Type() string { return TypeCredentialsList }

func NewCredList(results []core.CredentialExchangeRecord) CredList {
	if results == nil {
		results = []core.CredentialExchangeRecord{}
	}
	return CredList{Header: message.NewHeader(TypeCredentialsList), Results: results}
}

type PresList struct {
	message.Header
	Results []core.PresentationExchangeRecord `json:"results"`
}

func (PresList) Type() string { return TypePresentationsList }

func NewPresList(results []core.PresentationExchangeRecord) PresList {
	if results == nil {
		results = []core.PresentationExchangeRecord{}
	}
	return PresList{Header: message.NewHeader(TypePresentationsList), Results: results}
}

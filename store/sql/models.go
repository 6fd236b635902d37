package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type connectionRecord struct {
	bun.BaseModel `bun:"table:toolbox_connections,alias:tc"`

	ID             string    `bun:"id,pk"`
	State          string    `bun:"state,notnull"`
	Initiator      string    `bun:"initiator"`
	TheirRole      string    `bun:"their_role"`
	TheirLabel     string    `bun:"their_label"`
	Alias          string    `bun:"alias"`
	MyDID          string    `bun:"my_did"`
	TheirDID       string    `bun:"their_did"`
	InvitationKey  string    `bun:"invitation_key"`
	Accept         string    `bun:"accept,notnull"`
	InvitationMode string    `bun:"invitation_mode,notnull"`
	RoutingState   string    `bun:"routing_state"`
	ErrorMsg       string    `bun:"error_msg"`
	CreatedAt      time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt      time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type invitationRecord struct {
	bun.BaseModel `bun:"table:toolbox_invitations,alias:ti"`

	ID              string    `bun:"id,pk"`
	ConnectionID    string    `bun:"connection_id,notnull"`
	Label           string    `bun:"label"`
	DID             string    `bun:"did"`
	RecipientKeys   []string  `bun:"recipient_keys,type:jsonb,notnull"`
	RoutingKeys     []string  `bun:"routing_keys,type:jsonb,notnull"`
	ServiceEndpoint string    `bun:"service_endpoint"`
	ImageURL        string    `bun:"image_url"`
	CreatedAt       time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type credentialExchangeRecord struct {
	bun.BaseModel `bun:"table:toolbox_credential_exchanges,alias:tce"`

	ID                     string         `bun:"id,pk"`
	ConnectionID           string         `bun:"connection_id,notnull"`
	ThreadID               string         `bun:"thread_id"`
	ParentThreadID         string         `bun:"parent_thread_id"`
	Initiator              string         `bun:"initiator"`
	Role                   string         `bun:"role,notnull"`
	State                  string         `bun:"state,notnull"`
	CredentialDefinitionID string         `bun:"credential_definition_id"`
	SchemaID               string         `bun:"schema_id"`
	CredentialProposal     map[string]any `bun:"credential_proposal,type:jsonb"`
	CredentialOffer        map[string]any `bun:"credential_offer,type:jsonb"`
	CredentialRequest      map[string]any `bun:"credential_request,type:jsonb"`
	Credential             map[string]any `bun:"credential,type:jsonb"`
	CredentialID           string         `bun:"credential_id"`
	AutoOffer              bool           `bun:"auto_offer,notnull"`
	AutoIssue              bool           `bun:"auto_issue,notnull"`
	AutoRemove             bool           `bun:"auto_remove,notnull"`
	Trace                  bool           `bun:"trace,notnull"`
	ErrorMsg               string         `bun:"error_msg"`
	CreatedAt              time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt              time.Time      `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type presentationExchangeRecord struct {
	bun.BaseModel `bun:"table:toolbox_presentation_exchanges,alias:tpe"`

	ID                   string         `bun:"id,pk"`
	ConnectionID         string         `bun:"connection_id,notnull"`
	ThreadID             string         `bun:"thread_id"`
	Initiator            string         `bun:"initiator"`
	Role                 string         `bun:"role,notnull"`
	State                string         `bun:"state,notnull"`
	PresentationProposal map[string]any `bun:"presentation_proposal,type:jsonb"`
	PresentationRequest  map[string]any `bun:"presentation_request,type:jsonb"`
	Presentation         map[string]any `bun:"presentation,type:jsonb"`
	Verified             string         `bun:"verified"`
	AutoPresent          bool           `bun:"auto_present,notnull"`
	Trace                bool           `bun:"trace,notnull"`
	ErrorMsg             string         `bun:"error_msg"`
	CreatedAt            time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt            time.Time      `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

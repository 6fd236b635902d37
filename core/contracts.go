package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

const (
	ConnectionStateInit       = "init"
	ConnectionStateInvitation = "invitation"
	ConnectionStateRequest    = "request"
	ConnectionStateResponse   = "response"
	ConnectionStateActive     = "active"
	ConnectionStateError      = "error"
	ConnectionStateInactive   = "inactive"

	AcceptAuto   = "auto"
	AcceptManual = "manual"

	InvitationModeOnce   = "once"
	InvitationModeMulti  = "multi"
	InvitationModeStatic = "static"

	InitiatorSelf     = "self"
	InitiatorExternal = "external"

	RoleIssuer   = "issuer"
	RoleHolder   = "holder"
	RoleVerifier = "verifier"
	RoleProver   = "prover"
)

// Message is the minimal outbound contract shared with go-command messages.
type Message interface {
	Type() string
}

type ConnectionRecord struct {
	ConnectionID   string    `json:"connection_id"`
	State          string    `json:"state"`
	Initiator      string    `json:"initiator,omitempty"`
	TheirRole      string    `json:"their_role,omitempty"`
	TheirLabel     string    `json:"their_label,omitempty"`
	Alias          string    `json:"alias,omitempty"`
	MyDID          string    `json:"my_did,omitempty"`
	TheirDID       string    `json:"their_did,omitempty"`
	InvitationKey  string    `json:"invitation_key,omitempty"`
	Accept         string    `json:"accept,omitempty"`
	InvitationMode string    `json:"invitation_mode,omitempty"`
	RoutingState   string    `json:"routing_state,omitempty"`
	ErrorMsg       string    `json:"error_msg,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsReady reports whether messages may be exchanged over the connection.
func (r ConnectionRecord) IsReady() bool {
	return r.State == ConnectionStateActive || r.State == ConnectionStateResponse
}

func (r ConnectionRecord) AutoAccept() bool {
	return r.Accept == AcceptAuto
}

func (r ConnectionRecord) MultiUse() bool {
	return r.InvitationMode == InvitationModeMulti
}

func (r ConnectionRecord) Serialize() map[string]any {
	out := map[string]any{
		"connection_id":   r.ConnectionID,
		"state":           r.State,
		"accept":          r.Accept,
		"invitation_mode": r.InvitationMode,
		"created_at":      FormatTimestamp(r.CreatedAt),
		"updated_at":      FormatTimestamp(r.UpdatedAt),
	}
	putString(out, "initiator", r.Initiator)
	putString(out, "their_role", r.TheirRole)
	putString(out, "their_label", r.TheirLabel)
	putString(out, "alias", r.Alias)
	putString(out, "my_did", r.MyDID)
	putString(out, "their_did", r.TheirDID)
	putString(out, "invitation_key", r.InvitationKey)
	putString(out, "routing_state", r.RoutingState)
	putString(out, "error_msg", r.ErrorMsg)
	return out
}

type CreateInvitationInput struct {
	Label     string
	Alias     string
	TheirRole string
	Accept    string
	MultiUse  bool
	Public    bool
}

type CredentialExchangeRecord struct {
	CredentialExchangeID   string         `json:"credential_exchange_id"`
	ConnectionID           string         `json:"connection_id"`
	ThreadID               string         `json:"thread_id,omitempty"`
	ParentThreadID         string         `json:"parent_thread_id,omitempty"`
	Initiator              string         `json:"initiator,omitempty"`
	Role                   string         `json:"role"`
	State                  string         `json:"state"`
	CredentialDefinitionID string         `json:"credential_definition_id,omitempty"`
	SchemaID               string         `json:"schema_id,omitempty"`
	CredentialProposalDict map[string]any `json:"credential_proposal_dict,omitempty"`
	CredentialOffer        map[string]any `json:"credential_offer,omitempty"`
	CredentialRequest      map[string]any `json:"credential_request,omitempty"`
	Credential             map[string]any `json:"credential,omitempty"`
	CredentialID           string         `json:"credential_id,omitempty"`
	AutoOffer              bool           `json:"auto_offer"`
	AutoIssue              bool           `json:"auto_issue"`
	AutoRemove             bool           `json:"auto_remove"`
	Trace                  bool           `json:"trace"`
	ErrorMsg               string         `json:"error_msg,omitempty"`
	CreatedAt              Timestamp      `json:"created_at"`
	UpdatedAt              Timestamp      `json:"updated_at"`
}

type PresentationExchangeRecord struct {
	PresentationExchangeID   string         `json:"presentation_exchange_id"`
	ConnectionID             string         `json:"connection_id"`
	ThreadID                 string         `json:"thread_id,omitempty"`
	Initiator                string         `json:"initiator,omitempty"`
	Role                     string         `json:"role"`
	State                    string         `json:"state"`
	PresentationProposalDict map[string]any `json:"presentation_proposal_dict,omitempty"`
	PresentationRequest      map[string]any `json:"presentation_request,omitempty"`
	Presentation             map[string]any `json:"presentation,omitempty"`
	Verified                 string         `json:"verified,omitempty"`
	AutoPresent              bool           `json:"auto_present"`
	Trace                    bool           `json:"trace"`
	ErrorMsg                 string         `json:"error_msg,omitempty"`
	CreatedAt                Timestamp      `json:"created_at"`
	UpdatedAt                Timestamp      `json:"updated_at"`
}

type ConnectionStore interface {
	RetrieveByID(ctx context.Context, connectionID string) (ConnectionRecord, error)
	Query(ctx context.Context, tagFilter Filter, postFilter Filter) ([]ConnectionRecord, error)
}

// InvitationStore resolves the invitation a connection was created from.
// Implementations return a not-found error (see IsNotFound) when none exists.
type InvitationStore interface {
	RetrieveInvitation(ctx context.Context, connection ConnectionRecord) (Invitation, error)
}

type InvitationManager interface {
	CreateInvitation(ctx context.Context, in CreateInvitationInput) (ConnectionRecord, Invitation, error)
}

type CredentialExchangeStore interface {
	Query(ctx context.Context, tagFilter Filter, postFilter Filter) ([]CredentialExchangeRecord, error)
}

type PresentationExchangeStore interface {
	Query(ctx context.Context, tagFilter Filter, postFilter Filter) ([]PresentationExchangeRecord, error)
}

// Responder delivers messages built by handlers. Send targets a peer
// connection; SendReply targets the admin caller of the current request.
type Responder interface {
	Send(ctx context.Context, msg Message, connectionID string) error
	SendReply(ctx context.Context, msg Message) error
}

type StoreProvider interface {
	ConnectionStore() ConnectionStore
	InvitationStore() InvitationStore
	CredentialExchangeStore() CredentialExchangeStore
	PresentationExchangeStore() PresentationExchangeStore
}

type RepositoryStoreFactory interface {
	BuildStores(persistenceClient any) (StoreProvider, error)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

func putString(out map[string]any, key string, value string) {
	if value == "" {
		return
	}
	out[key] = value
}

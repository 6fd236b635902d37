package issuer

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-admin-toolbox/message"
)

const (
	IssueCredentialProtocol = "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec/issue-credential/1.0"
	PresentProofProtocol    = "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec/present-proof/1.0"

	TypeCredentialPreview   = IssueCredentialProtocol + "/credential-preview"
	TypeCredentialProposal  = IssueCredentialProtocol + "/credential-proposal"
	TypePresentationRequest = PresentProofProtocol + "/request-presentation"

	// PresentationRequestAttachID identifies the indy proof request attachment.
	PresentationRequestAttachID = "libindy-request-presentation-0"
)

var errMissingProofAttachment = errors.New("issuer: proof request attachment is missing")

// CredAttrSpec is one attribute of a credential preview.
type CredAttrSpec struct {
	Name     string `json:"name"`
	MimeType string `json:"mime-type,omitempty"`
	Value    string `json:"value"`
}

func (a CredAttrSpec) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.Required),
	)
}

type CredentialPreview struct {
	MsgType    string         `json:"@type,omitempty"`
	Attributes []CredAttrSpec `json:"attributes"`
}

func (p *CredentialPreview) ApplyDefaults() {
	if p.MsgType == "" {
		p.MsgType = TypeCredentialPreview
	}
}

func (p CredentialPreview) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.MsgType, validation.In(TypeCredentialPreview)),
		validation.Field(&p.Attributes, validation.Required),
	)
}

// CredDefTags identify the credential definition an offer is built on. Nil
// fields are absent and never copied into a proposal.
type CredDefTags struct {
	SchemaID        *string `json:"schema_id,omitempty"`
	SchemaIssuerDID *string `json:"schema_issuer_did,omitempty"`
	SchemaName      *string `json:"schema_name,omitempty"`
	SchemaVersion   *string `json:"schema_version,omitempty"`
	CredDefID       *string `json:"cred_def_id,omitempty"`
	IssuerDID       *string `json:"issuer_did,omitempty"`
}

// Present returns the tags that carry a value, keyed by wire name.
func (t CredDefTags) Present() map[string]string {
	out := map[string]string{}
	put := func(key string, value *string) {
		if value != nil {
			out[key] = *value
		}
	}
	put("schema_id", t.SchemaID)
	put("schema_issuer_did", t.SchemaIssuerDID)
	put("schema_name", t.SchemaName)
	put("schema_version", t.SchemaVersion)
	put("cred_def_id", t.CredDefID)
	put("issuer_did", t.IssuerDID)
	return out
}

// CredentialProposal is the issue-credential proposal handed to the
// credential exchange manager.
type CredentialProposal struct {
	message.Header
	Comment            string             `json:"comment,omitempty"`
	CredentialProposal *CredentialPreview `json:"credential_proposal,omitempty"`
	CredDefTags
}

func (CredentialProposal) Type() string { return TypeCredentialProposal }

func NewCredentialProposal(comment string, preview CredentialPreview, tags CredDefTags) CredentialProposal {
	preview.ApplyDefaults()
	return CredentialProposal{
		Header:             message.NewHeader(TypeCredentialProposal),
		Comment:            comment,
		CredentialProposal: &preview,
		CredDefTags:        copyTags(tags),
	}
}

func copyTags(tags CredDefTags) CredDefTags {
	clone := func(value *string) *string {
		if value == nil {
			return nil
		}
		v := *value
		return &v
	}
	return CredDefTags{
		SchemaID:        clone(tags.SchemaID),
		SchemaIssuerDID: clone(tags.SchemaIssuerDID),
		SchemaName:      clone(tags.SchemaName),
		SchemaVersion:   clone(tags.SchemaVersion),
		CredDefID:       clone(tags.CredDefID),
		IssuerDID:       clone(tags.IssuerDID),
	}
}

// ProofRequest is an indy proof request.
type ProofRequest struct {
	Name                string                    `json:"name"`
	Version             string                    `json:"version"`
	Nonce               string                    `json:"nonce,omitempty"`
	RequestedAttributes map[string]map[string]any `json:"requested_attributes"`
	RequestedPredicates map[string]map[string]any `json:"requested_predicates"`
	NonRevoked          map[string]any            `json:"non_revoked,omitempty"`
}

func (p *ProofRequest) ApplyDefaults() {
	if p.Name == "" {
		p.Name = "Proof request"
	}
	if p.Version == "" {
		p.Version = "1.0"
	}
}

func (p ProofRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Version, validation.Required),
		validation.Field(&p.Nonce, validation.Match(nonceFormat)),
		validation.Field(&p.RequestedAttributes, validation.NotNil),
		validation.Field(&p.RequestedPredicates, validation.NotNil),
	)
}

// PresentationRequest is the present-proof request sent to the peer.
type PresentationRequest struct {
	message.Header
	Comment                    string               `json:"comment,omitempty"`
	RequestPresentationsAttach []message.Attachment `json:"request_presentations~attach"`
}

func (PresentationRequest) Type() string { return TypePresentationRequest }

func NewPresentationRequest(comment string, proof ProofRequest) (PresentationRequest, error) {
	attachment, err := message.AttachJSON(PresentationRequestAttachID, proof)
	if err != nil {
		return PresentationRequest{}, err
	}
	return PresentationRequest{
		Header:                     message.NewHeader(TypePresentationRequest),
		Comment:                    comment,
		RequestPresentationsAttach: []message.Attachment{attachment},
	}, nil
}

// ProofRequest decodes the attached indy proof request.
func (m PresentationRequest) ProofRequest() (ProofRequest, error) {
	var out ProofRequest
	for _, attachment := range m.RequestPresentationsAttach {
		if attachment.ID != PresentationRequestAttachID {
			continue
		}
		err := attachment.DecodeJSON(&out)
		return out, err
	}
	return out, errMissingProofAttachment
}

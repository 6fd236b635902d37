package invitations

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-admin-toolbox/core"
	"github.com/goliatone/go-admin-toolbox/message"
)

const (
	Protocol = "https://github.com/hyperledger/aries-toolbox/tree/master/docs/admin-invitations/0.1"

	TypeCreateInvitation  = Protocol + "/create"
	TypeInvitationGetList = Protocol + "/get-list"
	TypeInvitation        = Protocol + "/invitation"
	TypeInvitationList    = Protocol + "/list"
)

// CreateInvitation asks the agent for a new connection invitation.
type CreateInvitation struct {
	message.Header
	Label      string `json:"label,omitempty"`
	Alias      string `json:"alias,omitempty"`
	Role       string `json:"role,omitempty"`
	AutoAccept *bool  `json:"auto_accept,omitempty"`
	MultiUse   *bool  `json:"multi_use,omitempty"`
}

func (CreateInvitation) Type() string { return TypeCreateInvitation }

func (m *CreateInvitation) ApplyDefaults() {
	if m.AutoAccept == nil {
		m.AutoAccept = boolPtr(false)
	}
	if m.MultiUse == nil {
		m.MultiUse = boolPtr(false)
	}
}

func (m CreateInvitation) Validate() error {
	return message.Check(validation.ValidateStruct(&m,
		validation.Field(&m.Label, validation.Length(0, 256)),
		validation.Field(&m.Alias, validation.Length(0, 256)),
		validation.Field(&m.Role, validation.Length(0, 64)),
		validation.Field(&m.AutoAccept, validation.NotNil),
		validation.Field(&m.MultiUse, validation.NotNil),
	))
}

// AcceptMode maps the auto_accept flag onto a connection accept mode.
func (m CreateInvitation) AcceptMode() string {
	if m.AutoAccept != nil && *m.AutoAccept {
		return core.AcceptAuto
	}
	return core.AcceptManual
}

func (m CreateInvitation) MultiUseRequested() bool {
	return m.MultiUse != nil && *m.MultiUse
}

type InvitationGetList struct {
	message.Header
}

func (InvitationGetList) Type() string { return TypeInvitationGetList }

// Invitation is the result form of an invitation summary.
type Invitation struct {
	message.Header
	InvitationID  string         `json:"id"`
	Label         string         `json:"label,omitempty"`
	Alias         string         `json:"alias,omitempty"`
	Role          string         `json:"role,omitempty"`
	AutoAccept    bool           `json:"auto_accept"`
	MultiUse      bool           `json:"multi_use"`
	InvitationURL string         `json:"invitation_url"`
	CreatedDate   string         `json:"created_date,omitempty"`
	RawRepr       map[string]any `json:"raw_repr,omitempty"`
}

func (Invitation) Type() string { return TypeInvitation }

func NewInvitation(summary core.InvitationSummary) Invitation {
	return Invitation{
		Header:        message.NewHeader(TypeInvitation),
		InvitationID:  summary.ID,
		Label:         summary.Label,
		Alias:         summary.Alias,
		Role:          summary.Role,
		AutoAccept:    summary.AutoAccept,
		MultiUse:      summary.MultiUse,
		InvitationURL: summary.InvitationURL,
		CreatedDate:   summary.CreatedDate,
		RawRepr:       summary.RawRepr,
	}
}

func (m Invitation) Validate() error {
	return message.Check(validation.ValidateStruct(&m,
		validation.Field(&m.InvitationID, validation.Required),
		validation.Field(&m.InvitationURL, validation.Required),
		validation.Field(&m.CreatedDate, message.IsISO8601),
	))
}

type InvitationList struct {
	message.Header
	Results []Invitation `json:"results"`
}

func (InvitationList) Type() string { return TypeInvitationList }

func NewInvitationList(results []Invitation) InvitationList {
	if results == nil {
		results = []Invitation{}
	}
	return InvitationList{Header: message.NewHeader(TypeInvitationList), Results: results}
}

func (m InvitationList) Validate() error {
	return message.Check(validation.ValidateStruct(&m,
		validation.Field(&m.Results),
	))
}

func boolPtr(value bool) *bool {
	return &value
}

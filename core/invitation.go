package core

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"
	"time"
)

const InvitationMessageType = "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec/connections/1.0/invitation"

// Invitation is the connection invitation created alongside a connection
// record. The core only reads it; creation belongs to the InvitationManager.
type Invitation struct {
	ID              string   `json:"@id"`
	Label           string   `json:"label,omitempty"`
	DID             string   `json:"did,omitempty"`
	RecipientKeys   []string `json:"recipientKeys,omitempty"`
	RoutingKeys     []string `json:"routingKeys,omitempty"`
	ServiceEndpoint string   `json:"serviceEndpoint,omitempty"`
	ImageURL        string   `json:"imageUrl,omitempty"`
}

func (i Invitation) Serialize() map[string]any {
	out := map[string]any{
		"@type": InvitationMessageType,
		"@id":   i.ID,
	}
	putString(out, "label", i.Label)
	putString(out, "did", i.DID)
	putString(out, "serviceEndpoint", i.ServiceEndpoint)
	putString(out, "imageUrl", i.ImageURL)
	if len(i.RecipientKeys) > 0 {
		out["recipientKeys"] = append([]string(nil), i.RecipientKeys...)
	}
	if len(i.RoutingKeys) > 0 {
		out["routingKeys"] = append([]string(nil), i.RoutingKeys...)
	}
	return out
}

// ToURL renders the invitation as `<endpoint>?c_i=<base64url(json)>`.
func (i Invitation) ToURL() string {
	raw, err := json.Marshal(i.Serialize())
	if err != nil {
		return ""
	}
	encoded := base64.URLEncoding.EncodeToString(raw)
	endpoint := strings.TrimSpace(i.ServiceEndpoint)
	query := url.Values{"c_i": []string{encoded}}.Encode()
	if endpoint == "" {
		return "?" + query
	}
	if strings.Contains(endpoint, "?") {
		return endpoint + "&" + query
	}
	return endpoint + "?" + query
}

// InvitationSummary is the wire projection of a connection/invitation pair.
type InvitationSummary struct {
	ID            string         `json:"id"`
	Label         string         `json:"label,omitempty"`
	Alias         string         `json:"alias,omitempty"`
	Role          string         `json:"role,omitempty"`
	AutoAccept    bool           `json:"auto_accept"`
	MultiUse      bool           `json:"multi_use"`
	InvitationURL string         `json:"invitation_url"`
	CreatedDate   string         `json:"created_date,omitempty"`
	RawRepr       map[string]any `json:"raw_repr,omitempty"`
}

// ProjectInvitation builds the summary from the persisted records. Accept and
// invitation modes are read from the connection, never from a request.
func ProjectInvitation(connection ConnectionRecord, invitation Invitation) InvitationSummary {
	return InvitationSummary{
		ID:            connection.ConnectionID,
		Label:         invitation.Label,
		Alias:         connection.Alias,
		Role:          connection.TheirRole,
		AutoAccept:    connection.AutoAccept(),
		MultiUse:      connection.MultiUse(),
		InvitationURL: invitation.ToURL(),
		CreatedDate:   FormatTimestamp(connection.CreatedAt),
		RawRepr: map[string]any{
			"connection": connection.Serialize(),
			"invitation": invitation.Serialize(),
		},
	}
}

// TimestampLayout is the ISO-8601 form used on the wire for record dates.
const TimestampLayout = "2006-01-02 15:04:05.000000Z"

func FormatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(TimestampLayout)
}

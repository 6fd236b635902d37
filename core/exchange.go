package core

import (
	"encoding/json"
)

// Serialize mirrors the record in its wire form.
func (r CredentialExchangeRecord) Serialize() map[string]any {
	return wireMap(r)
}

func (r CredentialExchangeRecord) FilterFields() map[string]string {
	return map[string]string{
		"credential_exchange_id":   r.CredentialExchangeID,
		"connection_id":            r.ConnectionID,
		"thread_id":                r.ThreadID,
		"initiator":                r.Initiator,
		"role":                     r.Role,
		"state":                    r.State,
		"credential_definition_id": r.CredentialDefinitionID,
		"schema_id":                r.SchemaID,
	}
}

func (r PresentationExchangeRecord) Serialize() map[string]any {
	return wireMap(r)
}

func (r PresentationExchangeRecord) FilterFields() map[string]string {
	return map[string]string{
		"presentation_exchange_id": r.PresentationExchangeID,
		"connection_id":            r.ConnectionID,
		"thread_id":                r.ThreadID,
		"initiator":                r.Initiator,
		"role":                     r.Role,
		"state":                    r.State,
		"verified":                 r.Verified,
	}
}

func (r ConnectionRecord) FilterFields() map[string]string {
	return map[string]string{
		"connection_id":   r.ConnectionID,
		"state":           r.State,
		"initiator":       r.Initiator,
		"their_role":      r.TheirRole,
		"alias":           r.Alias,
		"accept":          r.Accept,
		"invitation_mode": r.InvitationMode,
		"invitation_key":  r.InvitationKey,
	}
}

func wireMap(value any) map[string]any {
	raw, err := json.Marshal(value)
	if err != nil {
		return map[string]any{}
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]any{}
	}
	return out
}

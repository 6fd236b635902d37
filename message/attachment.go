package message

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

type AttachmentData struct {
	Base64 string `json:"base64,omitempty"`
}

// Attachment is the `~attach` decorator entry.
type Attachment struct {
	ID       string         `json:"@id"`
	MimeType string         `json:"mime-type,omitempty"`
	Data     AttachmentData `json:"data"`
}

// AttachJSON embeds value as a base64 encoded JSON attachment.
func AttachJSON(id string, value any) (Attachment, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return Attachment{}, fmt.Errorf("message: encode attachment %q: %w", id, err)
	}
	return Attachment{
		ID:       id,
		MimeType: "application/json",
		Data:     AttachmentData{Base64: base64.StdEncoding.EncodeToString(raw)},
	}, nil
}

// DecodeJSON decodes the attachment payload into out.
func (a Attachment) DecodeJSON(out any) error {
	raw, err := base64.StdEncoding.DecodeString(a.Data.Base64)
	if err != nil {
		raw, err = base64.URLEncoding.DecodeString(a.Data.Base64)
		if err != nil {
			return fmt.Errorf("message: decode attachment %q: %w", a.ID, err)
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("message: decode attachment %q: %w", a.ID, err)
	}
	return nil
}

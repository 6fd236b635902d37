package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Timestamp is a record date that travels as TimestampLayout. The zero value
// encodes as an empty string.
type Timestamp struct {
	time.Time
}

func NewTimestamp(value time.Time) Timestamp {
	if value.IsZero() {
		return Timestamp{}
	}
	return Timestamp{Time: value.UTC()}
}

func (t Timestamp) String() string {
	return FormatTimestamp(t.Time)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatTimestamp(t.Time))
}

// UnmarshalJSON accepts TimestampLayout and RFC 3339.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("core: timestamp must be a string: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*t = Timestamp{}
		return nil
	}
	for _, layout := range []string{TimestampLayout, time.RFC3339Nano} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			*t = NewTimestamp(parsed)
			return nil
		}
	}
	return fmt.Errorf("core: timestamp %q is not in %q form", raw, TimestampLayout)
}

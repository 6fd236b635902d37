package sqlstore

import (
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

func connectionHandlers() repository.ModelHandlers[*connectionRecord] {
	return repository.ModelHandlers[*connectionRecord]{
		NewRecord: func() *connectionRecord {
			return &connectionRecord{}
		},
		GetID: func(record *connectionRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *connectionRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *connectionRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func invitationHandlers() repository.ModelHandlers[*invitationRecord] {
	return repository.ModelHandlers[*invitationRecord]{
		NewRecord: func() *invitationRecord {
			return &invitationRecord{}
		},
		GetID: func(record *invitationRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *invitationRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "connection_id"
		},
		GetIdentifierValue: func(record *invitationRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ConnectionID)
		},
	}
}

func credentialExchangeHandlers() repository.ModelHandlers[*credentialExchangeRecord] {
	return repository.ModelHandlers[*credentialExchangeRecord]{
		NewRecord: func() *credentialExchangeRecord {
			return &credentialExchangeRecord{}
		},
		GetID: func(record *credentialExchangeRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *credentialExchangeRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *credentialExchangeRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func presentationExchangeHandlers() repository.ModelHandlers[*presentationExchangeRecord] {
	return repository.ModelHandlers[*presentationExchangeRecord]{
		NewRecord: func() *presentationExchangeRecord {
			return &presentationExchangeRecord{}
		},
		GetID: func(record *presentationExchangeRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *presentationExchangeRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *presentationExchangeRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}

package sqlstore

import (
	"fmt"

	"github.com/goliatone/go-admin-toolbox/core"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
)

// Filterable columns per record kind, keyed by wire field name.
var (
	connectionColumns = map[string]string{
		"connection_id":   "id",
		"state":           "state",
		"initiator":       "initiator",
		"their_role":      "their_role",
		"alias":           "alias",
		"accept":          "accept",
		"invitation_mode": "invitation_mode",
		"invitation_key":  "invitation_key",
	}
	credentialExchangeColumns = map[string]string{
		"credential_exchange_id":   "id",
		"connection_id":            "connection_id",
		"thread_id":                "thread_id",
		"initiator":                "initiator",
		"role":                     "role",
		"state":                    "state",
		"credential_definition_id": "credential_definition_id",
		"schema_id":                "schema_id",
	}
	presentationExchangeColumns = map[string]string{
		"presentation_exchange_id": "id",
		"connection_id":            "connection_id",
		"thread_id":                "thread_id",
		"initiator":                "initiator",
		"role":                     "role",
		"state":                    "state",
		"verified":                 "verified",
	}
)

// filterSelectors turns tag and post filters into equality criteria. Keys
// outside columns are rejected rather than ignored.
func filterSelectors(kind string, columns map[string]string, filters ...core.Filter) ([]repository.SelectCriteria, error) {
	selectors := []repository.SelectCriteria{}
	for _, filter := range filters {
		for _, key := range filter.Keys() {
			column, ok := columns[key]
			if !ok {
				return nil, core.NewError(
					fmt.Sprintf("sqlstore: %s cannot be filtered by %q", kind, key),
					goerrors.CategoryBadInput,
					core.ErrorBadInput,
				)
			}
			selectors = append(selectors, repository.SelectBy(column, "=", filter[key]))
		}
	}
	selectors = append(selectors, repository.OrderBy("created_at ASC"))
	return selectors, nil
}

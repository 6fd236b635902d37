package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-admin-toolbox/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// InvitationStore keeps the invitation each connection was created from.
type InvitationStore struct {
	db   *bun.DB
	repo repository.Repository[*invitationRecord]
	// invalidate drops cached reads for a connection after a write.
	invalidate func(ctx context.Context, connectionID string) error
}

func (s *InvitationStore) RetrieveInvitation(ctx context.Context, connection core.ConnectionRecord) (core.Invitation, error) {
	if s == nil || s.db == nil {
		return core.Invitation{}, fmt.Errorf("sqlstore: invitation store is not configured")
	}
	connectionID := strings.TrimSpace(connection.ConnectionID)
	record := &invitationRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.connection_id = ?", connectionID).
		OrderExpr("?TableAlias.created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Invitation{}, core.NotFoundError(
				core.ErrInvitationNotFound,
				fmt.Sprintf("sqlstore: invitation for connection %q not found", connectionID),
			)
		}
		return core.Invitation{}, err
	}
	return record.toDomain(), nil
}

// Save stores invitation against connectionID, replacing any invitation with
// the same id.
func (s *InvitationStore) Save(ctx context.Context, connectionID string, invitation core.Invitation) (core.Invitation, error) {
	if s == nil || s.db == nil || s.repo == nil {
		return core.Invitation{}, fmt.Errorf("sqlstore: invitation store is not configured")
	}
	connectionID = strings.TrimSpace(connectionID)
	if connectionID == "" {
		return core.Invitation{}, fmt.Errorf("sqlstore: invitation connection id is required")
	}
	if strings.TrimSpace(invitation.ID) == "" {
		invitation.ID = uuid.NewString()
	}
	record := newInvitationRecord(connectionID, invitation)
	record.CreatedAt = time.Now().UTC()
	if err := saveRecord(ctx, s.db, record, record.ID); err != nil {
		return core.Invitation{}, err
	}
	if s.invalidate != nil {
		if err := s.invalidate(ctx, connectionID); err != nil {
			return core.Invitation{}, fmt.Errorf("sqlstore: invalidate cached invitation: %w", err)
		}
	}
	return record.toDomain(), nil
}

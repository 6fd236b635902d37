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

type ConnectionStore struct {
	db   *bun.DB
	repo repository.Repository[*connectionRecord]
}

func (s *ConnectionStore) RetrieveByID(ctx context.Context, connectionID string) (core.ConnectionRecord, error) {
	if s == nil || s.db == nil {
		return core.ConnectionRecord{}, fmt.Errorf("sqlstore: connection store is not configured")
	}
	trimmed := strings.TrimSpace(connectionID)
	if trimmed == "" {
		return core.ConnectionRecord{}, core.NotFoundError(core.ErrConnectionNotFound, "sqlstore: connection id is required")
	}
	record := &connectionRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", trimmed).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.ConnectionRecord{}, core.NotFoundError(
				core.ErrConnectionNotFound,
				fmt.Sprintf("sqlstore: connection %q not found", trimmed),
			)
		}
		return core.ConnectionRecord{}, err
	}
	return record.toDomain(), nil
}

func (s *ConnectionStore) Query(ctx context.Context, tagFilter core.Filter, postFilter core.Filter) ([]core.ConnectionRecord, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: connection store is not configured")
	}
	selectors, err := filterSelectors("connection", connectionColumns, tagFilter, postFilter)
	if err != nil {
		return nil, err
	}
	records, _, err := s.repo.List(ctx, selectors...)
	if err != nil {
		return nil, err
	}
	out := make([]core.ConnectionRecord, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

// Save inserts or replaces a connection record. A blank id is assigned.
func (s *ConnectionStore) Save(ctx context.Context, in core.ConnectionRecord) (core.ConnectionRecord, error) {
	if s == nil || s.db == nil {
		return core.ConnectionRecord{}, fmt.Errorf("sqlstore: connection store is not configured")
	}
	if strings.TrimSpace(in.State) == "" {
		return core.ConnectionRecord{}, fmt.Errorf("sqlstore: connection state is required")
	}
	if strings.TrimSpace(in.ConnectionID) == "" {
		in.ConnectionID = uuid.NewString()
	}
	if in.Accept == "" {
		in.Accept = core.AcceptManual
	}
	if in.InvitationMode == "" {
		in.InvitationMode = core.InvitationModeOnce
	}
	now := time.Now().UTC()
	if in.CreatedAt.IsZero() {
		in.CreatedAt = now
	}
	in.UpdatedAt = now

	record := newConnectionRecord(in)
	if err := saveRecord(ctx, s.db, record, record.ID); err != nil {
		return core.ConnectionRecord{}, err
	}
	return record.toDomain(), nil
}

// saveRecord inserts record, or updates it in place when id already exists.
func saveRecord[T any](ctx context.Context, db *bun.DB, record *T, id string) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*T)(nil)).
			Where("?TableAlias.id = ?", id).
			Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			_, err = tx.NewInsert().Model(record).Exec(ctx)
			return err
		}
		_, err = tx.NewUpdate().Model(record).WherePK().Exec(ctx)
		return err
	})
}

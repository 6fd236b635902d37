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

type CredentialExchangeStore struct {
	db   *bun.DB
	repo repository.Repository[*credentialExchangeRecord]
}

func (s *CredentialExchangeStore) Query(
	ctx context.Context,
	tagFilter core.Filter,
	postFilter core.Filter,
) ([]core.CredentialExchangeRecord, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: credential exchange store is not configured")
	}
	selectors, err := filterSelectors("credential exchange", credentialExchangeColumns, tagFilter, postFilter)
	if err != nil {
		return nil, err
	}
	records, _, err := s.repo.List(ctx, selectors...)
	if err != nil {
		return nil, err
	}
	out := make([]core.CredentialExchangeRecord, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

func (s *CredentialExchangeStore) RetrieveByID(ctx context.Context, id string) (core.CredentialExchangeRecord, error) {
	if s == nil || s.db == nil {
		return core.CredentialExchangeRecord{}, fmt.Errorf("sqlstore: credential exchange store is not configured")
	}
	record := &credentialExchangeRecord{}
	if err := retrieveByID(ctx, s.db, record, id); err != nil {
		return core.CredentialExchangeRecord{}, err
	}
	return record.toDomain(), nil
}

func (s *CredentialExchangeStore) Save(ctx context.Context, in core.CredentialExchangeRecord) (core.CredentialExchangeRecord, error) {
	if s == nil || s.db == nil {
		return core.CredentialExchangeRecord{}, fmt.Errorf("sqlstore: credential exchange store is not configured")
	}
	if strings.TrimSpace(in.ConnectionID) == "" {
		return core.CredentialExchangeRecord{}, fmt.Errorf("sqlstore: credential exchange connection id is required")
	}
	if strings.TrimSpace(in.CredentialExchangeID) == "" {
		in.CredentialExchangeID = uuid.NewString()
	}
	in.CreatedAt, in.UpdatedAt = stamp(in.CreatedAt)

	record := newCredentialExchangeRecord(in)
	if err := saveRecord(ctx, s.db, record, record.ID); err != nil {
		return core.CredentialExchangeRecord{}, err
	}
	return record.toDomain(), nil
}

type PresentationExchangeStore struct {
	db   *bun.DB
	repo repository.Repository[*presentationExchangeRecord]
}

func (s *PresentationExchangeStore) Query(
	ctx context.Context,
	tagFilter core.Filter,
	postFilter core.Filter,
) ([]core.PresentationExchangeRecord, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: presentation exchange store is not configured")
	}
	selectors, err := filterSelectors("presentation exchange", presentationExchangeColumns, tagFilter, postFilter)
	if err != nil {
		return nil, err
	}
	records, _, err := s.repo.List(ctx, selectors...)
	if err != nil {
		return nil, err
	}
	out := make([]core.PresentationExchangeRecord, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

func (s *PresentationExchangeStore) RetrieveByID(ctx context.Context, id string) (core.PresentationExchangeRecord, error) {
	if s == nil || s.db == nil {
		return core.PresentationExchangeRecord{}, fmt.Errorf("sqlstore: presentation exchange store is not configured")
	}
	record := &presentationExchangeRecord{}
	if err := retrieveByID(ctx, s.db, record, id); err != nil {
		return core.PresentationExchangeRecord{}, err
	}
	return record.toDomain(), nil
}

func (s *PresentationExchangeStore) Save(ctx context.Context, in core.PresentationExchangeRecord) (core.PresentationExchangeRecord, error) {
	if s == nil || s.db == nil {
		return core.PresentationExchangeRecord{}, fmt.Errorf("sqlstore: presentation exchange store is not configured")
	}
	if strings.TrimSpace(in.ConnectionID) == "" {
		return core.PresentationExchangeRecord{}, fmt.Errorf("sqlstore: presentation exchange connection id is required")
	}
	if strings.TrimSpace(in.PresentationExchangeID) == "" {
		in.PresentationExchangeID = uuid.NewString()
	}
	in.CreatedAt, in.UpdatedAt = stamp(in.CreatedAt)

	record := newPresentationExchangeRecord(in)
	if err := saveRecord(ctx, s.db, record, record.ID); err != nil {
		return core.PresentationExchangeRecord{}, err
	}
	return record.toDomain(), nil
}

func retrieveByID(ctx context.Context, db *bun.DB, model any, id string) error {
	trimmed := strings.TrimSpace(id)
	err := db.NewSelect().
		Model(model).
		Where("?TableAlias.id = ?", trimmed).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return core.NotFoundError(core.ErrRecordNotFound, fmt.Sprintf("sqlstore: record %q not found", trimmed))
	}
	return err
}

func stamp(createdAt core.Timestamp) (core.Timestamp, core.Timestamp) {
	now := core.NewTimestamp(time.Now())
	if createdAt.IsZero() {
		createdAt = now
	}
	return createdAt, now
}

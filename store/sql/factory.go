package sqlstore

import (
	"context"
	"fmt"

	"github.com/goliatone/go-admin-toolbox/core"
	persistence "github.com/goliatone/go-persistence-bun"
	repository "github.com/goliatone/go-repository-bun"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

type RepositoryFactory struct {
	db    *bun.DB
	cache repositorycache.CacheService

	connectionStore           *ConnectionStore
	invitationStore           *InvitationStore
	cachedInvitationStore     *CachedInvitationStore
	credentialExchangeStore   *CredentialExchangeStore
	presentationExchangeStore *PresentationExchangeStore
}

type FactoryOption func(*RepositoryFactory)

// WithInvitationCache serves invitation reads through cacheService.
func WithInvitationCache(cacheService repositorycache.CacheService) FactoryOption {
	return func(f *RepositoryFactory) {
		f.cache = cacheService
	}
}

func NewRepositoryFactory(opts ...FactoryOption) *RepositoryFactory {
	factory := &RepositoryFactory{}
	for _, opt := range opts {
		if opt != nil {
			opt(factory)
		}
	}
	return factory
}

func NewRepositoryFactoryFromPersistence(client *persistence.Client, opts ...FactoryOption) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory(opts...)
	if _, err := factory.BuildStores(client); err != nil {
		return nil, err
	}
	return factory, nil
}

func NewRepositoryFactoryFromDB(db *bun.DB, opts ...FactoryOption) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory(opts...)
	if _, err := factory.BuildStores(db); err != nil {
		return nil, err
	}
	return factory, nil
}

// NewRepositoryFactoryFromConfig opens cfg.Storage and, when
// cfg.Cache.InvitationTTL is positive, serves invitation reads through an
// in-process cache. The schema is migrated only when cfg.Storage.AutoMigrate
// is set.
func NewRepositoryFactoryFromConfig(ctx context.Context, cfg core.Config, opts ...FactoryOption) (*RepositoryFactory, error) {
	db, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	if cfg.Cache.InvitationTTL > 0 {
		cacheConfig := repositorycache.DefaultConfig()
		cacheConfig.TTL = cfg.Cache.InvitationTTL
		cacheService, cacheErr := repositorycache.NewCacheService(cacheConfig)
		if cacheErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlstore: build invitation cache: %w", cacheErr)
		}
		opts = append([]FactoryOption{WithInvitationCache(cacheService)}, opts...)
	}
	factory, err := NewRepositoryFactoryFromDB(db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return factory, nil
}

func (f *RepositoryFactory) BuildStores(persistenceClient any) (core.StoreProvider, error) {
	if f == nil {
		return nil, fmt.Errorf("sqlstore: repository factory is nil")
	}
	if f.db == nil {
		db, err := resolveBunDB(persistenceClient)
		if err != nil {
			return nil, err
		}
		f.db = db
	}
	if f.connectionStore != nil && f.invitationStore != nil {
		return f, nil
	}
	if err := f.initStores(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *RepositoryFactory) ConnectionStore() core.ConnectionStore {
	if f == nil || f.connectionStore == nil {
		return nil
	}
	return f.connectionStore
}

// InvitationStore returns the cached store when a cache is configured.
func (f *RepositoryFactory) InvitationStore() core.InvitationStore {
	if f == nil {
		return nil
	}
	if f.cachedInvitationStore != nil {
		return f.cachedInvitationStore
	}
	if f.invitationStore == nil {
		return nil
	}
	return f.invitationStore
}

func (f *RepositoryFactory) CredentialExchangeStore() core.CredentialExchangeStore {
	if f == nil || f.credentialExchangeStore == nil {
		return nil
	}
	return f.credentialExchangeStore
}

func (f *RepositoryFactory) PresentationExchangeStore() core.PresentationExchangeStore {
	if f == nil || f.presentationExchangeStore == nil {
		return nil
	}
	return f.presentationExchangeStore
}

// Connections exposes the concrete store for hosts that write records.
func (f *RepositoryFactory) Connections() *ConnectionStore {
	if f == nil {
		return nil
	}
	return f.connectionStore
}

// Invitations is the writer for invitation records. Saves through it drop the
// cached read for the connection when a cache is configured.
func (f *RepositoryFactory) Invitations() *InvitationStore {
	if f == nil {
		return nil
	}
	return f.invitationStore
}

func (f *RepositoryFactory) CredentialExchanges() *CredentialExchangeStore {
	if f == nil {
		return nil
	}
	return f.credentialExchangeStore
}

func (f *RepositoryFactory) PresentationExchanges() *PresentationExchangeStore {
	if f == nil {
		return nil
	}
	return f.presentationExchangeStore
}

func (f *RepositoryFactory) DB() *bun.DB {
	if f == nil {
		return nil
	}
	return f.db
}

func (f *RepositoryFactory) initStores() error {
	connectionRepo := repository.NewRepository[*connectionRecord](f.db, connectionHandlers())
	if err := validateRepository("connection", connectionRepo); err != nil {
		return err
	}
	invitationRepo := repository.NewRepository[*invitationRecord](f.db, invitationHandlers())
	if err := validateRepository("invitation", invitationRepo); err != nil {
		return err
	}
	credentialRepo := repository.NewRepository[*credentialExchangeRecord](f.db, credentialExchangeHandlers())
	if err := validateRepository("credential exchange", credentialRepo); err != nil {
		return err
	}
	presentationRepo := repository.NewRepository[*presentationExchangeRecord](f.db, presentationExchangeHandlers())
	if err := validateRepository("presentation exchange", presentationRepo); err != nil {
		return err
	}

	f.connectionStore = &ConnectionStore{db: f.db, repo: connectionRepo}
	f.invitationStore = &InvitationStore{db: f.db, repo: invitationRepo}
	f.credentialExchangeStore = &CredentialExchangeStore{db: f.db, repo: credentialRepo}
	f.presentationExchangeStore = &PresentationExchangeStore{db: f.db, repo: presentationRepo}

	if f.cache != nil {
		cached, err := NewCachedInvitationStore(f.invitationStore, f.cache)
		if err != nil {
			return err
		}
		f.cachedInvitationStore = cached
		f.invitationStore.invalidate = cached.Invalidate
	}
	return nil
}

func validateRepository(kind string, repo any) error {
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("sqlstore: invalid %s repository wiring: %w", kind, err)
		}
	}
	return nil
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}

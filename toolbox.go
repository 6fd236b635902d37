package toolbox

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-admin-toolbox/core"
	"github.com/goliatone/go-admin-toolbox/dispatch"
	"github.com/goliatone/go-admin-toolbox/protocols/invitations"
	"github.com/goliatone/go-admin-toolbox/protocols/issuer"
	"github.com/goliatone/go-admin-toolbox/registry"
	sqlstore "github.com/goliatone/go-admin-toolbox/store/sql"
	goerrors "github.com/goliatone/go-errors"
)

const loggerName = "admin-toolbox"

type Config = core.Config

type RequestContext = core.RequestContext

type Result = dispatch.Result

type Option func(*builder)

type builder struct {
	runtimeConfig     Config
	logger            core.Logger
	loggerProvider    core.LoggerProvider
	configProvider    core.ConfigProvider
	optionsResolver   core.OptionsResolver
	persistenceClient any
	repositoryFactory any
	stores            core.StoreProvider
	invitationManager core.InvitationManager
	credentials       issuer.CredentialExchangeManager
	presentations     issuer.PresentationExchangeManager
	middleware        []dispatch.Middleware
}

func WithLogger(logger core.Logger) Option {
	return func(b *builder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(b *builder) {
		b.loggerProvider = provider
	}
}

func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(b *builder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(b *builder) {
		b.optionsResolver = resolver
	}
}

func WithPersistenceClient(client any) Option {
	return func(b *builder) {
		b.persistenceClient = client
	}
}

// WithRepositoryFactory accepts a core.RepositoryStoreFactory, built against
// the persistence client, or a ready core.StoreProvider.
func WithRepositoryFactory(factory any) Option {
	return func(b *builder) {
		b.repositoryFactory = factory
	}
}

func WithStores(stores core.StoreProvider) Option {
	return func(b *builder) {
		b.stores = stores
	}
}

func WithInvitationManager(manager core.InvitationManager) Option {
	return func(b *builder) {
		b.invitationManager = manager
	}
}

func WithCredentialManager(manager issuer.CredentialExchangeManager) Option {
	return func(b *builder) {
		b.credentials = manager
	}
}

func WithPresentationManager(manager issuer.PresentationExchangeManager) Option {
	return func(b *builder) {
		b.presentations = manager
	}
}

// WithMiddleware adds dispatcher middleware, applied outside the admin gate.
func WithMiddleware(middleware ...dispatch.Middleware) Option {
	return func(b *builder) {
		b.middleware = append(b.middleware, middleware...)
	}
}

// Toolbox owns the sealed admin catalogue and the dispatcher serving it.
type Toolbox struct {
	config         Config
	logger         core.Logger
	loggerProvider core.LoggerProvider
	stores         core.StoreProvider
	catalogue      *registry.Catalogue
	dispatcher     *dispatch.Dispatcher
}

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// New resolves configuration, registers the admin-invitations and
// admin-issuer protocols and seals the catalogue. cfg is the runtime layer
// and wins over loaded config.
func New(cfg Config, opts ...Option) (*Toolbox, error) {
	b := builder{runtimeConfig: cfg}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&b)
	}

	ctx := context.Background()
	provider, logger := core.ResolveLogger(loggerName, b.loggerProvider, b.logger)

	finalConfig, err := core.ResolveConfig(ctx, b.configProvider, b.optionsResolver, b.runtimeConfig)
	if err != nil {
		return nil, core.WrapError(err, goerrors.CategoryBadInput, "toolbox: resolve config failed", core.ErrorBadInput)
	}

	stores, err := b.resolveStores(ctx, finalConfig)
	if err != nil {
		return nil, err
	}

	catalogueBuilder := registry.NewBuilder()
	invitationDeps := invitations.Dependencies{Manager: b.invitationManager, Logger: logger}
	issuerDeps := issuer.Dependencies{
		Credentials:   b.credentials,
		Presentations: b.presentations,
		Logger:        logger,
	}
	if stores != nil {
		invitationDeps.Connections = stores.ConnectionStore()
		invitationDeps.Invitations = stores.InvitationStore()
		issuerDeps.Connections = stores.ConnectionStore()
		issuerDeps.CredentialExchanges = stores.CredentialExchangeStore()
		issuerDeps.PresentationExchanges = stores.PresentationExchangeStore()
	}
	if err := invitations.Register(catalogueBuilder, invitationDeps); err != nil {
		return nil, err
	}
	if err := issuer.Register(catalogueBuilder, issuerDeps); err != nil {
		return nil, err
	}
	catalogue := catalogueBuilder.Seal()

	dispatcher := dispatch.NewDispatcher(catalogue,
		dispatch.WithLogger(logger),
		dispatch.WithCapability(finalConfig.Admin.Capability),
		dispatch.WithRejectUnauthorized(finalConfig.RejectUnauthorized()),
		dispatch.WithMiddleware(b.middleware...),
	)

	core.Log(ctx, logger, "debug", "admin toolbox ready", map[string]any{
		"service_name":        finalConfig.ServiceName,
		"message_types":       catalogue.Len(),
		"unauthorized_policy": finalConfig.Admin.UnauthorizedPolicy,
		"stores_configured":   stores != nil,
	})

	return &Toolbox{
		config:         finalConfig,
		logger:         logger,
		loggerProvider: provider,
		stores:         stores,
		catalogue:      catalogue,
		dispatcher:     dispatcher,
	}, nil
}

func Setup(cfg Config, opts ...Option) (*Toolbox, error) {
	return New(cfg, opts...)
}

// resolveStores prefers explicit stores, then the repository factory, then
// a store opened from cfg.Storage when a dsn is configured.
func (b builder) resolveStores(ctx context.Context, cfg Config) (core.StoreProvider, error) {
	if b.stores != nil {
		return b.stores, nil
	}
	if b.repositoryFactory == nil {
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return nil, nil
		}
		factory, err := sqlstore.NewRepositoryFactoryFromConfig(ctx, cfg)
		if err != nil {
			return nil, core.WrapError(err, goerrors.CategoryInternal, "toolbox: open storage failed", core.ErrorInternal)
		}
		return factory, nil
	}
	if factory, ok := b.repositoryFactory.(core.RepositoryStoreFactory); ok && b.persistenceClient != nil {
		stores, err := factory.BuildStores(b.persistenceClient)
		if err != nil {
			return nil, core.WrapError(err, goerrors.CategoryInternal, "toolbox: build stores failed", core.ErrorInternal)
		}
		return stores, nil
	}
	if provider, ok := b.repositoryFactory.(core.StoreProvider); ok {
		return provider, nil
	}
	return nil, core.NewError("toolbox: repository factory must provide stores or be given a persistence client", goerrors.CategoryBadInput, core.ErrorBadInput).
		WithMetadata(map[string]any{"factory_type": fmt.Sprintf("%T", b.repositoryFactory)})
}

// Dispatch routes one raw admin message on behalf of rc.
func (t *Toolbox) Dispatch(ctx context.Context, rc RequestContext, raw []byte) (Result, error) {
	if t == nil || t.dispatcher == nil {
		return Result{}, core.NewError("toolbox: not initialized", goerrors.CategoryInternal, core.ErrorInternal)
	}
	return t.dispatcher.Dispatch(ctx, rc, raw)
}

func (t *Toolbox) Config() Config {
	if t == nil {
		return Config{}
	}
	return t.config
}

func (t *Toolbox) Catalogue() *registry.Catalogue {
	if t == nil {
		return nil
	}
	return t.catalogue
}

func (t *Toolbox) Dispatcher() *dispatch.Dispatcher {
	if t == nil {
		return nil
	}
	return t.dispatcher
}

func (t *Toolbox) Stores() core.StoreProvider {
	if t == nil {
		return nil
	}
	return t.stores
}

func (t *Toolbox) Logger() core.Logger {
	if t == nil {
		return nil
	}
	return t.logger
}

func (t *Toolbox) LoggerProvider() core.LoggerProvider {
	if t == nil {
		return nil
	}
	return t.loggerProvider
}

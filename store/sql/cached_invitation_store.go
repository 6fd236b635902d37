package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-admin-toolbox/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const invitationCacheKeyPrefix = "go-admin-toolbox::invitation::v1"

// invitationWriter is implemented by stores that can persist invitations.
type invitationWriter interface {
	Save(ctx context.Context, connectionID string, invitation core.Invitation) (core.Invitation, error)
}

// CachedInvitationStore serves invitation reads through a cache. Not-found
// results are never cached.
type CachedInvitationStore struct {
	base  core.InvitationStore
	cache repositorycache.CacheService
}

func NewCachedInvitationStore(
	base core.InvitationStore,
	cacheService repositorycache.CacheService,
) (*CachedInvitationStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base invitation store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: invitation cache service is required")
	}
	return &CachedInvitationStore{base: base, cache: cacheService}, nil
}

// InvitationCacheKey returns go-admin-toolbox::invitation::v1::<connection_id>
// with the id URL-path escaped.
func InvitationCacheKey(connectionID string) (string, error) {
	trimmed := strings.TrimSpace(connectionID)
	if trimmed == "" {
		return "", fmt.Errorf("sqlstore: invitation cache key requires a connection id")
	}
	return invitationCacheKeyPrefix + "::" + url.PathEscape(trimmed), nil
}

func (s *CachedInvitationStore) RetrieveInvitation(ctx context.Context, connection core.ConnectionRecord) (core.Invitation, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Invitation{}, fmt.Errorf("sqlstore: cached invitation store is not configured")
	}
	cacheKey, err := InvitationCacheKey(connection.ConnectionID)
	if err != nil {
		return core.Invitation{}, err
	}
	invitation, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (core.Invitation, error) {
		return s.base.RetrieveInvitation(ctx, connection)
	})
	if err != nil {
		return core.Invitation{}, err
	}
	return cloneInvitation(invitation), nil
}

// Save writes through to the base store and drops the cached entry.
// Bases wired by RepositoryFactory also invalidate on their own saves.
func (s *CachedInvitationStore) Save(ctx context.Context, connectionID string, invitation core.Invitation) (core.Invitation, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Invitation{}, fmt.Errorf("sqlstore: cached invitation store is not configured")
	}
	writer, ok := s.base.(invitationWriter)
	if !ok {
		return core.Invitation{}, fmt.Errorf("sqlstore: base invitation store %T is read-only", s.base)
	}
	saved, err := writer.Save(ctx, connectionID, invitation)
	if err != nil {
		return core.Invitation{}, err
	}
	if err := s.Invalidate(ctx, connectionID); err != nil {
		return core.Invitation{}, err
	}
	return saved, nil
}

func (s *CachedInvitationStore) Invalidate(ctx context.Context, connectionID string) error {
	cacheKey, err := InvitationCacheKey(connectionID)
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}

func cloneInvitation(in core.Invitation) core.Invitation {
	out := in
	out.RecipientKeys = append([]string(nil), in.RecipientKeys...)
	out.RoutingKeys = append([]string(nil), in.RoutingKeys...)
	return out
}

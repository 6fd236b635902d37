package sqlstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-admin-toolbox/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

type stubInvitationStore struct {
	mu        sync.Mutex
	byConn    map[string]core.Invitation
	getCalls  int
	saveCalls int
	getErr    error
}

func (s *stubInvitationStore) RetrieveInvitation(_ context.Context, connection core.ConnectionRecord) (core.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	if s.getErr != nil {
		return core.Invitation{}, s.getErr
	}
	invitation, ok := s.byConn[connection.ConnectionID]
	if !ok {
		return core.Invitation{}, core.NotFoundError(core.ErrInvitationNotFound, "stub: invitation not found")
	}
	return cloneInvitation(invitation), nil
}

func (s *stubInvitationStore) Save(_ context.Context, connectionID string, invitation core.Invitation) (core.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveCalls++
	if s.byConn == nil {
		s.byConn = map[string]core.Invitation{}
	}
	s.byConn[connectionID] = cloneInvitation(invitation)
	return invitation, nil
}

type readOnlyInvitationStore struct{}

func (readOnlyInvitationStore) RetrieveInvitation(context.Context, core.ConnectionRecord) (core.Invitation, error) {
	return core.Invitation{}, nil
}

func TestCachedInvitationStore_RetrieveMissFetchThenHit(t *testing.T) {
	base := &stubInvitationStore{byConn: map[string]core.Invitation{
		"conn_1": {ID: "inv_1", Label: "Alice", RecipientKeys: []string{"key_1"}},
	}}
	store, err := NewCachedInvitationStore(base, newTestInvitationCacheService(t))
	if err != nil {
		t.Fatalf("new cached invitation store: %v", err)
	}

	connection := core.ConnectionRecord{ConnectionID: "conn_1"}
	first, err := store.RetrieveInvitation(context.Background(), connection)
	if err != nil {
		t.Fatalf("first retrieve: %v", err)
	}
	if first.ID != "inv_1" || first.Label != "Alice" {
		t.Fatalf("unexpected invitation: %#v", first)
	}
	if base.getCalls != 1 {
		t.Fatalf("expected one base read, got %d", base.getCalls)
	}

	first.RecipientKeys[0] = "mutated"
	second, err := store.RetrieveInvitation(context.Background(), connection)
	if err != nil {
		t.Fatalf("second retrieve: %v", err)
	}
	if base.getCalls != 1 {
		t.Fatalf("expected cache hit on second retrieve, base reads=%d", base.getCalls)
	}
	if second.RecipientKeys[0] != "key_1" {
		t.Fatalf("expected cached invitation to be isolated from caller mutation, got %v", second.RecipientKeys)
	}
}

func TestCachedInvitationStore_SaveInvalidatesCachedKey(t *testing.T) {
	base := &stubInvitationStore{byConn: map[string]core.Invitation{
		"conn_2": {ID: "inv_2", Label: "before"},
	}}
	store, err := NewCachedInvitationStore(base, newTestInvitationCacheService(t))
	if err != nil {
		t.Fatalf("new cached invitation store: %v", err)
	}
	connection := core.ConnectionRecord{ConnectionID: "conn_2"}
	if _, err := store.RetrieveInvitation(context.Background(), connection); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	if _, err := store.Save(context.Background(), "conn_2", core.Invitation{ID: "inv_2", Label: "after"}); err != nil {
		t.Fatalf("save through cached store: %v", err)
	}
	if base.saveCalls != 1 {
		t.Fatalf("expected save to reach base store once, got %d", base.saveCalls)
	}

	updated, err := store.RetrieveInvitation(context.Background(), connection)
	if err != nil {
		t.Fatalf("retrieve after save: %v", err)
	}
	if updated.Label != "after" {
		t.Fatalf("expected refreshed invitation after invalidation, got %q", updated.Label)
	}
	if base.getCalls != 2 {
		t.Fatalf("expected cache miss after save, base reads=%d", base.getCalls)
	}
}

func TestCachedInvitationStore_NotFoundIsPropagated(t *testing.T) {
	base := &stubInvitationStore{}
	store, err := NewCachedInvitationStore(base, newTestInvitationCacheService(t))
	if err != nil {
		t.Fatalf("new cached invitation store: %v", err)
	}
	_, err = store.RetrieveInvitation(context.Background(), core.ConnectionRecord{ConnectionID: "conn_404"})
	if !errors.Is(err, core.ErrInvitationNotFound) {
		t.Fatalf("expected invitation not found, got %v", err)
	}
	if !core.IsNotFound(err) {
		t.Fatalf("expected not-found classification for %v", err)
	}
}

func TestCachedInvitationStore_SaveRequiresWritableBase(t *testing.T) {
	store, err := NewCachedInvitationStore(readOnlyInvitationStore{}, newTestInvitationCacheService(t))
	if err != nil {
		t.Fatalf("new cached invitation store: %v", err)
	}
	if _, err := store.Save(context.Background(), "conn_1", core.Invitation{ID: "inv_1"}); err == nil {
		t.Fatalf("expected save to fail for read-only base store")
	}
}

func TestInvitationCacheKey_EscapesConnectionID(t *testing.T) {
	key, err := InvitationCacheKey(" conn/with space ")
	if err != nil {
		t.Fatalf("build cache key: %v", err)
	}
	const expected = "go-admin-toolbox::invitation::v1::conn%2Fwith%20space"
	if key != expected {
		t.Fatalf("unexpected cache key: got %q want %q", key, expected)
	}
	if _, err := InvitationCacheKey("  "); err == nil {
		t.Fatalf("expected blank connection id to be rejected")
	}
}

func newTestInvitationCacheService(t *testing.T) repositorycache.CacheService {
	t.Helper()
	config := repositorycache.DefaultConfig()
	config.TTL = time.Minute
	service, err := repositorycache.NewCacheService(config)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	return service
}

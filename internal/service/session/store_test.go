package session

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/rscf/care-fund-portal/internal/domain"
	"github.com/rscf/care-fund-portal/pkg/errors"
	"go.uber.org/zap"
)

type fakeKV struct {
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{
		data: make(map[string][]byte),
		ttls: make(map[string]time.Duration),
	}
}

func (f *fakeKV) Get(_ context.Context, key string, dest any) (bool, error) {
	if f.getErr != nil {
		return false, f.getErr
	}
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) Del(_ context.Context, key string) error {
	delete(f.data, key)
	delete(f.ttls, key)
	return nil
}

func TestCreateStartsUnauthenticatedOnLoginScreen(t *testing.T) {
	kv := newFakeKV()
	store := NewStore(kv, 2*time.Hour, zap.NewNop())

	sess, err := store.Create(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if sess.ID == "" {
		t.Fatalf("expected generated session id")
	}
	if sess.Authenticated {
		t.Fatalf("new sessions must not be authenticated")
	}
	if sess.Screen != domain.ScreenLogin {
		t.Fatalf("new sessions must start on login screen, got %q", sess.Screen)
	}
	if kv.ttls[keyPrefix+sess.ID] != 2*time.Hour {
		t.Fatalf("session not persisted with configured TTL")
	}
}

func TestGetRoundTripsSession(t *testing.T) {
	kv := newFakeKV()
	store := NewStore(kv, time.Hour, zap.NewNop())

	created, err := store.Create(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	created.Login(&domain.Member{ID: "aaaa1111", Name: "Ravi", CMSID: "CMS1", Status: domain.StatusActive})
	if err := store.Save(context.Background(), created); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded == nil {
		t.Fatalf("expected session to round-trip")
	}
	if !loaded.Authenticated || loaded.Screen != domain.ScreenDashboard {
		t.Fatalf("authenticated state lost in round-trip: %+v", loaded)
	}
	if loaded.Member == nil || loaded.Member.ID != "aaaa1111" {
		t.Fatalf("stored member lost in round-trip: %+v", loaded.Member)
	}
}

func TestGetReturnsNilForUnknownOrEmptyID(t *testing.T) {
	kv := newFakeKV()
	store := NewStore(kv, time.Hour, zap.NewNop())

	for _, id := range []string{"", "does-not-exist"} {
		sess, err := store.Get(context.Background(), id)
		if err != nil {
			t.Fatalf("missing session must not be an error, got %v", err)
		}
		if sess != nil {
			t.Fatalf("expected nil session for id %q", id)
		}
	}
}

func TestResetClearsAuthenticatedState(t *testing.T) {
	kv := newFakeKV()
	store := NewStore(kv, time.Hour, zap.NewNop())

	sess, err := store.Create(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	sess.Login(&domain.Member{ID: "aaaa1111"})
	if err := store.Save(context.Background(), sess); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := store.Reset(context.Background(), sess); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	loaded, err := store.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded.Authenticated {
		t.Fatalf("reset session still authenticated")
	}
	if loaded.Screen != domain.ScreenLogin {
		t.Fatalf("reset session not on login screen: %q", loaded.Screen)
	}
	if loaded.Member != nil {
		t.Fatalf("reset session still holds member context")
	}
}

func TestStoreWrapsKVFailures(t *testing.T) {
	kv := newFakeKV()
	kv.getErr = stderrors.New("redis down")
	store := NewStore(kv, time.Hour, zap.NewNop())

	_, err := store.Get(context.Background(), "some-id")

	var sessErr *errors.SessionError
	if !stderrors.As(err, &sessErr) {
		t.Fatalf("expected session error, got %v", err)
	}
}

package member

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/rscf/care-fund-portal/internal/domain"
	"github.com/rscf/care-fund-portal/pkg/errors"
	"go.uber.org/zap"
)

func newTestCache(store *fakeStore, ttl time.Duration) (*ContributionCache, *time.Time) {
	cache := NewContributionCache(store, ttl, zap.NewNop())
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	return cache, &now
}

func TestGetContributionReturnsZeroForUnknownID(t *testing.T) {
	store := &fakeStore{
		members: []domain.Member{
			{CMSID: "CMS1", Contribution: 500},
		},
	}
	cache, _ := newTestCache(store, 300*time.Second)

	value, err := cache.GetContribution(context.Background(), "CMS123")
	if err != nil {
		t.Fatalf("unknown id must not be an error, got %v", err)
	}
	if value != 0 {
		t.Fatalf("expected 0 for unknown id, got %v", value)
	}
}

func TestGetContributionReturnsStoredValue(t *testing.T) {
	store := &fakeStore{
		members: []domain.Member{
			{CMSID: "CMS1", Contribution: 500},
			{CMSID: "CMS2", Contribution: 1250.5},
		},
	}
	cache, _ := newTestCache(store, 300*time.Second)

	value, err := cache.GetContribution(context.Background(), "CMS2")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if value != 1250.5 {
		t.Fatalf("expected stored contribution, got %v", value)
	}
}

func TestGetContributionServesStaleValueWithinTTL(t *testing.T) {
	store := &fakeStore{
		members: []domain.Member{
			{CMSID: "CMS1", Contribution: 500},
		},
	}
	cache, now := newTestCache(store, 300*time.Second)

	first, err := cache.GetContribution(context.Background(), "CMS1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if first != 500 {
		t.Fatalf("expected 500, got %v", first)
	}

	// Admin edits the sheet out-of-band.
	store.members[0].Contribution = 900
	*now = now.Add(299 * time.Second)

	second, err := cache.GetContribution(context.Background(), "CMS1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if second != 500 {
		t.Fatalf("expected stale cached value within TTL, got %v", second)
	}
	if store.listCalls != 1 {
		t.Fatalf("expected no store re-query within TTL, got %d calls", store.listCalls)
	}
}

func TestGetContributionRefreshesAfterTTL(t *testing.T) {
	store := &fakeStore{
		members: []domain.Member{
			{CMSID: "CMS1", Contribution: 500},
		},
	}
	cache, now := newTestCache(store, 300*time.Second)

	if _, err := cache.GetContribution(context.Background(), "CMS1"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	store.members[0].Contribution = 900
	*now = now.Add(301 * time.Second)

	value, err := cache.GetContribution(context.Background(), "CMS1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if value != 900 {
		t.Fatalf("expected refreshed value after TTL, got %v", value)
	}
	if store.listCalls != 2 {
		t.Fatalf("expected exactly one refresh, got %d calls", store.listCalls)
	}
}

func TestGetContributionFirstMatchWins(t *testing.T) {
	store := &fakeStore{
		members: []domain.Member{
			{CMSID: "CMS1", Contribution: 100},
			{CMSID: "CMS1", Contribution: 200},
		},
	}
	cache, _ := newTestCache(store, 300*time.Second)

	value, err := cache.GetContribution(context.Background(), "CMS1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if value != 100 {
		t.Fatalf("expected first match in store order, got %v", value)
	}
}

func TestGetContributionMemoizesPerID(t *testing.T) {
	store := &fakeStore{
		members: []domain.Member{
			{CMSID: "CMS1", Contribution: 100},
			{CMSID: "CMS2", Contribution: 200},
		},
	}
	cache, _ := newTestCache(store, 300*time.Second)

	if _, err := cache.GetContribution(context.Background(), "CMS1"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if _, err := cache.GetContribution(context.Background(), "CMS2"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if store.listCalls != 2 {
		t.Fatalf("distinct ids memoize separately, expected 2 list calls, got %d", store.listCalls)
	}
}

func TestGetContributionPropagatesRefreshFailure(t *testing.T) {
	store := &fakeStore{listErr: errors.NewStoreError("failed to read record store", "list", stderrors.New("boom"))}
	cache, _ := newTestCache(store, 300*time.Second)

	_, err := cache.GetContribution(context.Background(), "CMS1")

	var storeErr *errors.StoreError
	if !stderrors.As(err, &storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	store := &fakeStore{
		members: []domain.Member{
			{CMSID: "CMS1", Contribution: 100},
		},
	}
	cache, _ := newTestCache(store, 300*time.Second)

	if _, err := cache.GetContribution(context.Background(), "CMS1"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	store.members[0].Contribution = 300
	cache.Invalidate("CMS1")

	value, err := cache.GetContribution(context.Background(), "CMS1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if value != 300 {
		t.Fatalf("expected fresh value after invalidation, got %v", value)
	}
}

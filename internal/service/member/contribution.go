package member

import (
	"context"
	"sync"
	"time"

	"github.com/rscf/care-fund-portal/internal/domain"
	"go.uber.org/zap"
)

const defaultContributionTTL = 300 * time.Second

// ContributionCache memoizes the per-CMS-id contribution lookup. Each entry
// holds the computed value plus its fetch timestamp; within the TTL the
// cached value is returned without touching the store, and the first call
// after expiry triggers a fresh full snapshot.
type ContributionCache struct {
	store  domain.MemberStore
	logger *zap.Logger
	ttl    time.Duration

	mu      sync.Mutex
	entries map[string]contributionEntry

	now func() time.Time
}

type contributionEntry struct {
	value     float64
	fetchedAt time.Time
}

func NewContributionCache(store domain.MemberStore, ttl time.Duration, logger *zap.Logger) *ContributionCache {
	if ttl <= 0 {
		ttl = defaultContributionTTL
	}
	return &ContributionCache{
		store:   store,
		logger:  logger,
		ttl:     ttl,
		entries: make(map[string]contributionEntry),
		now:     time.Now,
	}
}

// GetContribution returns the contribution recorded for the given CMS id,
// or 0 when no row matches. Absence is a default value, not an error. When
// more than one row shares the id, the first in store order wins.
func (c *ContributionCache) GetContribution(ctx context.Context, cmsID string) (float64, error) {
	c.mu.Lock()
	if entry, ok := c.entries[cmsID]; ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		c.mu.Unlock()
		c.logger.Debug("Contribution cache hit",
			zap.String("cmsid", cmsID))
		return entry.value, nil
	}
	c.mu.Unlock()

	snapshot, err := c.store.List(ctx)
	if err != nil {
		return 0, err
	}

	value := 0.0
	for i := range snapshot {
		if snapshot[i].CMSID == cmsID {
			value = snapshot[i].Contribution
			break
		}
	}

	c.mu.Lock()
	c.entries[cmsID] = contributionEntry{value: value, fetchedAt: c.now()}
	c.mu.Unlock()

	c.logger.Debug("Contribution cache refreshed",
		zap.String("cmsid", cmsID),
		zap.Float64("value", value))

	return value, nil
}

// Invalidate drops one cached entry so the next lookup refetches.
func (c *ContributionCache) Invalidate(cmsID string) {
	c.mu.Lock()
	delete(c.entries, cmsID)
	c.mu.Unlock()
}

package ledger

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedService keeps recently read deals in memory. Writes go straight
// through and evict the affected deal.
type CachedService struct {
	Service
	deals *lru.Cache[string, *DealDetail]
}

func NewCachedService(inner Service, size int) (*CachedService, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, *DealDetail](size)
	if err != nil {
		return nil, fmt.Errorf("ledger cache: %w", err)
	}
	return &CachedService{Service: inner, deals: cache}, nil
}

func (c *CachedService) RecordDeal(ctx context.Context, rec DealRecord) error {
	c.deals.Remove(rec.DealID)
	return c.Service.RecordDeal(ctx, rec)
}

func (c *CachedService) GetDeal(ctx context.Context, dealID string) (*DealDetail, error) {
	if d, ok := c.deals.Get(dealID); ok {
		return d, nil
	}
	d, err := c.Service.GetDeal(ctx, dealID)
	if err != nil {
		return nil, err
	}
	c.deals.Add(dealID, d)
	return d, nil
}

func (c *CachedService) SetSaved(ctx context.Context, dealID string, saved bool) error {
	c.deals.Remove(dealID)
	return c.Service.SetSaved(ctx, dealID, saved)
}

// Cached reports whether dealID is currently held in memory.
func (c *CachedService) Cached(dealID string) bool {
	return c.deals.Contains(dealID)
}

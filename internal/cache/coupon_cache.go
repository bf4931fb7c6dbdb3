package cache

import (
	"sync"

	"savings-finder/internal/models"
)

// CouponCache is a small read-mostly cache of normalized coupons keyed by
// province code.
type CouponCache struct {
	mu    sync.RWMutex
	store map[string][]models.Coupon
}

func NewCouponCache() *CouponCache {
	return &CouponCache{
		store: make(map[string][]models.Coupon),
	}
}

func (c *CouponCache) Get(province string) ([]models.Coupon, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.store[province]
	return val, ok
}

func (c *CouponCache) Set(province string, coupons []models.Coupon) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[province] = coupons
}

// Reset drops every cached entry, e.g. after the feed is reloaded.
func (c *CouponCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string][]models.Coupon)
}

package feed

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"savings-finder/internal/cache"
	"savings-finder/internal/ingest"
	"savings-finder/internal/models"
	"savings-finder/internal/refund"
)

// Catalog loads coupons from a Source once, validates and normalizes them,
// and answers province-scoped queries from a small cache.
type Catalog struct {
	source Source
	cache  *cache.CouponCache
	now    func() time.Time

	mu     sync.Mutex
	loaded []models.Coupon
}

// NewCatalog builds a catalog over the given source. A nil clock falls back
// to time.Now.
func NewCatalog(source Source, now func() time.Time) *Catalog {
	if now == nil {
		now = time.Now
	}
	return &Catalog{
		source: source,
		cache:  cache.NewCouponCache(),
		now:    now,
	}
}

// All returns every normalized coupon, loading from the source on first use.
func (c *Catalog) All(ctx context.Context) ([]models.Coupon, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded != nil {
		return c.loaded, nil
	}
	raw, err := c.source.Coupons(ctx)
	if err != nil {
		return nil, fmt.Errorf("load coupon feed: %w", err)
	}
	normalized, err := ingest.ValidateAndNormalizeCoupons(raw)
	if err != nil {
		return nil, err
	}
	c.loaded = normalized
	return c.loaded, nil
}

// ByProvince returns the coupons published for one province. The query is
// canonicalized to upper case; comparison against the stored codes stays
// exact.
func (c *Catalog) ByProvince(ctx context.Context, province string) ([]models.Coupon, error) {
	province = strings.ToUpper(strings.TrimSpace(province))
	if cached, ok := c.cache.Get(province); ok {
		return cached, nil
	}
	all, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]models.Coupon, 0)
	for _, coupon := range all {
		if coupon.Province == province {
			matched = append(matched, coupon)
		}
	}
	c.cache.Set(province, matched)
	return matched, nil
}

// Provinces returns the sorted set of provinces the feed covers.
func (c *Catalog) Provinces(ctx context.Context) ([]string, error) {
	all, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	provinces := make([]string, 0)
	for _, coupon := range all {
		if !seen[coupon.Province] {
			seen[coupon.Province] = true
			provinces = append(provinces, coupon.Province)
		}
	}
	sort.Strings(provinces)
	return provinces, nil
}

// Valid keeps coupons still claimable today. Coupons whose expiry date does
// not parse are dropped from both Valid and Expired.
func (c *Catalog) Valid(coupons []models.Coupon) []models.Coupon {
	return c.filterByExpiry(coupons, false)
}

// Expired keeps coupons whose claim window already closed.
func (c *Catalog) Expired(coupons []models.Coupon) []models.Coupon {
	return c.filterByExpiry(coupons, true)
}

func (c *Catalog) filterByExpiry(coupons []models.Coupon, wantExpired bool) []models.Coupon {
	today := refund.Midnight(c.now())
	out := make([]models.Coupon, 0)
	for _, coupon := range coupons {
		validUntil, err := time.Parse(time.DateOnly, coupon.ValidUntil)
		if err != nil {
			continue
		}
		if validUntil.Before(today) == wantExpired {
			out = append(out, coupon)
		}
	}
	return out
}

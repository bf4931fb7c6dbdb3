// Package feed is the coupon-feed collaborator: it supplies raw coupon
// records to the core and serves province-scoped views of the normalized
// catalog. There is no sync protocol against the real published feed yet;
// sources are local stand-ins.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"savings-finder/internal/models"
)

// Source supplies raw coupon records. Implementations may return unvalidated
// data; the Catalog validates and normalizes on load.
//
//go:generate mockgen -destination=mocks/mock_source.go -source=source.go Source
type Source interface {
	Coupons(ctx context.Context) ([]models.Coupon, error)
}

// StaticSource serves a built-in set of sample offers.
type StaticSource struct{}

func (StaticSource) Coupons(_ context.Context) ([]models.Coupon, error) {
	return []models.Coupon{
		{ProductID: "123456", ProductName: "Organic Whole Milk", DiscountPrice: 6.99, Province: "ON", ValidUntil: "2024-12-31"},
		{ProductID: "789012", ProductName: "Kirkland Coffee Beans", DiscountPrice: 12.99, Province: "ON", ValidUntil: "2024-11-30"},
		{ProductID: "345678", ProductName: "Kirkland Paper Towels", DiscountPrice: 19.99, Province: "BC", ValidUntil: "2024-12-25"},
	}, nil
}

// FileSource reads a JSON array of coupons from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Coupons(_ context.Context) ([]models.Coupon, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read coupon file: %w", err)
	}
	var coupons []models.Coupon
	if err := json.Unmarshal(raw, &coupons); err != nil {
		return nil, fmt.Errorf("decode coupon file %s: %w", s.Path, err)
	}
	return coupons, nil
}

// Package refund computes refund amounts for matched (item, coupon) pairs
// and classifies the resulting opportunities by claimability. All date logic
// takes an explicit reference date so results are reproducible; nothing in
// this package reads the wall clock.
package refund

import (
	"math"
	"time"

	"savings-finder/internal/matching"
	"savings-finder/internal/models"
)

// NewResult assembles the refund for a matched pair. The pair must already
// satisfy matching.IsMatch; a NoMatchError comes back otherwise. A coupon
// priced above what was paid yields a zero refund, never a negative one.
func NewResult(item models.ReceiptItem, coupon models.Coupon) (models.RefundResult, error) {
	matchType, err := matching.MatchType(item, coupon)
	if err != nil {
		return models.RefundResult{}, err
	}
	return models.RefundResult{
		ProductID:        coupon.ProductID,
		ProductName:      coupon.ProductName,
		PricePaid:        item.PricePaid,
		CurrentPrice:     coupon.DiscountPrice,
		RefundAmount:     math.Max(0, item.PricePaid-coupon.DiscountPrice),
		CouponValidUntil: coupon.ValidUntil,
		MatchType:        matchType,
	}, nil
}

// Classify compares the coupon's expiry date against today, both taken at
// midnight: still valid today means active. An expiry date that does not
// parse classifies as expired.
func Classify(result models.RefundResult, today time.Time) models.Classification {
	validUntil, err := time.Parse(time.DateOnly, result.CouponValidUntil)
	if err != nil {
		return models.ClassificationExpired
	}
	if validUntil.Before(Midnight(today)) {
		return models.ClassificationExpired
	}
	return models.ClassificationActive
}

// NewOpportunity wraps a result with its classification. The classification
// is a snapshot of today; it is not re-evaluated later.
func NewOpportunity(result models.RefundResult, today time.Time) models.RefundOpportunity {
	return models.RefundOpportunity{
		Result:         result,
		Classification: Classify(result, today),
	}
}

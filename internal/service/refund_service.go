// Package service is the aggregation and query layer: it batches refund
// calculation across receipts and coupon sets, applies the caller's filters
// and splits results by claimability.
package service

import (
	"math"
	"time"

	"savings-finder/internal/matching"
	"savings-finder/internal/models"
	"savings-finder/internal/refund"
)

// CalculationOptions tune a refund calculation. Zero values are not the
// defaults; start from DefaultCalculationOptions.
type CalculationOptions struct {
	// IncludeExpired keeps opportunities whose coupon window already closed.
	IncludeExpired bool `json:"include_expired"`
	// ValidAfter drops coupons expiring before this YYYY-MM-DD date. The
	// comparison is lexicographic, which is correct only for well-formed
	// dates; the normalizer guarantees the shape.
	ValidAfter string `json:"valid_after,omitempty"`
	// MinimumRefundAmount drops opportunities refunding less than this.
	MinimumRefundAmount float64 `json:"minimum_refund_amount"`
}

// DefaultCalculationOptions returns the documented defaults: expired
// opportunities included, no date floor, no minimum amount.
func DefaultCalculationOptions() CalculationOptions {
	return CalculationOptions{IncludeExpired: true}
}

// RefundService computes refund opportunities against an injected reference
// clock. The core stays deterministic: every date comparison uses now(), not
// the ambient wall clock, so tests and distributed evaluators agree.
type RefundService struct {
	now func() time.Time
}

// NewRefundService builds a service around the given clock. A nil clock
// falls back to time.Now.
func NewRefundService(now func() time.Time) *RefundService {
	if now == nil {
		now = time.Now
	}
	return &RefundService{now: now}
}

// CalculateRefundsForReceipt finds every refund opportunity on one receipt.
// Coupons are restricted to the receipt's province, then optionally to those
// still valid after opts.ValidAfter; each item is matched against the
// remainder and one opportunity is built per match that clears the minimum
// amount and the expired filter. Input records must already be normalized.
func (s *RefundService) CalculateRefundsForReceipt(receipt models.Receipt, coupons []models.Coupon, opts CalculationOptions) []models.RefundOpportunity {
	today := s.now()

	eligible := make([]models.Coupon, 0, len(coupons))
	for _, c := range coupons {
		if c.Province != receipt.Province {
			continue
		}
		if opts.ValidAfter != "" && c.ValidUntil < opts.ValidAfter {
			continue
		}
		eligible = append(eligible, c)
	}

	opportunities := make([]models.RefundOpportunity, 0)
	for _, item := range receipt.Items {
		for _, coupon := range matching.FindMatchingCoupons(item, eligible) {
			result, err := refund.NewResult(item, coupon)
			if err != nil {
				continue // unreachable: FindMatchingCoupons only yields matches
			}
			if result.RefundAmount < opts.MinimumRefundAmount {
				continue
			}
			opp := refund.NewOpportunity(result, today)
			if !opts.IncludeExpired && opp.Classification == models.ClassificationExpired {
				continue
			}
			opportunities = append(opportunities, opp)
		}
	}
	return opportunities
}

// CalculateRefundsForReceipts flat-maps the single-receipt calculation across
// a batch, receipts in input order, item order preserved within each. The
// same coupon may legitimately show up against the same product on several
// receipts; nothing is deduplicated.
func (s *RefundService) CalculateRefundsForReceipts(receipts []models.Receipt, coupons []models.Coupon, opts CalculationOptions) []models.RefundOpportunity {
	all := make([]models.RefundOpportunity, 0)
	for _, r := range receipts {
		all = append(all, s.CalculateRefundsForReceipt(r, coupons, opts)...)
	}
	return all
}

// ActiveRefunds returns only still-claimable opportunities, whatever the
// caller's IncludeExpired said.
func (s *RefundService) ActiveRefunds(receipts []models.Receipt, coupons []models.Coupon, opts CalculationOptions) []models.RefundOpportunity {
	opts.IncludeExpired = false
	return s.CalculateRefundsForReceipts(receipts, coupons, opts)
}

// ExpiredRefunds returns only opportunities whose claim window already
// closed.
func (s *RefundService) ExpiredRefunds(receipts []models.Receipt, coupons []models.Coupon, opts CalculationOptions) []models.RefundOpportunity {
	opts.IncludeExpired = true
	_, expired := refund.Separate(s.CalculateRefundsForReceipts(receipts, coupons, opts))
	return expired
}

// SeparatedRefunds computes the batch once and splits it by classification.
func (s *RefundService) SeparatedRefunds(receipts []models.Receipt, coupons []models.Coupon, opts CalculationOptions) (active, expired []models.RefundOpportunity) {
	return refund.Separate(s.CalculateRefundsForReceipts(receipts, coupons, opts))
}

// ReceiptsInWindow keeps receipts purchased at most windowDays before today,
// inclusive. Receipts with unparseable dates fall outside the window and are
// silently dropped, as are older ones; exclusion is filtering, not failure.
func (s *RefundService) ReceiptsInWindow(receipts []models.Receipt, windowDays int) []models.Receipt {
	today := refund.Midnight(s.now())
	eligible := make([]models.Receipt, 0, len(receipts))
	for _, r := range receipts {
		receiptDate, err := time.Parse(time.DateOnly, r.ReceiptDate)
		if err != nil {
			continue
		}
		daysSince := int(math.Floor(today.Sub(receiptDate).Hours() / 24))
		if daysSince <= windowDays {
			eligible = append(eligible, r)
		}
	}
	return eligible
}

// PriceAdjustmentRefunds restricts the batch to receipts still inside the
// retailer's price-adjustment window, then calculates as usual.
func (s *RefundService) PriceAdjustmentRefunds(receipts []models.Receipt, coupons []models.Coupon, windowDays int, opts CalculationOptions) []models.RefundOpportunity {
	return s.CalculateRefundsForReceipts(s.ReceiptsInWindow(receipts, windowDays), coupons, opts)
}

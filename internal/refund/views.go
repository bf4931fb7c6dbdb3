package refund

import (
	"sort"
	"time"

	"savings-finder/internal/models"
)

// FilterByClassification keeps only opportunities with the given tag.
func FilterByClassification(opps []models.RefundOpportunity, c models.Classification) []models.RefundOpportunity {
	out := make([]models.RefundOpportunity, 0, len(opps))
	for _, opp := range opps {
		if opp.Classification == c {
			out = append(out, opp)
		}
	}
	return out
}

// Separate splits opportunities into still-claimable and past-window sets.
func Separate(opps []models.RefundOpportunity) (active, expired []models.RefundOpportunity) {
	return FilterByClassification(opps, models.ClassificationActive),
		FilterByClassification(opps, models.ClassificationExpired)
}

// TotalRefund sums the refund amounts of every opportunity, expired included.
func TotalRefund(opps []models.RefundOpportunity) float64 {
	total := 0.0
	for _, opp := range opps {
		total += opp.Result.RefundAmount
	}
	return total
}

// TotalActiveRefund sums the refund amounts of active opportunities only.
func TotalActiveRefund(opps []models.RefundOpportunity) float64 {
	return TotalRefund(FilterByClassification(opps, models.ClassificationActive))
}

// SortByRefundAmount returns a new slice ordered by refund amount, highest
// first. The sort is stable; the input is left untouched.
func SortByRefundAmount(opps []models.RefundOpportunity) []models.RefundOpportunity {
	out := make([]models.RefundOpportunity, len(opps))
	copy(out, opps)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Result.RefundAmount > out[j].Result.RefundAmount
	})
	return out
}

// SortByExpiryDate returns a new slice ordered by days until expiry, soonest
// first, recomputed against today on every call. Any opportunity with an
// unparseable expiry date fails the whole sort.
func SortByExpiryDate(opps []models.RefundOpportunity, today time.Time) ([]models.RefundOpportunity, error) {
	type entry struct {
		opp  models.RefundOpportunity
		days int
	}
	entries := make([]entry, len(opps))
	for i, opp := range opps {
		days, err := DaysUntilExpiry(opp.Result.CouponValidUntil, today)
		if err != nil {
			return nil, err
		}
		entries[i] = entry{opp: opp, days: days}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].days < entries[j].days
	})
	out := make([]models.RefundOpportunity, len(entries))
	for i, e := range entries {
		out[i] = e.opp
	}
	return out, nil
}

// Package matching decides whether a purchased receipt line refers to the
// same product as a published coupon. The rule is two-tier and deterministic:
// exact product id first, normalized name only when no id was captured.
package matching

import (
	"strings"

	"savings-finder/internal/models"
)

// NormalizeProductName lower-cases a name, trims it and collapses internal
// whitespace runs to a single space.
func NormalizeProductName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// MatchByProductID is the primary rule: the item carries a product id and it
// equals the coupon's exactly. No trimming happens here; normalization must
// already have run.
func MatchByProductID(item models.ReceiptItem, coupon models.Coupon) bool {
	return item.ProductID != nil && *item.ProductID == coupon.ProductID
}

// MatchByName is the fallback rule, compared on normalized names. It refuses
// items that carry a product id: when identity is known, an incidental name
// collision must never produce a match.
func MatchByName(item models.ReceiptItem, coupon models.Coupon) bool {
	if item.ProductID != nil {
		return false
	}
	return NormalizeProductName(item.ProductName) == NormalizeProductName(coupon.ProductName)
}

// IsMatch reports whether the item corresponds to the coupon under either
// rule.
func IsMatch(item models.ReceiptItem, coupon models.Coupon) bool {
	return MatchByProductID(item, coupon) || MatchByName(item, coupon)
}

// MatchType reports which rule matched the pair, with product id taking
// precedence. It is not a general classifier: callers must have confirmed
// IsMatch first, otherwise a NoMatchError is returned.
func MatchType(item models.ReceiptItem, coupon models.Coupon) (models.MatchType, error) {
	if MatchByProductID(item, coupon) {
		return models.MatchTypeProductID, nil
	}
	if MatchByName(item, coupon) {
		return models.MatchTypeName, nil
	}
	return "", &models.NoMatchError{ProductName: item.ProductName}
}

// FindMatchingCoupons returns every coupon the item matches, preserving the
// input order. Duplicates in the input stay duplicated in the output.
func FindMatchingCoupons(item models.ReceiptItem, coupons []models.Coupon) []models.Coupon {
	var matched []models.Coupon
	for _, c := range coupons {
		if IsMatch(item, c) {
			matched = append(matched, c)
		}
	}
	return matched
}

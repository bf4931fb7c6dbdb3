// Package ingest validates and canonicalizes raw coupon and receipt records
// arriving from the upload and feed collaborators. Nothing past this package
// should ever see an unvalidated record.
package ingest

import (
	"math"
	"strings"

	"savings-finder/internal/models"
)

// ValidateCoupon reports whether a raw coupon record is acceptable.
// ValidUntil is a format check only (10 characters); it is not verified to
// parse as a real calendar date here.
func ValidateCoupon(c models.Coupon) bool {
	return c.ProductID != "" &&
		c.ProductName != "" &&
		c.DiscountPrice >= 0 &&
		c.Province != "" &&
		len(c.ValidUntil) == 10
}

// ValidateReceiptItem reports whether a raw receipt line is acceptable. A nil
// ProductID is valid: it means the extractor did not capture one.
func ValidateReceiptItem(it models.ReceiptItem) bool {
	return it.ProductName != "" && it.PricePaid >= 0
}

// ValidateReceipt reports whether a raw receipt record is acceptable.
func ValidateReceipt(r models.Receipt) bool {
	if r.ReceiptID == "" || len(r.ReceiptDate) != 10 || r.Province == "" || len(r.Items) == 0 {
		return false
	}
	for _, it := range r.Items {
		if !ValidateReceiptItem(it) {
			return false
		}
	}
	return true
}

// NormalizeCoupon returns the canonical form of a coupon: trimmed strings,
// upper-case province, price rounded to the cent. Idempotent.
func NormalizeCoupon(c models.Coupon) models.Coupon {
	return models.Coupon{
		ProductID:     strings.TrimSpace(c.ProductID),
		ProductName:   strings.TrimSpace(c.ProductName),
		DiscountPrice: roundToCent(c.DiscountPrice),
		Province:      strings.ToUpper(strings.TrimSpace(c.Province)),
		ValidUntil:    strings.TrimSpace(c.ValidUntil),
	}
}

// NormalizeReceiptItem returns the canonical form of a receipt line. An empty
// product id is treated the same as an absent one.
func NormalizeReceiptItem(it models.ReceiptItem) models.ReceiptItem {
	out := models.ReceiptItem{
		ProductName: strings.TrimSpace(it.ProductName),
		PricePaid:   roundToCent(it.PricePaid),
	}
	if it.ProductID != nil && *it.ProductID != "" {
		id := strings.TrimSpace(*it.ProductID)
		out.ProductID = &id
	}
	return out
}

// NormalizeReceipt returns the canonical form of a receipt and all its items.
func NormalizeReceipt(r models.Receipt) models.Receipt {
	items := make([]models.ReceiptItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = NormalizeReceiptItem(it)
	}
	return models.Receipt{
		ReceiptID:   strings.TrimSpace(r.ReceiptID),
		ReceiptDate: strings.TrimSpace(r.ReceiptDate),
		Province:    strings.ToUpper(strings.TrimSpace(r.Province)),
		Items:       items,
	}
}

// ValidateAndNormalizeCoupons validates and canonicalizes a batch. The first
// invalid record aborts the whole batch: no partial result is returned.
func ValidateAndNormalizeCoupons(coupons []models.Coupon) ([]models.Coupon, error) {
	out := make([]models.Coupon, 0, len(coupons))
	for _, c := range coupons {
		if !ValidateCoupon(c) {
			return nil, &models.ValidationError{Kind: "coupon", Record: c}
		}
		out = append(out, NormalizeCoupon(c))
	}
	return out, nil
}

// ValidateAndNormalizeReceipts validates and canonicalizes a batch. The first
// invalid record aborts the whole batch: no partial result is returned.
func ValidateAndNormalizeReceipts(receipts []models.Receipt) ([]models.Receipt, error) {
	out := make([]models.Receipt, 0, len(receipts))
	for _, r := range receipts {
		if !ValidateReceipt(r) {
			return nil, &models.ValidationError{Kind: "receipt", Record: r}
		}
		out = append(out, NormalizeReceipt(r))
	}
	return out, nil
}

// roundToCent rounds half up at the cent. Amounts are never negative by the
// time they reach here, so half away from zero is the same thing.
func roundToCent(v float64) float64 {
	return math.Round(v*100) / 100
}

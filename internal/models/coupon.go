package models

// Coupon is a province-scoped discount offer for a single product, published
// by the external coupon feed and claimable through ValidUntil.
// Immutable once normalized.
type Coupon struct {
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	DiscountPrice float64 `json:"discount_price"`
	Province      string  `json:"province"`
	ValidUntil    string  `json:"valid_until"` // YYYY-MM-DD
}

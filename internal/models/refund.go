package models

// MatchType reports which matching rule paired an item with a coupon.
type MatchType string

const (
	MatchTypeProductID MatchType = "product_id"
	MatchTypeName      MatchType = "name"
)

// Classification tags a refund opportunity as still claimable or not. It is
// a snapshot taken when the opportunity is created, never re-evaluated.
type Classification string

const (
	ClassificationActive  Classification = "active"
	ClassificationExpired Classification = "expired"
)

// RefundResult is the computed refund for one matched (item, coupon) pair.
type RefundResult struct {
	ProductID        string    `json:"product_id"`
	ProductName      string    `json:"product_name"`
	PricePaid        float64   `json:"price_paid"`
	CurrentPrice     float64   `json:"current_price"`
	RefundAmount     float64   `json:"refund_amount"` // never negative
	CouponValidUntil string    `json:"coupon_valid_until"`
	MatchType        MatchType `json:"match_type"`
}

// RefundOpportunity wraps a RefundResult with its claimability snapshot.
type RefundOpportunity struct {
	Result         RefundResult   `json:"result"`
	Classification Classification `json:"classification"`
}

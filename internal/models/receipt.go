package models

// ReceiptItem is a single purchased line on a receipt. ProductID is nil when
// the upstream extractor could not capture one; matching then falls back to
// the product name.
type ReceiptItem struct {
	ProductID   *string `json:"product_id"`
	ProductName string  `json:"product_name"`
	PricePaid   float64 `json:"price_paid"`
}

// Receipt is one uploaded purchase document. Immutable after normalization.
type Receipt struct {
	ReceiptID   string        `json:"receipt_id"`
	ReceiptDate string        `json:"receipt_date"` // YYYY-MM-DD
	Province    string        `json:"province"`
	Items       []ReceiptItem `json:"items"`
}

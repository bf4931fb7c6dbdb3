// Package ocr is the text-extraction collaborator: it turns uploaded receipt
// documents into structured Receipt records the core can consume. The actual
// extraction pipeline does not exist yet; StubExtractor stands in for it so
// the rest of the flow can run end to end.
package ocr

import (
	"context"
	"time"

	"github.com/google/uuid"

	"savings-finder/internal/models"
)

// TextExtractor turns one uploaded receipt document into a structured
// Receipt for the given province.
//
//go:generate mockgen -destination=mocks/mock_extractor.go -source=extractor.go TextExtractor
type TextExtractor interface {
	ExtractReceipt(ctx context.Context, data []byte, contentType, province string) (models.Receipt, error)
}

// StubExtractor fabricates a plausible receipt instead of reading the
// document.
// TODO: replace with a real extractor (Tesseract or a vision API) once one
// is chosen.
type StubExtractor struct {
	now func() time.Time
}

// NewStubExtractor builds the placeholder extractor. A nil clock falls back
// to time.Now.
func NewStubExtractor(now func() time.Time) *StubExtractor {
	if now == nil {
		now = time.Now
	}
	return &StubExtractor{now: now}
}

func (e *StubExtractor) ExtractReceipt(_ context.Context, _ []byte, _, province string) (models.Receipt, error) {
	return models.Receipt{
		ReceiptID:   "receipt_" + uuid.NewString(),
		ReceiptDate: e.now().Format(time.DateOnly),
		Province:    province,
		Items: []models.ReceiptItem{
			{ProductID: nil, ProductName: "Kirkland Signature Paper Towels", PricePaid: 24.99},
			{ProductID: strPtr("123456"), ProductName: "Organic Whole Milk", PricePaid: 8.99},
		},
	}, nil
}

func strPtr(s string) *string { return &s }

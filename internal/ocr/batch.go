package ocr

import (
	"context"

	"savings-finder/internal/concurrency"
	"savings-finder/internal/models"
)

// Upload is one receipt document handed in by the HTTP layer.
type Upload struct {
	Data        []byte
	ContentType string
}

// ExtractionResult is the per-document outcome of a multi-file extraction.
type ExtractionResult struct {
	Success bool            `json:"success"`
	Receipt *models.Receipt `json:"receipt,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ProcessAll extracts every upload, fanning the work out across at most
// workers goroutines. Extraction is independent per document, so the fan-out
// needs no coordination; results come back in input order.
func ProcessAll(ctx context.Context, extractor TextExtractor, uploads []Upload, province string, workers int) []ExtractionResult {
	results := make([]ExtractionResult, len(uploads))
	concurrency.FanOut(ctx, workers, len(uploads), func(ctx context.Context, i int) {
		receipt, err := extractor.ExtractReceipt(ctx, uploads[i].Data, uploads[i].ContentType, province)
		if err != nil {
			results[i] = ExtractionResult{Error: err.Error()}
			return
		}
		results[i] = ExtractionResult{Success: true, Receipt: &receipt}
	})
	return results
}

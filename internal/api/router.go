package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"savings-finder/internal/api/handlers"
	"savings-finder/internal/feed"
	"savings-finder/internal/ocr"
	"savings-finder/internal/service"
)

// NewRouter builds the HTTP router for the refund-service.
func NewRouter(refunds *service.RefundService, catalog *feed.Catalog, extractor ocr.TextExtractor, defaultWindowDays int) http.Handler {
	r := chi.NewRouter()

	refundHandler := handlers.NewRefundHandler(refunds, defaultWindowDays)
	couponHandler := handlers.NewCouponHandler(catalog)
	ocrHandler := handlers.NewOCRHandler(extractor)

	r.Route("/api/refunds", func(r chi.Router) {
		r.Post("/calculate", refundHandler.Calculate)
		r.Post("/active", refundHandler.Active)
		r.Post("/expired", refundHandler.Expired)
		r.Post("/price-adjustment", refundHandler.PriceAdjustment)
	})

	r.Route("/api/coupons", func(r chi.Router) {
		r.Get("/", couponHandler.List)
		r.Get("/provinces", couponHandler.Provinces)
		r.Post("/validate", couponHandler.Validate)
		r.Post("/sync", couponHandler.Sync)
		r.Get("/{province}", couponHandler.ByProvince)
	})

	r.Route("/api/ocr", func(r chi.Router) {
		r.Post("/process-image", ocrHandler.ProcessImage)
		r.Post("/process-pdf", ocrHandler.ProcessPDF)
		r.Post("/process-multiple", ocrHandler.ProcessMultiple)
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}

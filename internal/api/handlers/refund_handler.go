package handlers

import (
	"encoding/json"
	"net/http"

	"savings-finder/internal/ingest"
	"savings-finder/internal/models"
	"savings-finder/internal/refund"
	"savings-finder/internal/service"
)

// --- Request / Response DTOs ---

type refundRequest struct {
	Receipts   []models.Receipt `json:"receipts"`
	Coupons    []models.Coupon  `json:"coupons"`
	Options    json.RawMessage  `json:"options,omitempty"`
	WindowDays int              `json:"window_days,omitempty"` // price-adjustment only
}

type refundSummary struct {
	ActiveCount  int     `json:"active_count"`
	ExpiredCount int     `json:"expired_count"`
	ActiveTotal  float64 `json:"active_total"`
	ExpiredTotal float64 `json:"expired_total"`
	Total        float64 `json:"total"`
}

type calculateResponse struct {
	Active  []models.RefundOpportunity `json:"active"`
	Expired []models.RefundOpportunity `json:"expired"`
	Summary refundSummary              `json:"summary"`
}

type refundListResponse struct {
	Refunds []models.RefundOpportunity `json:"refunds"`
	Count   int                        `json:"count"`
	Total   float64                    `json:"total"`
}

type priceAdjustmentResponse struct {
	EligibleReceipts int                        `json:"eligible_receipts"`
	TotalReceipts    int                        `json:"total_receipts"`
	WindowDays       int                        `json:"window_days"`
	ActiveRefunds    []models.RefundOpportunity `json:"active_refunds"`
	ActiveTotal      float64                    `json:"active_total"`
	ClaimableToday   float64                    `json:"claimable_today"`
}

// --- Handler struct & constructor ---

type RefundHandler struct {
	refunds           *service.RefundService
	defaultWindowDays int
}

func NewRefundHandler(refunds *service.RefundService, defaultWindowDays int) *RefundHandler {
	return &RefundHandler{
		refunds:           refunds,
		defaultWindowDays: defaultWindowDays,
	}
}

// decodeRefundRequest parses the body and runs both batches through the
// normalizer, so unvalidated records never reach the matcher. Options are
// decoded over the documented defaults: absent fields keep them.
func (h *RefundHandler) decodeRefundRequest(w http.ResponseWriter, r *http.Request) (*refundRequest, service.CalculationOptions, bool) {
	var req refundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return nil, service.CalculationOptions{}, false
	}
	if req.Receipts == nil {
		writeError(w, http.StatusBadRequest, "receipts must be an array")
		return nil, service.CalculationOptions{}, false
	}
	if req.Coupons == nil {
		writeError(w, http.StatusBadRequest, "coupons must be an array")
		return nil, service.CalculationOptions{}, false
	}

	opts := service.DefaultCalculationOptions()
	if len(req.Options) > 0 {
		if err := json.Unmarshal(req.Options, &opts); err != nil {
			writeError(w, http.StatusBadRequest, "invalid options")
			return nil, service.CalculationOptions{}, false
		}
	}

	receipts, err := ingest.ValidateAndNormalizeReceipts(req.Receipts)
	if err != nil {
		writeDomainError(w, err)
		return nil, service.CalculationOptions{}, false
	}
	coupons, err := ingest.ValidateAndNormalizeCoupons(req.Coupons)
	if err != nil {
		writeDomainError(w, err)
		return nil, service.CalculationOptions{}, false
	}
	req.Receipts = receipts
	req.Coupons = coupons
	return &req, opts, true
}

// Calculate handles POST /api/refunds/calculate
func (h *RefundHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	req, opts, ok := h.decodeRefundRequest(w, r)
	if !ok {
		return
	}

	opportunities := h.refunds.CalculateRefundsForReceipts(req.Receipts, req.Coupons, opts)
	active, expired := refund.Separate(opportunities)
	activeTotal := refund.TotalRefund(active)
	expiredTotal := refund.TotalRefund(expired)

	writeJSON(w, http.StatusOK, calculateResponse{
		Active:  active,
		Expired: expired,
		Summary: refundSummary{
			ActiveCount:  len(active),
			ExpiredCount: len(expired),
			ActiveTotal:  activeTotal,
			ExpiredTotal: expiredTotal,
			Total:        activeTotal + expiredTotal,
		},
	})
}

// Active handles POST /api/refunds/active
func (h *RefundHandler) Active(w http.ResponseWriter, r *http.Request) {
	req, opts, ok := h.decodeRefundRequest(w, r)
	if !ok {
		return
	}

	refunds := h.refunds.ActiveRefunds(req.Receipts, req.Coupons, opts)
	writeJSON(w, http.StatusOK, refundListResponse{
		Refunds: refunds,
		Count:   len(refunds),
		Total:   refund.TotalRefund(refunds),
	})
}

// Expired handles POST /api/refunds/expired
func (h *RefundHandler) Expired(w http.ResponseWriter, r *http.Request) {
	req, opts, ok := h.decodeRefundRequest(w, r)
	if !ok {
		return
	}

	refunds := h.refunds.ExpiredRefunds(req.Receipts, req.Coupons, opts)
	writeJSON(w, http.StatusOK, refundListResponse{
		Refunds: refunds,
		Count:   len(refunds),
		Total:   refund.TotalRefund(refunds),
	})
}

// PriceAdjustment handles POST /api/refunds/price-adjustment
func (h *RefundHandler) PriceAdjustment(w http.ResponseWriter, r *http.Request) {
	req, opts, ok := h.decodeRefundRequest(w, r)
	if !ok {
		return
	}

	windowDays := req.WindowDays
	if windowDays <= 0 {
		windowDays = h.defaultWindowDays
	}

	eligible := h.refunds.ReceiptsInWindow(req.Receipts, windowDays)
	opportunities := h.refunds.CalculateRefundsForReceipts(eligible, req.Coupons, opts)
	active, _ := refund.Separate(opportunities)
	activeTotal := refund.TotalRefund(active)

	writeJSON(w, http.StatusOK, priceAdjustmentResponse{
		EligibleReceipts: len(eligible),
		TotalReceipts:    len(req.Receipts),
		WindowDays:       windowDays,
		ActiveRefunds:    active,
		ActiveTotal:      activeTotal,
		ClaimableToday:   activeTotal,
	})
}

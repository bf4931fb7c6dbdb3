package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"savings-finder/internal/feed"
	"savings-finder/internal/ingest"
	"savings-finder/internal/models"
)

// --- Request / Response DTOs ---

type listCouponsResponse struct {
	Coupons   []models.Coupon `json:"coupons"`
	Count     int             `json:"count"`
	Provinces []string        `json:"provinces,omitempty"`
}

type provinceCouponsResponse struct {
	Province string          `json:"province"`
	Coupons  []models.Coupon `json:"coupons"`
	Count    int             `json:"count"`
}

type validateCouponsRequest struct {
	Coupons []models.Coupon `json:"coupons"`
}

type validateCouponsResponse struct {
	Valid   bool            `json:"valid"`
	Coupons []models.Coupon `json:"coupons"`
	Count   int             `json:"count"`
}

// --- Handler struct & constructor ---

type CouponHandler struct {
	catalog *feed.Catalog
}

func NewCouponHandler(catalog *feed.Catalog) *CouponHandler {
	return &CouponHandler{catalog: catalog}
}

// List handles GET /api/coupons with optional province and valid filters.
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		coupons []models.Coupon
		err     error
	)
	if province := r.URL.Query().Get("province"); province != "" {
		coupons, err = h.catalog.ByProvince(ctx, province)
	} else {
		coupons, err = h.catalog.All(ctx)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	switch r.URL.Query().Get("valid") {
	case "true":
		coupons = h.catalog.Valid(coupons)
	case "false":
		coupons = h.catalog.Expired(coupons)
	}

	provinces, err := h.catalog.Provinces(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listCouponsResponse{
		Coupons:   coupons,
		Count:     len(coupons),
		Provinces: provinces,
	})
}

// Provinces handles GET /api/coupons/provinces
func (h *CouponHandler) Provinces(w http.ResponseWriter, r *http.Request) {
	provinces, err := h.catalog.Provinces(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"provinces": provinces})
}

// Validate handles POST /api/coupons/validate
func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateCouponsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	if req.Coupons == nil {
		writeError(w, http.StatusBadRequest, "coupons must be an array")
		return
	}

	normalized, err := ingest.ValidateAndNormalizeCoupons(req.Coupons)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, validateCouponsResponse{
		Valid:   true,
		Coupons: normalized,
		Count:   len(normalized),
	})
}

// ByProvince handles GET /api/coupons/{province}
func (h *CouponHandler) ByProvince(w http.ResponseWriter, r *http.Request) {
	province := chi.URLParam(r, "province")

	coupons, err := h.catalog.ByProvince(r.Context(), province)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	switch r.URL.Query().Get("valid") {
	case "true":
		coupons = h.catalog.Valid(coupons)
	case "false":
		coupons = h.catalog.Expired(coupons)
	}

	writeJSON(w, http.StatusOK, provinceCouponsResponse{
		Province: province,
		Coupons:  coupons,
		Count:    len(coupons),
	})
}

// Sync handles POST /api/coupons/sync. Syncing from the published feed is an
// external protocol this service does not implement.
func (h *CouponHandler) Sync(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "coupon sync not implemented",
		"status":  "placeholder",
	})
}

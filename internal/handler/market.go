package handler

import (
	"encoding/json"
	"net/http"

	"footcaster-market-api/internal/service"
	"footcaster-market-api/pkg/apierror"
	"footcaster-market-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// MarketHandler handles fixed-price listing HTTP requests.
type MarketHandler struct {
	marketService *service.MarketService
}

// NewMarketHandler creates a new market handler.
func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

// CreateListing handles POST /api/v1/market/listings
func (h *MarketHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FID      int64  `json:"fid"`
		ItemID   string `json:"item_id"`
		PriceWei string `json:"price_wei"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	if req.FID <= 0 || req.ItemID == "" || req.PriceWei == "" {
		response.Error(w, apierror.BadRequest("fid, item_id and price_wei are required"))
		return
	}

	listing, err := h.marketService.CreateListing(r.Context(), req.FID, req.ItemID, req.PriceWei)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}

	response.Created(w, listing)
}

// CloseListing handles POST /api/v1/market/listings/{id}/close
func (h *MarketHandler) CloseListing(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "id")
	if listingID == "" {
		response.Error(w, apierror.BadRequest("listing id is required"))
		return
	}

	var req struct {
		BuyerFID int64 `json:"buyer_fid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BuyerFID <= 0 {
		response.Error(w, apierror.BadRequest("buyer_fid is required"))
		return
	}

	listing, err := h.marketService.CloseListingAndTransfer(r.Context(), listingID, req.BuyerFID)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}

	response.OK(w, listing)
}

// ListListings handles GET /api/v1/market/listings
func (h *MarketHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.marketService.ListActiveListings(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSONWithMeta(w, http.StatusOK, listings, len(listings), int64(len(listings)))
}

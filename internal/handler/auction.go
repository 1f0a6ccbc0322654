package handler

import (
	"encoding/json"
	"net/http"

	"footcaster-market-api/internal/service"
	"footcaster-market-api/pkg/apierror"
	"footcaster-market-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// AuctionHandler handles auction HTTP requests.
type AuctionHandler struct {
	auctionService *service.AuctionService
}

// NewAuctionHandler creates a new auction handler.
func NewAuctionHandler(auctionService *service.AuctionService) *AuctionHandler {
	return &AuctionHandler{auctionService: auctionService}
}

// CreateAuction handles POST /api/v1/market/auctions
func (h *AuctionHandler) CreateAuction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FID             int64  `json:"fid"`
		ItemID          string `json:"item_id"`
		ReserveWei      string `json:"reserve_wei"`
		DurationSeconds int64  `json:"duration_seconds"`
		BuyNowWei       string `json:"buy_now_wei,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	if req.FID <= 0 || req.ItemID == "" || req.ReserveWei == "" || req.DurationSeconds <= 0 {
		response.Error(w, apierror.BadRequest("fid, item_id, reserve_wei and duration_seconds are required"))
		return
	}

	auction, err := h.auctionService.CreateAuction(r.Context(), req.FID, req.ItemID, req.ReserveWei, req.DurationSeconds, req.BuyNowWei)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}

	response.Created(w, auction)
}

// PlaceBid handles POST /api/v1/market/auctions/{id}/bids
func (h *AuctionHandler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	auctionID := chi.URLParam(r, "id")

	var req struct {
		FID       int64  `json:"fid"`
		AmountWei string `json:"amount_wei"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FID <= 0 || req.AmountWei == "" {
		response.Error(w, apierror.BadRequest("fid and amount_wei are required"))
		return
	}

	auction, err := h.auctionService.PlaceBid(r.Context(), req.FID, auctionID, req.AmountWei)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}

	response.OK(w, auction)
}

// BuyNow handles POST /api/v1/market/auctions/{id}/buy-now
func (h *AuctionHandler) BuyNow(w http.ResponseWriter, r *http.Request) {
	auctionID := chi.URLParam(r, "id")

	var req struct {
		BuyerFID int64  `json:"buyer_fid"`
		PriceWei string `json:"price_wei"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BuyerFID <= 0 || req.PriceWei == "" {
		response.Error(w, apierror.BadRequest("buyer_fid and price_wei are required"))
		return
	}

	auction, err := h.auctionService.BuyNow(r.Context(), auctionID, req.BuyerFID, req.PriceWei)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}

	response.OK(w, auction)
}

// Finalize handles POST /api/v1/market/auctions/{id}/finalize
func (h *AuctionHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	auctionID := chi.URLParam(r, "id")

	var req struct {
		WinnerFID int64 `json:"winner_fid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.WinnerFID <= 0 {
		response.Error(w, apierror.BadRequest("winner_fid is required"))
		return
	}

	auction, err := h.auctionService.FinalizeAuction(r.Context(), auctionID, req.WinnerFID)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}

	response.OK(w, auction)
}

// ListAuctions handles GET /api/v1/market/auctions
func (h *AuctionHandler) ListAuctions(w http.ResponseWriter, r *http.Request) {
	auctions, err := h.auctionService.ListActiveAuctions(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSONWithMeta(w, http.StatusOK, auctions, len(auctions), int64(len(auctions)))
}

// GetAuction handles GET /api/v1/market/auctions/{id}
func (h *AuctionHandler) GetAuction(w http.ResponseWriter, r *http.Request) {
	auctionID := chi.URLParam(r, "id")

	auction, bids, err := h.auctionService.GetAuction(r.Context(), auctionID)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}

	response.OK(w, map[string]interface{}{
		"auction": auction,
		"bids":    bids,
	})
}

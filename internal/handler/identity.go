package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"footcaster-market-api/internal/service"
	"footcaster-market-api/internal/store"
	"footcaster-market-api/pkg/apierror"
	"footcaster-market-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// IdentityHandler handles identity, wallet linking and starter grants.
type IdentityHandler struct {
	identityService *service.IdentityService
	starterService  *service.StarterService
	marketService   *service.MarketService
}

// NewIdentityHandler creates a new identity handler.
func NewIdentityHandler(identityService *service.IdentityService, starterService *service.StarterService, marketService *service.MarketService) *IdentityHandler {
	return &IdentityHandler{
		identityService: identityService,
		starterService:  starterService,
		marketService:   marketService,
	}
}

// fidParam parses the {fid} URL parameter.
func fidParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "fid")
	fid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || fid <= 0 {
		return 0, apierror.BadRequest("fid must be a positive integer")
	}
	return fid, nil
}

// LinkWallet handles POST /api/v1/users/{fid}/wallet
func (h *IdentityHandler) LinkWallet(w http.ResponseWriter, r *http.Request) {
	fid, err := fidParam(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Address == "" {
		response.Error(w, apierror.BadRequest("address is required"))
		return
	}

	if err := h.identityService.LinkWallet(r.Context(), fid, req.Address); err != nil {
		response.Error(w, domainError(err))
		return
	}

	response.OK(w, map[string]interface{}{
		"fid":    fid,
		"linked": true,
	})
}

// GetUser handles GET /api/v1/users/{fid}
func (h *IdentityHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	fid, err := fidParam(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	user, err := h.identityService.GetUser(r.Context(), fid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.Error(w, apierror.NotFound("user not found"))
			return
		}
		response.Error(w, err)
		return
	}

	response.OK(w, user)
}

// GrantStarterPack handles POST /api/v1/users/{fid}/starter-pack
func (h *IdentityHandler) GrantStarterPack(w http.ResponseWriter, r *http.Request) {
	fid, err := fidParam(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.Error(w, apierror.BadRequest("failed to read request body"))
		return
	}
	defer r.Body.Close()

	granted, err := h.starterService.GrantStarterPack(r.Context(), fid, body)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}

	response.Created(w, map[string]interface{}{
		"fid":     fid,
		"players": granted,
	})
}

// GetInventory handles GET /api/v1/users/{fid}/inventory
func (h *IdentityHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	fid, err := fidParam(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	items, err := h.marketService.ListInventory(r.Context(), fid)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSONWithMeta(w, http.StatusOK, items, len(items), int64(len(items)))
}

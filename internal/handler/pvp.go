package handler

import (
	"encoding/json"
	"net/http"

	"footcaster-market-api/internal/service"
	"footcaster-market-api/pkg/apierror"
	"footcaster-market-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// PvpHandler handles challenge match HTTP requests.
type PvpHandler struct {
	pvpService *service.PvpService
}

// NewPvpHandler creates a new PvP handler.
func NewPvpHandler(pvpService *service.PvpService) *PvpHandler {
	return &PvpHandler{pvpService: pvpService}
}

// CreateChallenge handles POST /api/v1/pvp/challenges
func (h *PvpHandler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChallengerFID int64 `json:"challenger_fid"`
		ChallengedFID int64 `json:"challenged_fid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChallengerFID <= 0 || req.ChallengedFID <= 0 {
		response.Error(w, apierror.BadRequest("challenger_fid and challenged_fid are required"))
		return
	}

	match, err := h.pvpService.CreateChallenge(r.Context(), req.ChallengerFID, req.ChallengedFID)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}

	response.Created(w, match)
}

// Accept handles POST /api/v1/pvp/matches/{id}/accept
func (h *PvpHandler) Accept(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")

	var req struct {
		AccepterFID int64 `json:"accepter_fid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AccepterFID <= 0 {
		response.Error(w, apierror.BadRequest("accepter_fid is required"))
		return
	}

	match, err := h.pvpService.AcceptChallenge(r.Context(), matchID, req.AccepterFID)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}

	response.OK(w, match)
}

// SubmitResult handles POST /api/v1/pvp/matches/{id}/result
func (h *PvpHandler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")

	var req struct {
		ReporterFID int64           `json:"reporter_fid"`
		Result      json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ReporterFID <= 0 {
		response.Error(w, apierror.BadRequest("reporter_fid and result are required"))
		return
	}

	match, err := h.pvpService.SubmitResult(r.Context(), matchID, req.ReporterFID, req.Result)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}

	response.OK(w, match)
}

// GetMatch handles GET /api/v1/pvp/matches/{id}
func (h *PvpHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")

	match, err := h.pvpService.GetMatch(r.Context(), matchID)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}

	response.OK(w, match)
}

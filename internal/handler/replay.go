package handler

import (
	"encoding/json"
	"net/http"

	"footcaster-market-api/internal/service"
	"footcaster-market-api/pkg/apierror"
	"footcaster-market-api/pkg/response"
)

// ReplayHandler handles external-transaction replay guard requests.
type ReplayHandler struct {
	replayService *service.ReplayService
}

// NewReplayHandler creates a new replay handler.
func NewReplayHandler(replayService *service.ReplayService) *ReplayHandler {
	return &ReplayHandler{replayService: replayService}
}

// ConsumeTransaction handles POST /api/v1/tx/consume
func (h *ReplayHandler) ConsumeTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TxHash   string `json:"tx_hash"`
		FID      int64  `json:"fid"`
		Endpoint string `json:"endpoint"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TxHash == "" || req.FID <= 0 || req.Endpoint == "" {
		response.Error(w, apierror.BadRequest("tx_hash, fid and endpoint are required"))
		return
	}

	if err := h.replayService.MarkTransactionUsed(r.Context(), req.TxHash, req.FID, req.Endpoint); err != nil {
		response.Error(w, domainError(err))
		return
	}

	response.OK(w, map[string]interface{}{
		"tx_hash":  req.TxHash,
		"consumed": true,
	})
}

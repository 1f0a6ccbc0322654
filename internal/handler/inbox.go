package handler

import (
	"encoding/json"
	"net/http"

	"footcaster-market-api/internal/service"
	"footcaster-market-api/pkg/apierror"
	"footcaster-market-api/pkg/response"
)

// InboxHandler handles notification feed HTTP requests.
type InboxHandler struct {
	inboxService *service.InboxService
}

// NewInboxHandler creates a new inbox handler.
func NewInboxHandler(inboxService *service.InboxService) *InboxHandler {
	return &InboxHandler{inboxService: inboxService}
}

// List handles GET /api/v1/users/{fid}/inbox
func (h *InboxHandler) List(w http.ResponseWriter, r *http.Request) {
	fid, err := fidParam(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	msgs, err := h.inboxService.List(r.Context(), fid)
	if err != nil {
		response.Error(w, err)
		return
	}

	unread, err := h.inboxService.UnreadCount(r.Context(), fid)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"messages": msgs,
		"unread":   unread,
	})
}

// MarkRead handles POST /api/v1/users/{fid}/inbox/read
func (h *InboxHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	fid, err := fidParam(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req struct {
		MsgIDs []string `json:"msg_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}

	marked, err := h.inboxService.MarkRead(r.Context(), fid, req.MsgIDs)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}

	response.OK(w, map[string]interface{}{
		"marked": marked,
	})
}

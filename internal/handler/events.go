package handler

import (
	"net/http"
	"strconv"

	"footcaster-market-api/internal/store"
	"footcaster-market-api/pkg/response"
)

// EventHandler serves the append-only audit feed.
type EventHandler struct {
	store *store.Store
}

// NewEventHandler creates a new event handler.
func NewEventHandler(st *store.Store) *EventHandler {
	return &EventHandler{store: st}
}

// List handles GET /api/v1/events?limit=N
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	events, err := h.store.ListEvents(r.Context(), limit)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSONWithMeta(w, http.StatusOK, events, len(events), int64(len(events)))
}

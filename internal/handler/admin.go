package handler

import (
	"crypto/subtle"
	"net/http"
	"runtime"
	"time"

	"footcaster-market-api/internal/service"
	"footcaster-market-api/internal/store"
	"footcaster-market-api/pkg/apierror"
	"footcaster-market-api/pkg/response"
)

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	store     *store.Store
	sweeper   *service.Sweeper
	loginKey  string
	startTime time.Time
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(st *store.Store, sweeper *service.Sweeper, loginKey string) *AdminHandler {
	return &AdminHandler{
		store:     st,
		sweeper:   sweeper,
		loginKey:  loginKey,
		startTime: time.Now(),
	}
}

// authorized checks the X-Login-Key header.
func (h *AdminHandler) authorized(r *http.Request) bool {
	if h.loginKey == "" {
		return false
	}
	key := r.Header.Get("X-Login-Key")
	return subtle.ConstantTimeCompare([]byte(key), []byte(h.loginKey)) == 1
}

// GetStats handles GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		response.Error(w, apierror.Unauthorized("invalid login key"))
		return
	}

	ctx := r.Context()
	stats := make(map[string]interface{})

	// System info
	stats["uptime_seconds"] = int64(time.Since(h.startTime).Seconds())
	stats["uptime_human"] = time.Since(h.startTime).Round(time.Second).String()
	stats["server_time"] = time.Now().Format(time.RFC3339)

	// Memory stats
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	stats["memory"] = map[string]interface{}{
		"alloc_mb":   float64(memStats.Alloc) / 1024 / 1024,
		"sys_mb":     float64(memStats.Sys) / 1024 / 1024,
		"num_gc":     memStats.NumGC,
		"goroutines": runtime.NumGoroutine(),
	}

	// Store stats
	if h.store != nil {
		storeStats, err := h.store.Stats(ctx)
		if err == nil {
			stats["store"] = storeStats
		} else {
			stats["store"] = map[string]interface{}{
				"status": "error",
				"error":  err.Error(),
			}
		}
	}

	// Runtime info
	stats["runtime"] = map[string]interface{}{
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"cpus":       runtime.NumCPU(),
	}

	response.OK(w, stats)
}

// RunSweep handles POST /api/v1/admin/sweep
func (h *AdminHandler) RunSweep(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		response.Error(w, apierror.Unauthorized("invalid login key"))
		return
	}

	if h.sweeper == nil {
		response.Error(w, apierror.ServiceUnavailable("sweeper not configured"))
		return
	}

	deleted, err := h.sweeper.RunNow()
	if err != nil {
		response.Error(w, apierror.InternalError(err.Error()))
		return
	}

	response.OK(w, map[string]interface{}{
		"deleted": deleted,
	})
}

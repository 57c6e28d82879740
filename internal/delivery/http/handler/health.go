package handler

import (
	"context"
	"net/http"
	"os"
	"time"
)

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db          Pinger
	storagePath string
}

func NewHealthHandler(db Pinger, storagePath string) *HealthHandler {
	return &HealthHandler{db: db, storagePath: storagePath}
}

// Health handles GET /healthz
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{"database": "ok", "storage": "ok"}
	status := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if info, err := os.Stat(h.storagePath); err != nil || !info.IsDir() {
		checks["storage"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	SendJSON(w, status, Response{
		Success: status == http.StatusOK,
		Data:    checks,
	})
}

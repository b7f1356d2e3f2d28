package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SessionCleaner is the interface that wraps the expired-session cleanup logic.
type SessionCleaner interface {
	// Method CleanExpiredSessions deletes sessions older than ttl and returns
	// how many were removed.
	CleanExpiredSessions(ctx context.Context, ttl time.Duration) (int, error)
}

// SessionCleaningHandler handles administrative session cleanup requests.
// Routes are expected to be guarded by the API key middleware.
type SessionCleaningHandler struct {
	BaseHandler
	cleaner SessionCleaner
	ttl     time.Duration
}

// NewSessionCleaningHandler creates a new session cleaning handler
func NewSessionCleaningHandler(cleaner SessionCleaner, logger *zap.Logger, ttl time.Duration) *SessionCleaningHandler {
	return &SessionCleaningHandler{
		BaseHandler: BaseHandler{Logger: logger},
		cleaner:     cleaner,
		ttl:         ttl,
	}
}

// RegisterRoutes registers all session cleaning routes
func (h *SessionCleaningHandler) RegisterRoutes(r chi.Router) {
	r.Delete("/sessions/expired", h.CleanExpired)
}

// CleanExpired handles DELETE /sessions/expired
func (h *SessionCleaningHandler) CleanExpired(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.cleaner.CleanExpiredSessions(r.Context(), h.ttl)
	if err != nil {
		h.Logger.Error("failed to clean expired sessions", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

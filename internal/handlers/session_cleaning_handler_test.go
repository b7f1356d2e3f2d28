package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockSessionCleaner is a mock implementation of SessionCleaner
type mockSessionCleaner struct {
	deleted int
	err     error
	gotTTL  time.Duration
}

func (m *mockSessionCleaner) CleanExpiredSessions(ctx context.Context, ttl time.Duration) (int, error) {
	m.gotTTL = ttl
	if m.err != nil {
		return 0, m.err
	}
	return m.deleted, nil
}

func TestSessionCleaningHandler_CleanExpired(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("reports deleted count", func(t *testing.T) {
		cleaner := &mockSessionCleaner{deleted: 7}
		h := NewSessionCleaningHandler(cleaner, logger, 168*time.Hour)

		r := httptest.NewRequest(http.MethodDelete, "/sessions/expired", nil)
		w := httptest.NewRecorder()

		h.CleanExpired(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 168*time.Hour, cleaner.gotTTL)

		var body map[string]int
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, 7, body["deleted"])
	})

	t.Run("internal error", func(t *testing.T) {
		h := NewSessionCleaningHandler(&mockSessionCleaner{err: errors.New("database error")}, logger, 168*time.Hour)

		r := httptest.NewRequest(http.MethodDelete, "/sessions/expired", nil)
		w := httptest.NewRecorder()

		h.CleanExpired(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

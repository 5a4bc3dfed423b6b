package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockShareManager struct {
	createdBookIDs []uint
	validityDays   *int
	revokedToken   string
	revokeErr      error
}

func (m *mockShareManager) Create(ownerID *uint, bookIDs []uint, validityDays *int) (string, error) {
	m.createdBookIDs = bookIDs
	m.validityDays = validityDays
	return "0123456789abcdef0123456789abcdef", nil
}

func (m *mockShareManager) Revoke(token string) error {
	if m.revokeErr != nil {
		return m.revokeErr
	}
	m.revokedToken = token
	return nil
}

func newSharesRouter(manager *mockShareManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewSharesController(manager, "http://localhost:8501", 7, nil)

	router := gin.New()
	router.POST("/api/shares", controller.CreateShare)
	router.POST("/api/shares/:token/revoke", controller.RevokeShare)
	return router
}

func TestCreateShare(t *testing.T) {
	manager := &mockShareManager{}
	router := newSharesRouter(manager)

	payload, _ := json.Marshal(map[string]any{"book_ids": []uint{1, 2}, "validity_days": 7})
	req, _ := http.NewRequest("POST", "/api/shares", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Token string `json:"token"`
		URL   string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Token, 32)
	assert.Equal(t, "http://localhost:8501/shared?share="+body.Token, body.URL)
	assert.Equal(t, []uint{1, 2}, manager.createdBookIDs)
	require.NotNil(t, manager.validityDays)
	assert.Equal(t, 7, *manager.validityDays)
}

func TestCreateShareUsesDefaultValidity(t *testing.T) {
	manager := &mockShareManager{}
	router := newSharesRouter(manager)

	payload, _ := json.Marshal(map[string]any{"book_ids": []uint{1}})
	req, _ := http.NewRequest("POST", "/api/shares", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, manager.validityDays)
	assert.Equal(t, 7, *manager.validityDays)
}

func TestCreateShareNeverExpires(t *testing.T) {
	manager := &mockShareManager{}
	router := newSharesRouter(manager)

	payload, _ := json.Marshal(map[string]any{"book_ids": []uint{1}, "never_expires": true})
	req, _ := http.NewRequest("POST", "/api/shares", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, manager.validityDays)
}

func TestCreateShareRejectsNonPositiveValidity(t *testing.T) {
	router := newSharesRouter(&mockShareManager{})

	payload, _ := json.Marshal(map[string]any{"book_ids": []uint{1}, "validity_days": 0})
	req, _ := http.NewRequest("POST", "/api/shares", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRevokeShare(t *testing.T) {
	manager := &mockShareManager{}
	router := newSharesRouter(manager)

	req, _ := http.NewRequest("POST", "/api/shares/abc123/revoke", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc123", manager.revokedToken)
}

func TestRevokeShareUnknownToken(t *testing.T) {
	manager := &mockShareManager{revokeErr: gorm.ErrRecordNotFound}
	router := newSharesRouter(manager)

	req, _ := http.NewRequest("POST", "/api/shares/missing/revoke", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

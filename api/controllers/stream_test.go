package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	streamsvc "github.com/oakhallsupply/stockroom-backend/internal/stream"
)

func subscribe(t *testing.T, productID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/"+productID+"/subscribe", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("productId", productID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	SubscribeStock(streamsvc.NewNotifier(), testLogger()).ServeHTTP(rec, req)
	return rec
}

func TestSubscribeStockSendsOneSnapshot(t *testing.T) {
	productID := uuid.New()
	rec := subscribe(t, productID.String())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	raw := rec.Body.String()
	assert.Equal(t, 1, strings.Count(raw, "event: snapshot"), "exactly one event frame")
	require.True(t, strings.HasPrefix(raw, "event: snapshot\ndata: "))
	require.True(t, strings.HasSuffix(raw, "\n\n"))

	data := strings.TrimSuffix(strings.TrimPrefix(raw, "event: snapshot\ndata: "), "\n\n")
	var snapshot struct {
		ProductID     uuid.UUID `json:"productId"`
		StockQuantity int       `json:"stockQuantity"`
		Timestamp     string    `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal([]byte(data), &snapshot))
	assert.Equal(t, productID, snapshot.ProductID)
	assert.GreaterOrEqual(t, snapshot.StockQuantity, 0)
	assert.NotEmpty(t, snapshot.Timestamp)
}

func TestSubscribeStockBadID(t *testing.T) {
	rec := subscribe(t, "garbage")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assertFlatError(t, rec, "uuid")
}

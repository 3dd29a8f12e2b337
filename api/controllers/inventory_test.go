package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventorysvc "github.com/oakhallsupply/stockroom-backend/internal/inventory"
	reservationsvc "github.com/oakhallsupply/stockroom-backend/internal/reservation"
	pkgerrors "github.com/oakhallsupply/stockroom-backend/pkg/errors"
	"github.com/oakhallsupply/stockroom-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

type stubInventoryService struct {
	rows        []inventorysvc.InventoryRow
	lowStock    []inventorysvc.LowStockItem
	updated     *inventorysvc.InventoryRow
	bulkResults []inventorysvc.BulkItemResult
	err         error

	lastProductID uuid.UUID
	lastInput     inventorysvc.UpdateStockInput
	bulkInputs    []inventorysvc.UpdateStockInput
}

func (s *stubInventoryService) GetProductInventory(ctx context.Context, productID uuid.UUID) ([]inventorysvc.InventoryRow, error) {
	s.lastProductID = productID
	return s.rows, s.err
}

func (s *stubInventoryService) ListLowStock(ctx context.Context) ([]inventorysvc.LowStockItem, error) {
	return s.lowStock, s.err
}

func (s *stubInventoryService) UpdateStock(ctx context.Context, input inventorysvc.UpdateStockInput) (*inventorysvc.InventoryRow, error) {
	s.lastInput = input
	return s.updated, s.err
}

func (s *stubInventoryService) BulkUpdate(ctx context.Context, inputs []inventorysvc.UpdateStockInput) []inventorysvc.BulkItemResult {
	s.bulkInputs = inputs
	return s.bulkResults
}

type stubReservationService struct {
	reserved bool
	released int
	expired  int
	err      error

	lastReserve reservationsvc.ReserveInput
	lastCart    uuid.UUID
}

func (s *stubReservationService) Reserve(ctx context.Context, input reservationsvc.ReserveInput) (bool, error) {
	s.lastReserve = input
	return s.reserved, s.err
}

func (s *stubReservationService) Release(ctx context.Context, cartID uuid.UUID) (int, error) {
	s.lastCart = cartID
	return s.released, s.err
}

func (s *stubReservationService) CleanupExpired(ctx context.Context) (int, error) {
	return s.expired, s.err
}

func (s *stubReservationService) PurgeStale(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, s.err
}

func TestInventoryQueryByProduct(t *testing.T) {
	productID := uuid.New()
	stub := &stubInventoryService{
		rows: []inventorysvc.InventoryRow{
			{ID: uuid.New(), ProductID: productID, Size: "M", StockQuantity: 10, ReservedQuantity: 3, AvailableQuantity: 7},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory?productId="+productID.String(), nil)
	rec := httptest.NewRecorder()
	InventoryQuery(stub, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, productID, stub.lastProductID)

	var body struct {
		Inventory []inventorysvc.InventoryRow `json:"inventory"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Inventory, 1)
	assert.Equal(t, 7, body.Inventory[0].AvailableQuantity)
}

func TestInventoryQueryLowStock(t *testing.T) {
	stub := &stubInventoryService{
		lowStock: []inventorysvc.LowStockItem{
			{ID: uuid.New(), ProductID: uuid.New(), Size: "S", StockQuantity: 2, LowStockThreshold: 5},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
	rec := httptest.NewRecorder()
	InventoryQuery(stub, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		LowStockItems []inventorysvc.LowStockItem `json:"lowStockItems"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.LowStockItems, 1)
}

func TestInventoryQueryBadProductID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory?productId=nope", nil)
	rec := httptest.NewRecorder()
	InventoryQuery(&stubInventoryService{}, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assertFlatError(t, rec, "uuid")
}

func TestInventoryQueryUnknownProduct(t *testing.T) {
	stub := &stubInventoryService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory?productId="+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	InventoryQuery(stub, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assertFlatError(t, rec, "product not found")
}

func postAction(t *testing.T, invSvc inventorysvc.Service, resSvc reservationsvc.Service, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	InventoryAction(invSvc, resSvc, testLogger()).ServeHTTP(rec, req)
	return rec
}

func TestInventoryActionUpdateStock(t *testing.T) {
	productID := uuid.New()
	stub := &stubInventoryService{
		updated: &inventorysvc.InventoryRow{ProductID: productID, Size: "M", StockQuantity: 25},
	}

	rec := postAction(t, stub, &stubReservationService{},
		`{"action":"update_stock","productId":"`+productID.String()+`","size":"M","quantity":25,"movementType":"restock"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 25, stub.lastInput.Quantity)
	assert.Equal(t, "restock", string(stub.lastInput.MovementType))

	var row inventorysvc.InventoryRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &row))
	assert.Equal(t, 25, row.StockQuantity)
}

func TestInventoryActionUpdateStockUnknownMovementType(t *testing.T) {
	rec := postAction(t, &stubInventoryService{}, &stubReservationService{},
		`{"action":"update_stock","productId":"`+uuid.NewString()+`","size":"M","quantity":5,"movementType":"gift"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assertFlatError(t, rec, "movement type")
}

func TestInventoryActionUpdateStockMissingFields(t *testing.T) {
	rec := postAction(t, &stubInventoryService{}, &stubReservationService{},
		`{"action":"update_stock","size":"M"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assertFlatError(t, rec, "productId")
}

func TestInventoryActionBulkUpdate(t *testing.T) {
	productID := uuid.New()
	stub := &stubInventoryService{
		bulkResults: []inventorysvc.BulkItemResult{
			{ProductID: productID, Size: "M", Success: true},
		},
	}

	rec := postAction(t, stub, &stubReservationService{},
		`{"action":"bulk_update","updates":[{"productId":"`+productID.String()+`","size":"M","quantity":5}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, stub.bulkInputs, 1)

	var body struct {
		Results []inventorysvc.BulkItemResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.True(t, body.Results[0].Success)
}

func TestInventoryActionBulkUpdateKeepsEntryOrder(t *testing.T) {
	productID := uuid.New()
	stub := &stubInventoryService{
		bulkResults: []inventorysvc.BulkItemResult{
			{ProductID: productID, Size: "L", Success: true},
		},
	}

	rec := postAction(t, stub, &stubReservationService{},
		`{"action":"bulk_update","updates":[{"productId":"not-a-uuid","size":"M","quantity":5},{"productId":"`+productID.String()+`","size":"L","quantity":5}]}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results []inventorysvc.BulkItemResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 2)
	assert.False(t, body.Results[0].Success)
	assert.Contains(t, body.Results[0].Error, "uuid")
	assert.True(t, body.Results[1].Success)
}

func TestInventoryActionReserve(t *testing.T) {
	cartID := uuid.New()
	productID := uuid.New()
	stub := &stubReservationService{reserved: true}

	rec := postAction(t, &stubInventoryService{}, stub,
		`{"action":"reserve","cartId":"`+cartID.String()+`","productId":"`+productID.String()+`","size":"42R","quantity":2}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, cartID, stub.lastReserve.CartID)
	assert.Equal(t, 2, stub.lastReserve.Qty)

	var body map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body["reserved"])
}

func TestInventoryActionReserveInsufficient(t *testing.T) {
	rec := postAction(t, &stubInventoryService{}, &stubReservationService{reserved: false},
		`{"action":"reserve","cartId":"`+uuid.NewString()+`","productId":"`+uuid.NewString()+`","size":"M","quantity":99}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body["reserved"])
}

func TestInventoryActionRelease(t *testing.T) {
	cartID := uuid.New()
	stub := &stubReservationService{released: 3}

	rec := postAction(t, &stubInventoryService{}, stub,
		`{"action":"release","cartId":"`+cartID.String()+`"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, cartID, stub.lastCart)

	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body["released"])
}

func TestInventoryActionCleanup(t *testing.T) {
	rec := postAction(t, &stubInventoryService{}, &stubReservationService{expired: 4},
		`{"action":"cleanup_reservations"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 4, body["expired"])
}

func TestInventoryActionUnknown(t *testing.T) {
	rec := postAction(t, &stubInventoryService{}, &stubReservationService{},
		`{"action":"restock_everything"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assertFlatError(t, rec, "unknown action")
}

func TestInventoryActionMalformedBody(t *testing.T) {
	rec := postAction(t, &stubInventoryService{}, &stubReservationService{}, `{"action":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInventoryActionStoreFailure(t *testing.T) {
	stub := &stubInventoryService{err: pkgerrors.Wrap(pkgerrors.CodeDependency, context.DeadlineExceeded, "write inventory row")}
	rec := postAction(t, stub, &stubReservationService{},
		`{"action":"update_stock","productId":"`+uuid.NewString()+`","size":"M","quantity":1}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assertFlatError(t, rec, "write inventory row")
}

func assertFlatError(t *testing.T, rec *httptest.ResponseRecorder, contains string) {
	t.Helper()

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1, "error body must be a flat object with a single error key")

	raw, ok := body["error"]
	require.True(t, ok, "error body must carry an error key")

	var msg string
	require.NoError(t, json.Unmarshal(raw, &msg), "error value must be a plain string")
	assert.Contains(t, msg, contains)
}

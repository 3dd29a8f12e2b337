package inventory

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oakhallsupply/stockroom-backend/pkg/db/models"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:inventory_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  base_price NUMERIC NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	inventoryItems := `
CREATE TABLE IF NOT EXISTS inventory_items (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  size TEXT NOT NULL,
  stock_qty INTEGER NOT NULL DEFAULT 0,
  reserved_qty INTEGER NOT NULL DEFAULT 0,
  low_stock_threshold INTEGER NOT NULL DEFAULT 5,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (product_id, size)
);`
	stockMovements := `
CREATE TABLE IF NOT EXISTS stock_movements (
  id TEXT PRIMARY KEY,
  inventory_id TEXT NOT NULL,
  movement_type TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  reference_type TEXT,
  notes TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(inventoryItems).Error)
	require.NoError(t, db.Exec(stockMovements).Error)
	return db
}

func mustCreateTestProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:       uuid.New(),
		SKU:      fmt.Sprintf("SKU-%s", uuid.NewString()),
		Title:    "Oxford Shirt",
		IsActive: true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func mustCreateInventoryItem(t *testing.T, db *gorm.DB, productID uuid.UUID, size string, stock, reserved, threshold int) *models.InventoryItem {
	t.Helper()

	item := &models.InventoryItem{
		ID:                uuid.New(),
		ProductID:         productID,
		Size:              size,
		StockQty:          stock,
		ReservedQty:       reserved,
		LowStockThreshold: threshold,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

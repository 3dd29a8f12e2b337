package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/oakhallsupply/stockroom-backend/pkg/db/models"
)

func TestListByProductOrdersBySize(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db)
	mustCreateInventoryItem(t, db, product.ID, "XL", 4, 0, 5)
	mustCreateInventoryItem(t, db, product.ID, "L", 9, 2, 5)
	mustCreateInventoryItem(t, db, product.ID, "M", 12, 1, 5)

	other := mustCreateTestProduct(t, db)
	mustCreateInventoryItem(t, db, other.ID, "M", 3, 0, 5)

	rows, err := repo.ListByProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "L", rows[0].Size)
	assert.Equal(t, "M", rows[1].Size)
	assert.Equal(t, "XL", rows[2].Size)
}

func TestListLowStockComparesStoredStock(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db)
	low := mustCreateInventoryItem(t, db, product.ID, "S", 2, 0, 5)
	atThreshold := mustCreateInventoryItem(t, db, product.ID, "M", 5, 0, 5)
	// Heavily reserved but the stored stock is healthy, so it stays off
	// the restock report even though only one unit is available.
	mustCreateInventoryItem(t, db, product.ID, "L", 10, 9, 5)
	mustCreateInventoryItem(t, db, product.ID, "XL", 20, 0, 5)

	rows, err := repo.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, low.ID, rows[0].ID)
	assert.Equal(t, atThreshold.ID, rows[1].ID)
}

func TestSetStockQtyUpdatesExistingRow(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db)
	item := mustCreateInventoryItem(t, db, product.ID, "M", 10, 0, 5)

	require.NoError(t, repo.SetStockQty(ctx, item.ID, 25))

	fetched, err := repo.FindByProductSize(ctx, product.ID, "M")
	require.NoError(t, err)
	assert.Equal(t, 25, fetched.StockQty)
	assert.Equal(t, item.ID, fetched.ID)
}

func TestSetStockQtyKeepsConcurrentHold(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db)
	item := mustCreateInventoryItem(t, db, product.ID, "M", 10, 0, 5)

	// A reservation commits after the row was loaded for the stock write.
	require.NoError(t, db.Model(&models.InventoryItem{}).
		Where("id = ?", item.ID).
		Update("reserved_qty", gorm.Expr("reserved_qty + ?", 3)).
		Error)

	require.NoError(t, repo.SetStockQty(ctx, item.ID, 20))

	fetched, err := repo.FindByProductSize(ctx, product.ID, "M")
	require.NoError(t, err)
	assert.Equal(t, 20, fetched.StockQty)
	assert.Equal(t, 3, fetched.ReservedQty, "stock write must not erase the hold")
}

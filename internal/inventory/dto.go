package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/oakhallsupply/stockroom-backend/pkg/db/models"
	"github.com/oakhallsupply/stockroom-backend/pkg/enums"
)

// InventoryRow is the read shape for a single (product, size) row with its
// derived availability fields.
type InventoryRow struct {
	ID                uuid.UUID `json:"id"`
	ProductID         uuid.UUID `json:"productId"`
	Size              string    `json:"size"`
	StockQuantity     int       `json:"stockQuantity"`
	ReservedQuantity  int       `json:"reservedQuantity"`
	AvailableQuantity int       `json:"availableQuantity"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	IsLowStock        bool      `json:"isLowStock"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// LowStockItem is one entry in the restock report. StockQuantity drives the
// listing; AvailableQuantity is included so the console can show both.
type LowStockItem struct {
	ID                uuid.UUID `json:"id"`
	ProductID         uuid.UUID `json:"productId"`
	Size              string    `json:"size"`
	StockQuantity     int       `json:"stockQuantity"`
	AvailableQuantity int       `json:"availableQuantity"`
	LowStockThreshold int       `json:"lowStockThreshold"`
}

// UpdateStockInput sets the absolute stock level for a (product, size) pair.
type UpdateStockInput struct {
	ProductID     uuid.UUID
	Size          string
	Quantity      int
	MovementType  enums.MovementType
	ReferenceType *string
	Notes         *string
}

// BulkItemResult reports the outcome of one entry in a bulk update.
type BulkItemResult struct {
	ProductID uuid.UUID `json:"productId"`
	Size      string    `json:"size"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

func toInventoryRow(item models.InventoryItem) InventoryRow {
	av := ComputeAvailability(item.StockQty, item.ReservedQty, item.LowStockThreshold)
	return InventoryRow{
		ID:                item.ID,
		ProductID:         item.ProductID,
		Size:              item.Size,
		StockQuantity:     item.StockQty,
		ReservedQuantity:  item.ReservedQty,
		AvailableQuantity: av.AvailableQty,
		LowStockThreshold: item.LowStockThreshold,
		IsLowStock:        av.IsLowStock,
		UpdatedAt:         item.UpdatedAt,
	}
}

func toLowStockItem(item models.InventoryItem) LowStockItem {
	av := ComputeAvailability(item.StockQty, item.ReservedQty, item.LowStockThreshold)
	return LowStockItem{
		ID:                item.ID,
		ProductID:         item.ProductID,
		Size:              item.Size,
		StockQuantity:     item.StockQty,
		AvailableQuantity: av.AvailableQty,
		LowStockThreshold: item.LowStockThreshold,
	}
}

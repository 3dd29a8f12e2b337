package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem tracks stock/reserved counts per (product, size) pair.
// available_qty is derived, never stored: stock_qty - reserved_qty.
type InventoryItem struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID         uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:uq_inventory_product_size"`
	Size              string    `gorm:"column:size;not null;uniqueIndex:uq_inventory_product_size"`
	StockQty          int       `gorm:"column:stock_qty;not null;default:0"`
	ReservedQty       int       `gorm:"column:reserved_qty;not null;default:0"`
	LowStockThreshold int       `gorm:"column:low_stock_threshold;not null;default:5"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

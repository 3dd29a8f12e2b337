package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/oakhallsupply/stockroom-backend/pkg/enums"
)

// StockMovement is an immutable audit entry for a stock quantity change.
// Quantity is the signed delta applied to stock_qty.
type StockMovement struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	InventoryID   uuid.UUID          `gorm:"column:inventory_id;type:uuid;not null;index"`
	Type          enums.MovementType `gorm:"column:movement_type;not null"`
	Quantity      int                `gorm:"column:quantity;not null"`
	ReferenceType *string            `gorm:"column:reference_type"`
	Notes         *string            `gorm:"column:notes"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
}

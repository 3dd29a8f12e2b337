package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/oakhallsupply/stockroom-backend/pkg/enums"
)

// Reservation is a cart-scoped hold against an inventory row. The hold itself
// lives in inventory_items.reserved_qty; this row records which cart owns how
// much of it and until when.
type Reservation struct {
	ID        uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	CartID    uuid.UUID               `gorm:"column:cart_id;type:uuid;not null;index"`
	ProductID uuid.UUID               `gorm:"column:product_id;type:uuid;not null"`
	Size      string                  `gorm:"column:size;not null"`
	Qty       int                     `gorm:"column:qty;not null"`
	Status    enums.ReservationStatus `gorm:"column:status;not null;default:active"`
	ExpiresAt time.Time               `gorm:"column:expires_at;not null"`
	CreatedAt time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

package ledger

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oakhallsupply/stockroom-backend/pkg/db/models"
)

// Repository manages persistence for stock movement entries. Movements are
// append-only; there is no update or delete path.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, movement *models.StockMovement) error
	ListByProductID(ctx context.Context, productID uuid.UUID, limit int) ([]models.StockMovement, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, movement *models.StockMovement) error {
	if movement.ID == uuid.Nil {
		movement.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(movement).Error
}

func (r *repository) ListByProductID(ctx context.Context, productID uuid.UUID, limit int) ([]models.StockMovement, error) {
	var movements []models.StockMovement
	query := r.db.WithContext(ctx).
		Where("inventory_id IN (?)",
			r.db.Model(&models.InventoryItem{}).Select("id").Where("product_id = ?", productID)).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

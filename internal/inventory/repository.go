package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oakhallsupply/stockroom-backend/pkg/db/models"
)

// Repository wires together inventory persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindProduct loads the product row, without associations.
func (r *Repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListByProduct returns every size row for the product, ordered by size for
// deterministic responses.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.InventoryItem, error) {
	var rows []models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("size ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindByProductSize loads the single row for a (product, size) pair.
func (r *Repository) FindByProductSize(ctx context.Context, productID uuid.UUID, size string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).
		First(&item, "product_id = ? AND size = ?", productID, size).
		Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Insert creates the inventory row for a (product, size) pair.
func (r *Repository) Insert(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// SetStockQty writes only the stock level. Holds placed after the row was
// loaded keep their reserved_qty; a full-row save would overwrite it with the
// stale value.
func (r *Repository) SetStockQty(ctx context.Context, id uuid.UUID, qty int) error {
	return r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ?", id).
		Update("stock_qty", qty).
		Error
}

// ListLowStock returns rows whose stored stock count is at or below their
// threshold. The comparison reads stock_qty, not the derived available
// quantity, so heavily reserved rows with healthy stock are not listed.
func (r *Repository) ListLowStock(ctx context.Context) ([]models.InventoryItem, error) {
	var rows []models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("stock_qty <= low_stock_threshold").
		Order("stock_qty ASC").
		Find(&rows).
		Error
	return rows, err
}

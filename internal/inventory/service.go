package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oakhallsupply/stockroom-backend/internal/ledger"
	"github.com/oakhallsupply/stockroom-backend/pkg/db"
	"github.com/oakhallsupply/stockroom-backend/pkg/db/models"
	"github.com/oakhallsupply/stockroom-backend/pkg/enums"
	pkgerrors "github.com/oakhallsupply/stockroom-backend/pkg/errors"
)

// Service exposes inventory read and mutation operations.
type Service interface {
	GetProductInventory(ctx context.Context, productID uuid.UUID) ([]InventoryRow, error)
	ListLowStock(ctx context.Context) ([]LowStockItem, error)
	UpdateStock(ctx context.Context, input UpdateStockInput) (*InventoryRow, error)
	BulkUpdate(ctx context.Context, inputs []UpdateStockInput) []BulkItemResult
}

type service struct {
	repo     *Repository
	ledger   ledger.Service
	dbClient *db.Client
}

// NewService constructs an inventory service instance.
func NewService(repo *Repository, ledgerSvc ledger.Service, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if ledgerSvc == nil {
		return nil, fmt.Errorf("ledger service required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, ledger: ledgerSvc, dbClient: dbClient}, nil
}

// GetProductInventory returns every size row for the product with derived
// availability. Unknown products are a not-found error; a known product with
// no rows yet returns an empty slice.
func (s *service) GetProductInventory(ctx context.Context, productID uuid.UUID) ([]InventoryRow, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	if _, err := s.repo.FindProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	items, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory rows")
	}

	rows := make([]InventoryRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, toInventoryRow(item))
	}
	return rows, nil
}

func (s *service) ListLowStock(ctx context.Context) ([]LowStockItem, error) {
	items, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list low stock rows")
	}

	out := make([]LowStockItem, 0, len(items))
	for _, item := range items {
		out = append(out, toLowStockItem(item))
	}
	return out, nil
}

// UpdateStock sets the absolute stock level for a (product, size) pair,
// creating the row when it does not exist yet. The movement entry documenting
// the change commits in the same transaction as the stock write.
func (s *service) UpdateStock(ctx context.Context, input UpdateStockInput) (*InventoryRow, error) {
	if err := validateUpdateInput(&input); err != nil {
		return nil, err
	}

	var result InventoryRow
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindProduct(ctx, input.ProductID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		item, err := repo.FindByProductSize(ctx, input.ProductID, input.Size)
		previousStock := 0
		switch {
		case err == nil:
			previousStock = item.StockQty
			item.StockQty = input.Quantity
			if err := repo.SetStockQty(ctx, item.ID, input.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write inventory row")
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = &models.InventoryItem{
				ProductID: input.ProductID,
				Size:      input.Size,
				StockQty:  input.Quantity,
			}
			if _, err := repo.Insert(ctx, item); err != nil {
				if db.IsUniqueViolation(err, "uq_inventory_product_size") {
					return pkgerrors.New(pkgerrors.CodeConflict, "inventory row was created concurrently, retry the update")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write inventory row")
			}
		default:
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory row")
		}

		if _, err := s.ledger.Record(ctx, tx, ledger.RecordMovementInput{
			InventoryID:   item.ID,
			Type:          input.MovementType,
			Quantity:      input.Quantity - previousStock,
			ReferenceType: input.ReferenceType,
			Notes:         input.Notes,
		}); err != nil {
			return err
		}

		result = toInventoryRow(*item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// BulkUpdate applies each entry independently. One entry failing never rolls
// back the others; the per-item result carries the failure message.
func (s *service) BulkUpdate(ctx context.Context, inputs []UpdateStockInput) []BulkItemResult {
	results := make([]BulkItemResult, 0, len(inputs))
	for _, input := range inputs {
		res := BulkItemResult{ProductID: input.ProductID, Size: input.Size}
		if _, err := s.UpdateStock(ctx, input); err != nil {
			res.Error = publicMessage(err)
		} else {
			res.Success = true
		}
		results = append(results, res)
	}
	return results
}

func validateUpdateInput(input *UpdateStockInput) error {
	if input.ProductID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	input.Size = strings.TrimSpace(input.Size)
	if input.Size == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "size is required")
	}
	if input.Quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if input.MovementType == "" {
		input.MovementType = enums.MovementTypeManual
	}
	if !input.MovementType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid movement type %q", input.MovementType))
	}
	return nil
}

func publicMessage(err error) string {
	if coded := pkgerrors.As(err); coded != nil {
		return coded.Message()
	}
	return err.Error()
}

package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oakhallsupply/stockroom-backend/pkg/db/models"
	"github.com/oakhallsupply/stockroom-backend/pkg/enums"
	pkgerrors "github.com/oakhallsupply/stockroom-backend/pkg/errors"
)

// Service defines operations that record and read stock movements.
type Service interface {
	Record(ctx context.Context, tx *gorm.DB, input RecordMovementInput) (*models.StockMovement, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]MovementDTO, error)
}

// RecordMovementInput captures the immutable data a movement entry requires.
// Quantity is the signed delta applied to the stock count.
type RecordMovementInput struct {
	InventoryID   uuid.UUID
	Type          enums.MovementType
	Quantity      int
	ReferenceType *string
	Notes         *string
}

// MovementDTO is the read shape returned to the audit view.
type MovementDTO struct {
	ID            uuid.UUID          `json:"id"`
	InventoryID   uuid.UUID          `json:"inventoryId"`
	Type          enums.MovementType `json:"movementType"`
	Quantity      int                `json:"quantity"`
	ReferenceType *string            `json:"referenceType,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

type service struct {
	repo Repository
}

// NewService wires a ledger service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo}, nil
}

// Record writes a movement row. When tx is non-nil the row joins the caller's
// transaction so the movement commits together with the stock change it
// documents.
func (s *service) Record(ctx context.Context, tx *gorm.DB, input RecordMovementInput) (*models.StockMovement, error) {
	if input.InventoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory id is required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid movement type %q", input.Type))
	}

	movement := &models.StockMovement{
		InventoryID:   input.InventoryID,
		Type:          input.Type,
		Quantity:      input.Quantity,
		ReferenceType: input.ReferenceType,
		Notes:         input.Notes,
	}

	if err := s.repo.WithTx(tx).Create(ctx, movement); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert stock movement")
	}
	return movement, nil
}

// ListByProduct returns movement rows for every size of the product, newest
// first. A limit of zero means no cap.
func (s *service) ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]MovementDTO, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	rows, err := s.repo.ListByProductID(ctx, productID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock movements")
	}

	out := make([]MovementDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, MovementDTO{
			ID:            row.ID,
			InventoryID:   row.InventoryID,
			Type:          row.Type,
			Quantity:      row.Quantity,
			ReferenceType: row.ReferenceType,
			Notes:         row.Notes,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out, nil
}

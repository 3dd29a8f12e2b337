package reservation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oakhallsupply/stockroom-backend/pkg/config"
	"github.com/oakhallsupply/stockroom-backend/pkg/db"
	"github.com/oakhallsupply/stockroom-backend/pkg/db/models"
	"github.com/oakhallsupply/stockroom-backend/pkg/enums"
	pkgerrors "github.com/oakhallsupply/stockroom-backend/pkg/errors"
)

// Service exposes cart-scoped inventory holds.
type Service interface {
	Reserve(ctx context.Context, input ReserveInput) (bool, error)
	Release(ctx context.Context, cartID uuid.UUID) (int, error)
	CleanupExpired(ctx context.Context) (int, error)
	PurgeStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// ReserveInput identifies the (product, size) pair a cart wants to hold.
type ReserveInput struct {
	CartID    uuid.UUID
	ProductID uuid.UUID
	Size      string
	Qty       int
}

type service struct {
	dbClient *db.Client
	ttl      time.Duration
	now      func() time.Time
}

// NewService constructs a reservation service with the configured hold TTL.
func NewService(dbClient *db.Client, cfg config.ReservationConfig) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("reservation ttl must be positive")
	}
	return &service{dbClient: dbClient, ttl: cfg.TTL, now: time.Now}, nil
}

// Reserve atomically places a hold on a (product, size) pair. The conditional
// UPDATE only matches while stock minus existing holds covers the requested
// quantity; zero rows affected means the hold was not placed and the call
// returns false with no side effects.
func (s *service) Reserve(ctx context.Context, input ReserveInput) (bool, error) {
	if input.CartID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}
	if input.ProductID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	input.Size = strings.TrimSpace(input.Size)
	if input.Size == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "size is required")
	}
	if input.Qty <= 0 {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	reserved := false
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		res := tx.WithContext(ctx).Exec(`
		UPDATE inventory_items
		SET reserved_qty = reserved_qty + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE product_id = ? AND size = ? AND stock_qty - reserved_qty >= ?
	`, input.Qty, input.ProductID, input.Size, input.Qty)
		if res.Error != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "place inventory hold")
		}
		if res.RowsAffected == 0 {
			return nil
		}

		hold := &models.Reservation{
			ID:        uuid.New(),
			CartID:    input.CartID,
			ProductID: input.ProductID,
			Size:      input.Size,
			Qty:       input.Qty,
			Status:    enums.ReservationStatusActive,
			ExpiresAt: s.now().Add(s.ttl),
		}
		if err := tx.WithContext(ctx).Create(hold).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert reservation")
		}
		reserved = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return reserved, nil
}

// Release frees every active hold owned by the cart and returns how many were
// freed. Releasing a cart with no active holds is a no-op, so retries are
// safe.
func (s *service) Release(ctx context.Context, cartID uuid.UUID) (int, error) {
	if cartID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}

	released := 0
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		var holds []models.Reservation
		if err := tx.WithContext(ctx).
			Where("cart_id = ? AND status = ?", cartID, enums.ReservationStatusActive).
			Find(&holds).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart reservations")
		}

		n, err := freeHolds(ctx, tx, holds, enums.ReservationStatusReleased)
		if err != nil {
			return err
		}
		released = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return released, nil
}

// CleanupExpired sweeps active holds whose expiry has passed, returning the
// reserved quantity to the pool and marking the rows expired.
func (s *service) CleanupExpired(ctx context.Context) (int, error) {
	expired := 0
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		var holds []models.Reservation
		if err := tx.WithContext(ctx).
			Where("status = ? AND expires_at <= ?", enums.ReservationStatusActive, s.now()).
			Find(&holds).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load expired reservations")
		}

		n, err := freeHolds(ctx, tx, holds, enums.ReservationStatusExpired)
		if err != nil {
			return err
		}
		expired = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return expired, nil
}

// PurgeStale deletes released and expired rows last touched before the
// cutoff. Active holds are never deleted here.
func (s *service) PurgeStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.dbClient.DB().WithContext(ctx).
		Where("status IN ? AND updated_at < ?", enums.TerminalReservationStatuses(), cutoff).
		Delete(&models.Reservation{})
	if res.Error != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "purge stale reservations")
	}
	return res.RowsAffected, nil
}

// freeHolds returns each hold's quantity to the pool. The conditional status
// flip is the claim on the hold: a hold another session already freed after
// the scan matches zero rows here and its quantity is never decremented twice.
func freeHolds(ctx context.Context, tx *gorm.DB, holds []models.Reservation, target enums.ReservationStatus) (int, error) {
	freed := 0
	for _, hold := range holds {
		claim := tx.WithContext(ctx).
			Model(&models.Reservation{}).
			Where("id = ? AND status = ?", hold.ID, enums.ReservationStatusActive).
			Update("status", target)
		if claim.Error != nil {
			return freed, pkgerrors.Wrap(pkgerrors.CodeDependency, claim.Error, "update reservation status")
		}
		if claim.RowsAffected == 0 {
			continue
		}

		res := tx.WithContext(ctx).Exec(`
		UPDATE inventory_items
		SET reserved_qty = reserved_qty - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE product_id = ? AND size = ? AND reserved_qty >= ?
	`, hold.Qty, hold.ProductID, hold.Size, hold.Qty)
		if res.Error != nil {
			return freed, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "return reserved quantity")
		}
		freed++
	}
	return freed, nil
}

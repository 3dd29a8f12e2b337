package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/oakhallsupply/stockroom-backend/api/responses"
	"github.com/oakhallsupply/stockroom-backend/api/validators"
	inventorysvc "github.com/oakhallsupply/stockroom-backend/internal/inventory"
	reservationsvc "github.com/oakhallsupply/stockroom-backend/internal/reservation"
	"github.com/oakhallsupply/stockroom-backend/pkg/enums"
	pkgerrors "github.com/oakhallsupply/stockroom-backend/pkg/errors"
	"github.com/oakhallsupply/stockroom-backend/pkg/logger"
)

// InventoryQuery serves both read shapes: size rows for one product when
// productId is present, the low stock report otherwise.
func InventoryQuery(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		productID, err := validators.ParseOptionalQueryUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if productID == nil {
			items, err := svc.ListLowStock(r.Context())
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{"lowStockItems": items})
			return
		}

		rows, err := svc.GetProductInventory(r.Context(), *productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"inventory": rows})
	}
}

// InventoryAction dispatches the POST body on its action field.
func InventoryAction(invSvc inventorysvc.Service, resSvc reservationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if invSvc == nil || resSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable request body"))
			return
		}

		var envelope struct {
			Action string `json:"action"`
		}
		if err := validators.DecodeJSON(body, &envelope); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		switch strings.TrimSpace(envelope.Action) {
		case "update_stock":
			handleUpdateStock(w, r, body, invSvc, logg)
		case "bulk_update":
			handleBulkUpdate(w, r, body, invSvc, logg)
		case "reserve":
			handleReserve(w, r, body, resSvc, logg)
		case "release":
			handleRelease(w, r, body, resSvc, logg)
		case "cleanup_reservations":
			handleCleanup(w, r, resSvc, logg)
		default:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown action"))
		}
	}
}

type updateStockRequest struct {
	ProductID     string  `json:"productId" validate:"required,uuid"`
	Size          string  `json:"size" validate:"required"`
	Quantity      int     `json:"quantity" validate:"min=0"`
	MovementType  string  `json:"movementType,omitempty"`
	ReferenceType *string `json:"referenceType,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

func (r updateStockRequest) toInput() (inventorysvc.UpdateStockInput, error) {
	var movementType enums.MovementType
	if r.MovementType != "" {
		parsed, err := enums.ParseMovementType(r.MovementType)
		if err != nil {
			return inventorysvc.UpdateStockInput{}, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		movementType = parsed
	}

	productID, err := uuid.Parse(r.ProductID)
	if err != nil {
		return inventorysvc.UpdateStockInput{}, pkgerrors.New(pkgerrors.CodeValidation, "productId must be a valid uuid")
	}
	return inventorysvc.UpdateStockInput{
		ProductID:     productID,
		Size:          r.Size,
		Quantity:      r.Quantity,
		MovementType:  movementType,
		ReferenceType: r.ReferenceType,
		Notes:         r.Notes,
	}, nil
}

func handleUpdateStock(w http.ResponseWriter, r *http.Request, body []byte, svc inventorysvc.Service, logg *logger.Logger) {
	var payload updateStockRequest
	if err := validators.DecodeJSON(body, &payload); err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	input, err := payload.toInput()
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	row, err := svc.UpdateStock(r.Context(), input)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccess(w, row)
}

func handleBulkUpdate(w http.ResponseWriter, r *http.Request, body []byte, svc inventorysvc.Service, logg *logger.Logger) {
	var payload struct {
		Updates []updateStockRequest `json:"updates" validate:"required,min=1"`
	}
	if err := validators.DecodeJSON(body, &payload); err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	inputs := make([]inventorysvc.UpdateStockInput, 0, len(payload.Updates))
	results := make([]inventorysvc.BulkItemResult, len(payload.Updates))
	indexes := make([]int, 0, len(payload.Updates))
	for i, update := range payload.Updates {
		input, err := update.toInput()
		if err != nil {
			results[i] = inventorysvc.BulkItemResult{Size: update.Size, Error: pkgerrors.As(err).Message()}
			continue
		}
		inputs = append(inputs, input)
		indexes = append(indexes, i)
	}

	for j, res := range svc.BulkUpdate(r.Context(), inputs) {
		results[indexes[j]] = res
	}

	responses.WriteSuccess(w, map[string]any{"results": results})
}

func handleReserve(w http.ResponseWriter, r *http.Request, body []byte, svc reservationsvc.Service, logg *logger.Logger) {
	var payload struct {
		CartID    string `json:"cartId" validate:"required,uuid"`
		ProductID string `json:"productId" validate:"required,uuid"`
		Size      string `json:"size" validate:"required"`
		Quantity  int    `json:"quantity" validate:"required,min=1"`
	}
	if err := validators.DecodeJSON(body, &payload); err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	ctx := r.Context()
	if logg != nil {
		ctx = logg.WithCartID(ctx, payload.CartID)
	}

	reserved, err := svc.Reserve(ctx, reservationsvc.ReserveInput{
		CartID:    uuid.MustParse(payload.CartID),
		ProductID: uuid.MustParse(payload.ProductID),
		Size:      payload.Size,
		Qty:       payload.Quantity,
	})
	if err != nil {
		responses.WriteError(ctx, logg, w, err)
		return
	}
	responses.WriteSuccess(w, map[string]any{"reserved": reserved})
}

func handleRelease(w http.ResponseWriter, r *http.Request, body []byte, svc reservationsvc.Service, logg *logger.Logger) {
	var payload struct {
		CartID string `json:"cartId" validate:"required,uuid"`
	}
	if err := validators.DecodeJSON(body, &payload); err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	ctx := r.Context()
	if logg != nil {
		ctx = logg.WithCartID(ctx, payload.CartID)
	}

	released, err := svc.Release(ctx, uuid.MustParse(payload.CartID))
	if err != nil {
		responses.WriteError(ctx, logg, w, err)
		return
	}
	responses.WriteSuccess(w, map[string]any{"released": released})
}

func handleCleanup(w http.ResponseWriter, r *http.Request, svc reservationsvc.Service, logg *logger.Logger) {
	expired, err := svc.CleanupExpired(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccess(w, map[string]any{"expired": expired})
}

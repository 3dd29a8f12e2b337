package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/oakhallsupply/stockroom-backend/api/responses"
	"github.com/oakhallsupply/stockroom-backend/api/validators"
	ledgersvc "github.com/oakhallsupply/stockroom-backend/internal/ledger"
	pkgerrors "github.com/oakhallsupply/stockroom-backend/pkg/errors"
	"github.com/oakhallsupply/stockroom-backend/pkg/logger"
)

const (
	defaultMovementLimit = 100
	maxMovementLimit     = 500
)

// ProductMovements returns the audit trail for every size row of a product,
// newest first. An optional limit query parameter caps the page size.
func ProductMovements(svc ledgersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "productId must be a valid uuid"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", defaultMovementLimit, 1, maxMovementLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, productID.String())
		}

		movements, err := svc.ListByProduct(ctx, productID, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"movements": movements})
	}
}

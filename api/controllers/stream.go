package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/oakhallsupply/stockroom-backend/api/responses"
	streamsvc "github.com/oakhallsupply/stockroom-backend/internal/stream"
	pkgerrors "github.com/oakhallsupply/stockroom-backend/pkg/errors"
	"github.com/oakhallsupply/stockroom-backend/pkg/logger"
)

// SubscribeStock serves the one-shot SSE stream: a single snapshot event,
// then the connection closes. This mirrors the current storefront contract;
// it is not a live change feed.
func SubscribeStock(notifier *streamsvc.Notifier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if notifier == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stream notifier unavailable"))
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "productId must be a valid uuid"))
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "streaming unsupported"))
			return
		}

		snapshot := notifier.Snapshot(productID)
		payload, err := json.Marshal(snapshot)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode snapshot"))
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload)
		flusher.Flush()

		if logg != nil {
			ctx := logg.WithProductID(r.Context(), productID.String())
			logg.Info(ctx, "stock snapshot streamed")
		}
	}
}

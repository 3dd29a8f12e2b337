package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/oakhallsupply/stockroom-backend/api/responses"
	"github.com/oakhallsupply/stockroom-backend/pkg/config"
	"github.com/oakhallsupply/stockroom-backend/pkg/db"
	pkgerrors "github.com/oakhallsupply/stockroom-backend/pkg/errors"
	"github.com/oakhallsupply/stockroom-backend/pkg/logger"
)

const readyCheckTimeout = 2 * time.Second

// Pinger matches any dependency handle with a health ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Stockroom-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when both the store and redis answer a ping.
// A nil handle is skipped so the API can run without a cron lock backend in
// dev.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Stockroom-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store unavailable"))
				return
			}
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

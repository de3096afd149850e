package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/tastybytes-dashboard/api/responses"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/config"
	pkgerrors "github.com/angelmondragon/tastybytes-dashboard/pkg/errors"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/logger"
)

const envHeader = "X-TastyBytes-Env"

// readyTimeout bounds the warehouse ping so a hung backend fails readiness instead of
// blocking it.
const readyTimeout = 5 * time.Second

// Pinger is anything whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, warehouse Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		if warehouse == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "warehouse not configured"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := warehouse.Ping(ctx); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "warehouse ping failed").
				WithDetails(map[string]any{"dependency": cfg.Warehouse.Driver}))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready", "warehouse": cfg.Warehouse.Driver})
	}
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/personal/coffee-catalog-backend/api/responses"
	"github.com/personal/coffee-catalog-backend/pkg/config"
	pkgerrors "github.com/personal/coffee-catalog-backend/pkg/errors"
	"github.com/personal/coffee-catalog-backend/pkg/logger"
)

// Pinger is anything that can answer a readiness ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Coffee-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"}, "ok")
	}
}

// HealthReady reports ready only when the datasource answers a ping.
func HealthReady(cfg *config.Config, database Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Coffee-Env", cfg.App.Env)

		if database != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := database.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, r, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"}, "ok")
	}
}

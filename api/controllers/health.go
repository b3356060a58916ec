package controllers

import (
	"net/http"

	"github.com/quartermaster-gg/quartermaster-backend/api/responses"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/config"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/db"
	pkgerrors "github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
	pkgredis "github.com/quartermaster-gg/quartermaster-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Quartermaster-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Quartermaster-Env", cfg.App.Env)

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

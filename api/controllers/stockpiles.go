package controllers

import (
	"net/http"

	"github.com/quartermaster-gg/quartermaster-backend/api/middleware"
	"github.com/quartermaster-gg/quartermaster-backend/api/responses"
	"github.com/quartermaster-gg/quartermaster-backend/api/validators"
	"github.com/quartermaster-gg/quartermaster-backend/internal/stockpiles"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/db/models"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
)

type stockpileCreateRequest struct {
	Town          string `json:"town" validate:"required,min=1"`
	StructureType string `json:"structure_type" validate:"required,min=1"`
	Name          string `json:"name" validate:"required,min=1"`
}

// StockpileCreate registers a stockpile at a named town structure.
func StockpileCreate(svc *stockpiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req stockpileCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		created, err := svc.Create(ctx, middleware.GuildIDFromContext(ctx), req.Town, req.StructureType, req.Name)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"id":   created.ID,
			"name": created.Name,
		})
	}
}

// StockpileList returns the guild's stockpiles with their locations.
func StockpileList(svc *stockpiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rows, err := svc.List(ctx, middleware.GuildIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

// StockpileDelete removes a stockpile and its inventory and quotas.
func StockpileDelete(svc *stockpiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		stockID, err := validators.IDParam(r, "stockID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, middleware.GuildIDFromContext(ctx), stockID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"id": stockID})
	}
}

// ownedStockpile loads the {stockID} route target, scoped to the caller's
// guild.
func ownedStockpile(r *http.Request, svc *stockpiles.Service) (*models.Stockpile, error) {
	stockID, err := validators.IDParam(r, "stockID")
	if err != nil {
		return nil, err
	}
	return svc.Get(r.Context(), middleware.GuildIDFromContext(r.Context()), stockID)
}

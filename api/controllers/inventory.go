package controllers

import (
	"net/http"

	"github.com/quartermaster-gg/quartermaster-backend/api/middleware"
	"github.com/quartermaster-gg/quartermaster-backend/api/responses"
	"github.com/quartermaster-gg/quartermaster-backend/api/validators"
	"github.com/quartermaster-gg/quartermaster-backend/internal/inventory"
	"github.com/quartermaster-gg/quartermaster-backend/internal/stockpiles"
	pkgerrors "github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
)

// InventoryUploadSingle replaces one stockpile's inventory from a scanner
// export posted as the request body.
func InventoryUploadSingle(stockSvc *stockpiles.Service, invSvc *inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		stockpile, err := ownedStockpile(r, stockSvc)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows, err := inventory.DecodeTSV(r.Body)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := invSvc.UpdateSingle(ctx, stockpile.ID, rows); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"stock_id": stockpile.ID, "rows": len(rows)})
	}
}

// InventoryUploadMultiple replaces several stockpiles' inventory from one
// export. The target ids are declared up front in the stockpiles query
// parameter and must match the ids tagged in the export rows.
func InventoryUploadMultiple(stockSvc *stockpiles.Service, invSvc *inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		declared, err := validators.IDListQuery(r, "stockpiles")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if len(declared) == 0 {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "stockpiles query parameter is required"))
			return
		}

		guildID := middleware.GuildIDFromContext(ctx)
		for _, stockID := range declared {
			if _, err := stockSvc.Get(ctx, guildID, stockID); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		rows, err := inventory.DecodeTSV(r.Body)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := invSvc.UpdateMultiple(ctx, declared, rows); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"stockpiles": declared, "rows": len(rows)})
	}
}

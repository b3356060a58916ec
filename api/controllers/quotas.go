package controllers

import (
	"net/http"

	"github.com/quartermaster-gg/quartermaster-backend/api/responses"
	"github.com/quartermaster-gg/quartermaster-backend/api/validators"
	"github.com/quartermaster-gg/quartermaster-backend/internal/quotas"
	"github.com/quartermaster-gg/quartermaster-backend/internal/stockpiles"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
)

type quotasSetRequest struct {
	Quotas string `json:"quotas" validate:"required,min=1"`
}

// QuotasSet parses the quota text and overwrites the named items' quotas on
// the stockpile.
func QuotasSet(stockSvc *stockpiles.Service, quotaSvc *quotas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		stockpile, err := ownedStockpile(r, stockSvc)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req quotasSetRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := quotaSvc.Add(ctx, stockpile.ID, req.Quotas); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"stock_id": stockpile.ID})
	}
}

// QuotasDelete clears every quota on the stockpile.
func QuotasDelete(stockSvc *stockpiles.Service, quotaSvc *quotas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		stockpile, err := ownedStockpile(r, stockSvc)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := quotaSvc.Delete(ctx, stockpile.ID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"stock_id": stockpile.ID})
	}
}

// QuotasGet returns the stockpile's quotas with item details.
func QuotasGet(stockSvc *stockpiles.Service, quotaSvc *quotas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		stockpile, err := ownedStockpile(r, stockSvc)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		details, err := quotaSvc.Fetch(ctx, stockpile.ID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, details)
	}
}

package controllers

import (
	"net/http"

	"github.com/quartermaster-gg/quartermaster-backend/api/responses"
	"github.com/quartermaster-gg/quartermaster-backend/internal/requirements"
	"github.com/quartermaster-gg/quartermaster-backend/internal/stockpiles"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
)

// RequirementsGet reports what the stockpile still needs to meet its quotas.
func RequirementsGet(stockSvc *stockpiles.Service, reqSvc *requirements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		stockpile, err := ownedStockpile(r, stockSvc)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report, err := reqSvc.Get(ctx, stockpile.ID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}

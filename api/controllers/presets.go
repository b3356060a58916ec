package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quartermaster-gg/quartermaster-backend/api/middleware"
	"github.com/quartermaster-gg/quartermaster-backend/api/responses"
	"github.com/quartermaster-gg/quartermaster-backend/api/validators"
	"github.com/quartermaster-gg/quartermaster-backend/internal/presets"
	"github.com/quartermaster-gg/quartermaster-backend/internal/stockpiles"
	pkgerrors "github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
)

type presetCreateRequest struct {
	Name   string `json:"name" validate:"required,min=1"`
	Quotas string `json:"quotas" validate:"required,min=1"`
}

// PresetCreate stores a reusable quota template for the guild.
func PresetCreate(svc *presets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req presetCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Create(ctx, middleware.GuildIDFromContext(ctx), req.Name, req.Quotas); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"name": req.Name})
	}
}

// PresetDelete removes a preset by name.
func PresetDelete(svc *presets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		name := chi.URLParam(r, "name")
		if name == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "preset name is required"))
			return
		}

		if err := svc.Delete(ctx, middleware.GuildIDFromContext(ctx), name); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"name": name})
	}
}

// PresetApply adds the preset's amounts onto the stockpile's quotas.
func PresetApply(stockSvc *stockpiles.Service, svc *presets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		stockpile, err := ownedStockpile(r, stockSvc)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		name := chi.URLParam(r, "name")
		if name == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "preset name is required"))
			return
		}

		if err := svc.Apply(ctx, middleware.GuildIDFromContext(ctx), stockpile.ID, name); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"stock_id": stockpile.ID, "name": name})
	}
}

// PresetList returns the guild's presets.
func PresetList(svc *presets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		list, err := svc.List(ctx, middleware.GuildIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		type presetView struct {
			Name   string `json:"name"`
			Quotas string `json:"quotas"`
		}
		views := make([]presetView, 0, len(list))
		for _, preset := range list {
			views = append(views, presetView{Name: preset.Name, Quotas: preset.QuotaString})
		}
		responses.WriteSuccess(w, views)
	}
}

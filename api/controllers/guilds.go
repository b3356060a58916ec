package controllers

import (
	"net/http"

	"github.com/quartermaster-gg/quartermaster-backend/api/middleware"
	"github.com/quartermaster-gg/quartermaster-backend/api/responses"
	"github.com/quartermaster-gg/quartermaster-backend/api/validators"
	"github.com/quartermaster-gg/quartermaster-backend/internal/guilds"
	pkgerrors "github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
)

type guildRegisterRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// GuildRegister enrolls the caller's guild. Only the guild manager may do
// this; role grants do not exist yet at registration time.
func GuildRegister(svc *guilds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if !middleware.ManagerFromContext(ctx) {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "only the guild manager can register"))
			return
		}

		var req guildRegisterRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		guildID := middleware.GuildIDFromContext(ctx)
		if err := svc.Register(ctx, guildID, req.Name); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"guild_id": guildID})
	}
}

type roleAccessRequest struct {
	Level int `json:"level" validate:"required,min=1,max=2"`
}

// RoleAccessSet grants or overwrites a role's access level.
func RoleAccessSet(svc *guilds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		roleID, err := validators.IDParam(r, "roleID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req roleAccessRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		guildID := middleware.GuildIDFromContext(ctx)
		if err := svc.SetAccess(ctx, guildID, roleID, req.Level); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"role_id": roleID, "level": req.Level})
	}
}

// RoleAccessList returns the guild's role grants.
func RoleAccessList(svc *guilds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		grants, err := svc.ListAccess(ctx, middleware.GuildIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		type grantView struct {
			RoleID int64 `json:"role_id"`
			Level  int   `json:"level"`
		}
		views := make([]grantView, 0, len(grants))
		for _, grant := range grants {
			views = append(views, grantView{RoleID: grant.RoleID, Level: int(grant.AccessLevel)})
		}
		responses.WriteSuccess(w, views)
	}
}

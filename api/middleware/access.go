package middleware

import (
	"context"
	"net/http"

	"github.com/quartermaster-gg/quartermaster-backend/api/responses"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/enums"
	pkgerrors "github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
)

// AccessChecker answers the guild access query for a set of roles.
type AccessChecker interface {
	AccessLevel(ctx context.Context, guildID int64, roleIDs []int64, manager bool) (enums.AccessLevel, error)
}

// RequireAccess gates a route on the caller's effective access level. The
// check also rejects callers whose guild was never registered.
func RequireAccess(svc AccessChecker, logg *logger.Logger, minimum enums.AccessLevel) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			guildID := GuildIDFromContext(ctx)
			if guildID == 0 {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing guild claim"))
				return
			}

			level, err := svc.AccessLevel(ctx, guildID, RoleIDsFromContext(ctx), ManagerFromContext(ctx))
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			if level < minimum {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient access level"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

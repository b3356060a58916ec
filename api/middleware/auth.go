package middleware

import (
	"net/http"
	"strings"

	"github.com/quartermaster-gg/quartermaster-backend/api/responses"
	pkgAuth "github.com/quartermaster-gg/quartermaster-backend/pkg/auth"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/config"
	pkgerrors "github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
)

// Auth validates the bearer token minted by the chat front end and seeds the
// request context with the guild claims.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if claims.GuildID == 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing guild claim"))
				return
			}

			ctx := WithClaims(r.Context(), claims.GuildID, claims.RoleIDs, claims.Manager)
			if logg != nil {
				ctx = logg.WithGuildID(ctx, claims.GuildID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

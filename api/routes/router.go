package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quartermaster-gg/quartermaster-backend/api/controllers"
	"github.com/quartermaster-gg/quartermaster-backend/api/middleware"
	"github.com/quartermaster-gg/quartermaster-backend/internal/guilds"
	"github.com/quartermaster-gg/quartermaster-backend/internal/inventory"
	"github.com/quartermaster-gg/quartermaster-backend/internal/presets"
	"github.com/quartermaster-gg/quartermaster-backend/internal/quotas"
	"github.com/quartermaster-gg/quartermaster-backend/internal/requirements"
	"github.com/quartermaster-gg/quartermaster-backend/internal/stockpiles"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/config"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/db"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/enums"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/metrics"
	pkgredis "github.com/quartermaster-gg/quartermaster-backend/pkg/redis"
)

// Services bundles everything the router wires into controllers.
type Services struct {
	Guilds       *guilds.Service
	Stockpiles   *stockpiles.Service
	Inventory    *inventory.Service
	Quotas       *quotas.Service
	Presets      *presets.Service
	Requirements *requirements.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP pkgredis.Pinger,
	idemStore pkgredis.IdempotencyStore,
	commandMetrics *metrics.CommandMetrics,
	metricsHandler http.Handler,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(commandMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		// Registration happens before any role grant exists, so it is gated
		// on the manager claim inside the controller instead of RequireAccess.
		r.Post("/guilds", controllers.GuildRegister(svcs.Guilds, logg))

		idem := middleware.Idempotency(idemStore, logg)
		member := middleware.RequireAccess(svcs.Guilds, logg, enums.AccessLevelMember)
		officer := middleware.RequireAccess(svcs.Guilds, logg, enums.AccessLevelOfficer)

		r.Group(func(r chi.Router) {
			r.Use(member)

			r.Get("/stockpiles", controllers.StockpileList(svcs.Stockpiles, logg))
			r.Get("/stockpiles/{stockID}/quotas", controllers.QuotasGet(svcs.Stockpiles, svcs.Quotas, logg))
			r.Get("/stockpiles/{stockID}/requirements", controllers.RequirementsGet(svcs.Stockpiles, svcs.Requirements, logg))
			r.Get("/presets", controllers.PresetList(svcs.Presets, logg))

			r.With(idem).Post("/stockpiles/{stockID}/inventory", controllers.InventoryUploadSingle(svcs.Stockpiles, svcs.Inventory, logg))
			r.With(idem).Post("/inventory", controllers.InventoryUploadMultiple(svcs.Stockpiles, svcs.Inventory, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(officer)

			r.Put("/roles/{roleID}/access", controllers.RoleAccessSet(svcs.Guilds, logg))
			r.Get("/roles/access", controllers.RoleAccessList(svcs.Guilds, logg))

			r.Post("/stockpiles", controllers.StockpileCreate(svcs.Stockpiles, logg))
			r.Delete("/stockpiles/{stockID}", controllers.StockpileDelete(svcs.Stockpiles, logg))

			r.Post("/stockpiles/{stockID}/quotas", controllers.QuotasSet(svcs.Stockpiles, svcs.Quotas, logg))
			r.Delete("/stockpiles/{stockID}/quotas", controllers.QuotasDelete(svcs.Stockpiles, svcs.Quotas, logg))

			r.Post("/presets", controllers.PresetCreate(svcs.Presets, logg))
			r.Delete("/presets/{name}", controllers.PresetDelete(svcs.Presets, logg))
			r.Post("/stockpiles/{stockID}/presets/{name}", controllers.PresetApply(svcs.Stockpiles, svcs.Presets, logg))
		})
	})

	return r
}

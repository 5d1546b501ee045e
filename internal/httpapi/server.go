package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xtding233/towerclimb-backend/internal/catalog"
	"github.com/xtding233/towerclimb-backend/internal/metrics"
	"github.com/xtding233/towerclimb-backend/internal/player"
	"github.com/xtding233/towerclimb-backend/internal/reward"
	"github.com/xtding233/towerclimb-backend/internal/shop"
)

// Shop is the service surface the HTTP API exposes. *shop.Service implements it.
type Shop interface {
	Open(ctx context.Context, packageID string) (reward.Result, error)
	Purchase(ctx context.Context, playerID, packageID string, qty int) (shop.Receipt, error)
	UseScroll(ctx context.Context, playerID, scrollID string) (shop.ScrollResult, error)
	Player(ctx context.Context, playerID string) (*player.Player, error)
	Lookup(ref catalog.Ref) shop.Lookup
}

type handler struct {
	shop     Shop
	validate *validator.Validate
}

// NewRouter builds the HTTP API.
func NewRouter(s Shop, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &handler{shop: s, validate: validator.New()}

	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware(log))

	r.Get("/healthz", h.healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/packages/{id}/open", h.openPackage)
		r.Route("/players/{id}", func(r chi.Router) {
			r.Get("/", h.getPlayer)
			r.Post("/purchase", h.purchase)
			r.Post("/scrolls/{scroll}/use", h.useScroll)
		})
		r.Get("/lookup/{kind}/{id}", h.lookup)
	})
	return r
}
